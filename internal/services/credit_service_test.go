package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderly/wanderly-server/internal/models"
)

func TestCreditsToCents(t *testing.T) {
	assert.Equal(t, 5000, CreditsToCents(50, 100))
	assert.Equal(t, 0, CreditsToCents(0, 100))
	assert.Equal(t, 250, CreditsToCents(10, 25))
}

func TestStartTopupBuildsCheckoutRequest(t *testing.T) {
	checkout := &fakeCheckout{}
	svc := NewCreditService(&fakePaymentsRepo{}, checkout, 100, "https://wanderly.app")
	userId := uuid.New()

	session, err := svc.StartTopup(context.Background(), userId, "Explorer Pack", 50)
	require.NoError(t, err)
	assert.NotEmpty(t, session.CheckoutURL)

	require.Len(t, checkout.lastReq.LineItems, 1)
	item := checkout.lastReq.LineItems[0]
	assert.Equal(t, "Explorer Pack", item.Name)
	assert.Equal(t, 5000, item.Amount)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, userId.String(), checkout.lastReq.UserID)
	assert.Equal(t, 50, checkout.lastReq.Credits)
	assert.Equal(t, "https://wanderly.app/credits/success", checkout.lastReq.SuccessURL)
	assert.Equal(t, "https://wanderly.app/credits", checkout.lastReq.CancelURL)
}

func TestStartTopupRejectsBadInput(t *testing.T) {
	svc := NewCreditService(&fakePaymentsRepo{}, &fakeCheckout{}, 100, "https://wanderly.app")

	_, err := svc.StartTopup(context.Background(), uuid.Nil, "Explorer Pack", 50)
	assert.Error(t, err)

	_, err = svc.StartTopup(context.Background(), uuid.New(), "  ", 50)
	assert.Error(t, err)

	_, err = svc.StartTopup(context.Background(), uuid.New(), "Explorer Pack", 0)
	assert.Error(t, err)
}

func TestConfirmTopupAppliesCredits(t *testing.T) {
	payments := &fakePaymentsRepo{balance: 10}
	svc := NewCreditService(payments, &fakeCheckout{}, 100, "https://wanderly.app")

	balance, err := svc.ConfirmTopup(context.Background(), uuid.New(), 50, "pi_123", "")
	require.NoError(t, err)
	assert.Equal(t, 60, balance)
	assert.Equal(t, "pi_123", payments.lastIntent)
}

func TestConfirmTopupRequiresIntentID(t *testing.T) {
	svc := NewCreditService(&fakePaymentsRepo{}, &fakeCheckout{}, 100, "https://wanderly.app")

	_, err := svc.ConfirmTopup(context.Background(), uuid.New(), 50, "   ", "")
	assert.Error(t, err)
}

func TestLedgerFoldsOldestRowFirst(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	payments := &fakePaymentsRepo{
		// Newest first, the way a descending store sort would return them
		payments: []*models.Payment{
			{Credits: 25, CreatedAt: base.Add(48 * time.Hour)},
			{Credits: -50, CreatedAt: base.Add(24 * time.Hour)},
			{Credits: 100, CreatedAt: base},
		},
	}
	svc := NewCreditService(payments, &fakeCheckout{}, 100, "https://wanderly.app")

	entries, err := svc.Ledger(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 100, entries[0].RunningTotal)
	assert.Equal(t, 50, entries[1].RunningTotal)
	assert.Equal(t, 75, entries[2].RunningTotal)
	assert.Equal(t, base, entries[0].CreatedAt)
}

func TestComputeRunningTotals(t *testing.T) {
	payments := []*models.Payment{
		{Credits: 100},
		{Credits: -50},
		{Credits: 25},
	}

	entries := ComputeRunningTotals(payments)
	require.Len(t, entries, 3)
	assert.Equal(t, 100, entries[0].RunningTotal)
	assert.Equal(t, 50, entries[1].RunningTotal)
	assert.Equal(t, 75, entries[2].RunningTotal)
}

func TestComputeRunningTotalsEmpty(t *testing.T) {
	assert.Empty(t, ComputeRunningTotals(nil))
}
