package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/clients"
	"github.com/wanderly/wanderly-server/internal/models"
)

// CheckoutSessionCreator opens a hosted checkout session for a credit tier.
type CheckoutSessionCreator interface {
	CreateSession(ctx context.Context, req clients.CheckoutRequest) (*clients.CheckoutResponse, error)
}

type CreditService struct {
	paymentsRepo   models.PaymentsRepo
	checkout       CheckoutSessionCreator
	centsPerCredit int
	frontendURL    string
}

func NewCreditService(paymentsRepo models.PaymentsRepo, checkout CheckoutSessionCreator, centsPerCredit int, frontendURL string) *CreditService {
	return &CreditService{
		paymentsRepo:   paymentsRepo,
		checkout:       checkout,
		centsPerCredit: centsPerCredit,
		frontendURL:    frontendURL,
	}
}

// CreditsToCents converts a credit amount to minor currency units at the
// configured static rate.
func CreditsToCents(credits, centsPerCredit int) int {
	return credits * centsPerCredit
}

// StartTopup opens a checkout session for the given tier and returns the
// hosted checkout URL the browser should be redirected to.
func (cs *CreditService) StartTopup(ctx context.Context, userId uuid.UUID, tierName string, credits int) (*clients.CheckoutResponse, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	if strings.TrimSpace(tierName) == "" {
		return nil, fmt.Errorf("tier name is required")
	}
	if credits <= 0 {
		return nil, fmt.Errorf("credit amount must be positive")
	}

	req := clients.CheckoutRequest{
		LineItems: []clients.LineItem{{
			Name:     tierName,
			Amount:   CreditsToCents(credits, cs.centsPerCredit),
			Quantity: 1,
		}},
		UserID:     userId.String(),
		Credits:    credits,
		SuccessURL: cs.frontendURL + "/credits/success",
		CancelURL:  cs.frontendURL + "/credits",
	}

	return cs.checkout.CreateSession(ctx, req)
}

// ConfirmTopup is called on the success redirect. The ledger insert and the
// balance move happen in one database transaction; replaying the same intent
// id is rejected there.
func (cs *CreditService) ConfirmTopup(ctx context.Context, userId uuid.UUID, credits int, intentId string, accessToken string) (int, error) {
	if userId == uuid.Nil {
		return 0, fmt.Errorf("invalid user ID")
	}
	if credits <= 0 {
		return 0, fmt.Errorf("credit amount must be positive")
	}
	if strings.TrimSpace(intentId) == "" {
		return 0, fmt.Errorf("payment intent ID is required")
	}

	return cs.paymentsRepo.ApplyPayment(ctx, userId, credits, intentId, accessToken)
}

// Ledger returns the user's payment history with running totals.
func (cs *CreditService) Ledger(ctx context.Context, userId uuid.UUID, accessToken string) ([]*models.LedgerEntry, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	payments, err := cs.paymentsRepo.ListPayments(ctx, userId, accessToken)
	if err != nil {
		return nil, err
	}

	return ComputeRunningTotals(payments), nil
}

// ComputeRunningTotals folds signed credit deltas into per-row totals,
// oldest row first. Input order is not trusted so the totals stay correct
// whatever sort the store applied.
func ComputeRunningTotals(payments []*models.Payment) []*models.LedgerEntry {
	ordered := make([]*models.Payment, len(payments))
	copy(ordered, payments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	entries := make([]*models.LedgerEntry, 0, len(ordered))
	total := 0
	for _, p := range ordered {
		total += p.Credits
		entries = append(entries, &models.LedgerEntry{
			Payment:      *p,
			RunningTotal: total,
		})
	}
	return entries
}
