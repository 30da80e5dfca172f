package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"
)

// Payment is one row of the append-only credit ledger. Credits holds the
// signed delta: positive for topups, negative for spends.
type Payment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Credits   int       `db:"credits" json:"credits"`
	IntentID  string    `db:"payment_intent_id" json:"payment_intent_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LedgerEntry is a payment with the running balance after it, for display.
type LedgerEntry struct {
	Payment
	RunningTotal int `json:"running_total"`
}

type PaymentsRepo interface {
	// ApplyPayment runs the apply_payment function: ledger insert and
	// profile balance update in one transaction. Returns the new balance.
	ApplyPayment(ctx context.Context, userId uuid.UUID, credits int, intentId string, accessToken string) (int, error)
	ListPayments(ctx context.Context, userId uuid.UUID, accessToken string) ([]*Payment, error)
}

func (su *SupabaseRepo) ApplyPayment(ctx context.Context, userId uuid.UUID, credits int, intentId string, accessToken string) (int, error) {
	if userId == uuid.Nil {
		return 0, fmt.Errorf("invalid user ID")
	}
	if intentId == "" {
		return 0, fmt.Errorf("payment intent ID is required")
	}

	client, err := su.clientFor(accessToken)
	if err != nil {
		return 0, err
	}

	body := map[string]interface{}{
		"p_user_id":   userId,
		"p_credits":   credits,
		"p_intent_id": intentId,
	}

	res := rpc(client, "apply_payment", body)

	var result struct {
		Balance int `json:"balance"`
	}
	if err := decodeRpcResult(res, &result); err != nil {
		return 0, err
	}
	return result.Balance, nil
}

func (su *SupabaseRepo) ListPayments(ctx context.Context, userId uuid.UUID, accessToken string) ([]*Payment, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	client, err := su.clientFor(accessToken)
	if err != nil {
		return nil, err
	}

	// DefaultOrderOpts sorts descending; the ledger fold needs oldest first
	data, _, err := client.From(PaymentsTable).
		Select("*", "", false).
		Eq("user_id", userId.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %v", err)
	}

	var payments []*Payment
	if err := json.Unmarshal(data, &payments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment rows: %v", err)
	}
	return payments, nil
}
