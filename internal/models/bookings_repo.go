package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// rpcError matches the PostgREST error payload shape. The supabase client's
// Rpc helper returns the raw body, so failures have to be sniffed out of it.
type rpcError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeRpcResult(body string, out interface{}) error {
	if body == "" {
		return fmt.Errorf("empty response from database function")
	}

	var rpcErr rpcError
	if err := json.Unmarshal([]byte(body), &rpcErr); err == nil && rpcErr.Code != "" && rpcErr.Message != "" {
		return fmt.Errorf("database function failed: %s (%s)", rpcErr.Message, rpcErr.Code)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("failed to unmarshal function result: %v", err)
	}
	return nil
}

func (su *SupabaseRepo) CountBookings(ctx context.Context, packageId uuid.UUID) (int, error) {
	if packageId == uuid.Nil {
		return 0, fmt.Errorf("invalid package ID")
	}

	_, count, err := su.supabaseClient.From(BookingsTable).
		Select("id", "exact", false).
		Eq("package_id", packageId.String()).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %v", err)
	}

	return int(count), nil
}

func (su *SupabaseRepo) ListBookedDates(ctx context.Context, userId, packageId uuid.UUID) ([]time.Time, error) {
	bookings, err := su.listBookingsForPair(userId, packageId)
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for _, b := range bookings {
		dates = append(dates, b.Dates...)
	}
	return dates, nil
}

func (su *SupabaseRepo) FindBooking(ctx context.Context, userId, packageId uuid.UUID) (*Booking, error) {
	bookings, err := su.listBookingsForPair(userId, packageId)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}

func (su *SupabaseRepo) listBookingsForPair(userId, packageId uuid.UUID) ([]*Booking, error) {
	if userId == uuid.Nil || packageId == uuid.Nil {
		return nil, fmt.Errorf("invalid user or package ID")
	}

	data, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "", false).
		Eq("user_id", userId.String()).
		Eq("package_id", packageId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %v", err)
	}

	var bookings []*Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking rows: %v", err)
	}
	return bookings, nil
}

func (su *SupabaseRepo) ListBookingsByUser(ctx context.Context, userId uuid.UUID, accessToken string) ([]*Booking, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	client, err := su.clientFor(accessToken)
	if err != nil {
		return nil, err
	}

	data, _, err := client.From(BookingsTable).
		Select("*", "", false).
		Eq("user_id", userId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user: %v", err)
	}

	var bookings []*Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking rows: %v", err)
	}
	return bookings, nil
}

// BookPackage calls the book_package Postgres function, which checks the
// balance, decrements credits and inserts the booking row in one
// transaction. Guide applications pass price 0 and leave credits untouched.
func (su *SupabaseRepo) BookPackage(ctx context.Context, booking *Booking, price int, accessToken string) (*Booking, error) {
	client, err := su.clientFor(accessToken)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(booking.Dates))
	for _, d := range booking.Dates {
		dates = append(dates, d.UTC().Format(time.RFC3339))
	}

	body := map[string]interface{}{
		"p_user_id":    booking.UserID,
		"p_package_id": booking.PackageID,
		"p_dates":      dates,
		"p_price":      price,
		"p_kind":       booking.Kind,
	}

	res := rpc(client, "book_package", body)

	var created Booking
	if err := decodeRpcResult(res, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (su *SupabaseRepo) DeleteBooking(ctx context.Context, userId, bookingId uuid.UUID, accessToken string) error {
	if userId == uuid.Nil || bookingId == uuid.Nil {
		return fmt.Errorf("invalid user or booking ID")
	}

	client, err := su.clientFor(accessToken)
	if err != nil {
		return err
	}

	_, count, err := client.From(BookingsTable).
		Delete("", "exact").
		Eq("id", bookingId.String()).
		Eq("user_id", userId.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete booking: %v", err)
	}
	if count == 0 {
		return fmt.Errorf("no booking found to delete")
	}
	return nil
}

func rpc(client *supabase.Client, name string, body interface{}) string {
	return client.Rpc(name, "", body)
}
