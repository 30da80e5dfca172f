package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingKind distinguishes a traveler reservation from a guide application.
// Both share the same record shape and workflow.
type BookingKind string

const (
	KindReservation      BookingKind = "reservation"
	KindGuideApplication BookingKind = "guide_application"
)

// SpendsCredits reports whether this kind debits the user's balance.
func (k BookingKind) SpendsCredits() bool {
	return k == KindReservation
}

type Booking struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	UserID    uuid.UUID   `db:"user_id" json:"user_id"`
	PackageID uuid.UUID   `db:"package_id" json:"package_id"`
	Kind      BookingKind `db:"kind" json:"kind"`
	Dates     []time.Time `db:"dates" json:"dates"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

type BookingsRepo interface {
	CountBookings(ctx context.Context, packageId uuid.UUID) (int, error)
	ListBookedDates(ctx context.Context, userId, packageId uuid.UUID) ([]time.Time, error)
	FindBooking(ctx context.Context, userId, packageId uuid.UUID) (*Booking, error)
	ListBookingsByUser(ctx context.Context, userId uuid.UUID, accessToken string) ([]*Booking, error)
	// BookPackage runs the book_package function: credit decrement and
	// booking insert in one transaction.
	BookPackage(ctx context.Context, booking *Booking, price int, accessToken string) (*Booking, error)
	DeleteBooking(ctx context.Context, userId, bookingId uuid.UUID, accessToken string) error
}
