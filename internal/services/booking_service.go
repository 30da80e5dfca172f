package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/clients"
	"github.com/wanderly/wanderly-server/internal/models"
)

// Validation failures are surfaced before any write happens.
var (
	ErrPackageNotFound     = errors.New("package not found")
	ErrFullyBooked         = errors.New("package is fully booked")
	ErrNoDatesSelected     = errors.New("at least one date must be selected")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrRoleNotAllowed      = errors.New("role is not allowed to perform this action")
)

// DateConflictError reports which chosen dates are already booked for the
// (user, package) pair.
type DateConflictError struct {
	Dates []time.Time
}

func (e *DateConflictError) Error() string {
	return fmt.Sprintf("%d selected date(s) are already booked", len(e.Dates))
}

// OutsideWindowError reports chosen dates outside the package's bookable
// window.
type OutsideWindowError struct {
	Dates []time.Time
}

func (e *OutsideWindowError) Error() string {
	return fmt.Sprintf("%d selected date(s) fall outside the package dates", len(e.Dates))
}

// BookingNotifier sends the fire-and-forget booking confirmation.
type BookingNotifier interface {
	NotifyBooking(ctx context.Context, notification clients.BookingNotification)
}

// BookingRequest is one confirm action of the booking dialog, either a
// traveler reservation or a guide application depending on Kind.
type BookingRequest struct {
	UserID      uuid.UUID
	PackageID   uuid.UUID
	Kind        models.BookingKind
	Dates       []time.Time
	AccessToken string
}

type BookingService struct {
	packagesRepo models.PackagesRepo
	bookingsRepo models.BookingsRepo
	profileRepo  models.ProfileRepo
	notifier     BookingNotifier
}

func NewBookingService(packagesRepo models.PackagesRepo, bookingsRepo models.BookingsRepo, profileRepo models.ProfileRepo, notifier BookingNotifier) *BookingService {
	return &BookingService{
		packagesRepo: packagesRepo,
		bookingsRepo: bookingsRepo,
		profileRepo:  profileRepo,
		notifier:     notifier,
	}
}

// RoleAllowed maps roles to the booking action they may take: travelers (and
// agents booking on a client's behalf) reserve, guides apply.
func RoleAllowed(kind models.BookingKind, role string) bool {
	switch kind {
	case models.KindReservation:
		return role == models.RoleTraveler || role == models.RoleAgent || role == models.RoleAdmin
	case models.KindGuideApplication:
		return role == models.RoleGuide || role == models.RoleAdmin
	}
	return false
}

// CheckAvailability is the capacity gate that runs before the date-selection
// dialog opens. Returns ErrFullyBooked when no seat is left.
func (bs *BookingService) CheckAvailability(ctx context.Context, packageId uuid.UUID) (*models.EventPackage, error) {
	pkg, err := bs.packagesRepo.GetPackageByID(ctx, packageId)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	count, err := bs.bookingsRepo.CountBookings(ctx, packageId)
	if err != nil {
		return nil, err
	}
	if !pkg.HasCapacityFor(count) {
		return nil, ErrFullyBooked
	}

	return pkg, nil
}

// Book runs the whole confirm sequence: capacity gate, date bounds, conflict
// check against already-booked dates, credit check, then a single
// transactional commit. Dates are compared by exact UTC timestamp.
func (bs *BookingService) Book(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	if req.UserID == uuid.Nil || req.PackageID == uuid.Nil {
		return nil, fmt.Errorf("invalid user or package ID")
	}
	if len(req.Dates) == 0 {
		return nil, ErrNoDatesSelected
	}

	pkg, err := bs.CheckAvailability(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	var outside []time.Time
	for _, d := range req.Dates {
		if !pkg.ContainsDate(d) {
			outside = append(outside, d)
		}
	}
	if len(outside) > 0 {
		return nil, &OutsideWindowError{Dates: outside}
	}

	booked, err := bs.bookingsRepo.ListBookedDates(ctx, req.UserID, req.PackageID)
	if err != nil {
		return nil, err
	}
	if conflicts := IntersectDates(req.Dates, booked); len(conflicts) > 0 {
		return nil, &DateConflictError{Dates: conflicts}
	}

	profile, err := bs.profileRepo.GetProfile(ctx, req.UserID, req.AccessToken)
	if err != nil {
		return nil, err
	}
	if !RoleAllowed(req.Kind, profile.Role) {
		return nil, ErrRoleNotAllowed
	}

	price := 0
	if req.Kind.SpendsCredits() {
		price = pkg.Price
		if profile.Credits < price {
			return nil, ErrInsufficientCredits
		}
	}

	booking := &models.Booking{
		ID:        uuid.New(),
		UserID:    req.UserID,
		PackageID: req.PackageID,
		Kind:      req.Kind,
		Dates:     normalizeDates(req.Dates),
		CreatedAt: time.Now(),
	}

	created, err := bs.bookingsRepo.BookPackage(ctx, booking, price, req.AccessToken)
	if err != nil {
		return nil, err
	}

	if bs.notifier != nil {
		bs.notifier.NotifyBooking(ctx, clients.BookingNotification{
			EventTitle: pkg.Title,
			EventStart: pkg.StartDate,
			EventEnd:   pkg.EndDate,
			Dates:      created.Dates,
		})
	}

	return created, nil
}

func (bs *BookingService) ListForUser(ctx context.Context, userId uuid.UUID, accessToken string) ([]*models.Booking, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	return bs.bookingsRepo.ListBookingsByUser(ctx, userId, accessToken)
}

func (bs *BookingService) Cancel(ctx context.Context, userId, bookingId uuid.UUID, accessToken string) error {
	if userId == uuid.Nil || bookingId == uuid.Nil {
		return fmt.Errorf("invalid user or booking ID")
	}
	return bs.bookingsRepo.DeleteBooking(ctx, userId, bookingId, accessToken)
}

// IntersectDates returns the members of chosen that also appear in booked,
// compared by exact UTC timestamp.
func IntersectDates(chosen, booked []time.Time) []time.Time {
	taken := make(map[int64]struct{}, len(booked))
	for _, d := range booked {
		taken[d.UTC().UnixMilli()] = struct{}{}
	}

	var conflicts []time.Time
	seen := make(map[int64]struct{})
	for _, d := range chosen {
		key := d.UTC().UnixMilli()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := taken[key]; ok {
			conflicts = append(conflicts, d)
		}
	}
	return conflicts
}

// normalizeDates converts the selection to UTC, drops repeated instants and
// sorts, so the stored dates form a set.
func normalizeDates(dates []time.Time) []time.Time {
	seen := make(map[int64]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		u := d.UTC()
		key := u.UnixMilli()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
