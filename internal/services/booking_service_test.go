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

func intPtr(v int) *int { return &v }

func testPackage(capacity *int) *models.EventPackage {
	return &models.EventPackage{
		ID:        uuid.New(),
		CreatorID: uuid.New(),
		Title:     "Island Hopping Week",
		Category:  "tour",
		Price:     50,
		Capacity:  capacity,
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func testTraveler(credits int) *models.Profile {
	return &models.Profile{
		ID:      uuid.New(),
		Email:   "traveler@example.com",
		Role:    models.RoleTraveler,
		Credits: credits,
	}
}

func newBookingFixture(pkg *models.EventPackage, profile *models.Profile) (*BookingService, *fakeBookingsRepo, *fakeNotifier) {
	bookings := &fakeBookingsRepo{}
	notifier := &fakeNotifier{}
	svc := NewBookingService(
		&fakePackagesRepo{pkg: pkg},
		bookings,
		&fakeProfileRepo{profile: profile},
		notifier,
	)
	return svc, bookings, notifier
}

func TestBookRejectsEmptyDateSelection(t *testing.T) {
	pkg := testPackage(nil)
	profile := testTraveler(100)
	svc, bookings, _ := newBookingFixture(pkg, profile)

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
	})

	assert.ErrorIs(t, err, ErrNoDatesSelected)
	assert.Zero(t, bookings.bookCalls)
}

func TestBookUnknownPackage(t *testing.T) {
	profile := testTraveler(100)
	svc, _, _ := newBookingFixture(testPackage(nil), profile)

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: uuid.New(),
		Kind:      models.KindReservation,
		Dates:     []time.Time{time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
	})

	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestBookFullyBookedPackage(t *testing.T) {
	pkg := testPackage(intPtr(8))
	profile := testTraveler(100)
	svc, bookings, _ := newBookingFixture(pkg, profile)
	bookings.count = 8

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
		Dates:     []time.Time{time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
	})

	assert.ErrorIs(t, err, ErrFullyBooked)
	assert.Zero(t, bookings.bookCalls)
}

func TestBookLastSeatStillAvailable(t *testing.T) {
	pkg := testPackage(intPtr(8))
	profile := testTraveler(100)
	svc, bookings, _ := newBookingFixture(pkg, profile)
	bookings.count = 7

	booking, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
		Dates:     []time.Time{time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, bookings.bookCalls)
	assert.Equal(t, pkg.ID, booking.PackageID)
}

func TestBookDatesOutsidePackageWindow(t *testing.T) {
	pkg := testPackage(nil)
	profile := testTraveler(100)
	svc, bookings, _ := newBookingFixture(pkg, profile)

	tooEarly := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	inside := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
		Dates:     []time.Time{tooEarly, inside},
	})

	var outside *OutsideWindowError
	require.ErrorAs(t, err, &outside)
	assert.Equal(t, []time.Time{tooEarly}, outside.Dates)
	assert.Zero(t, bookings.bookCalls)
}

func TestBookWindowEndpointsAreBookable(t *testing.T) {
	pkg := testPackage(nil)
	profile := testTraveler(100)
	svc, _, _ := newBookingFixture(pkg, profile)

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
		Dates:     []time.Time{pkg.StartDate, pkg.EndDate},
	})

	assert.NoError(t, err)
}

func TestBookConflictingDateLeavesCreditsUntouched(t *testing.T) {
	pkg := testPackage(nil)
	profile := testTraveler(100)
	svc, bookings, _ := newBookingFixture(pkg, profile)

	taken := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	bookings.booked = []time.Time{taken}

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
		Dates:     []time.Time{taken, time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC)},
	})

	var conflict *DateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []time.Time{taken}, conflict.Dates)
	// The transactional write never ran, so no credits moved
	assert.Zero(t, bookings.bookCalls)
	assert.Equal(t, 100, profile.Credits)
}

func TestBookInsufficientCredits(t *testing.T) {
	pkg := testPackage(nil)
	pkg.Price = 150
	profile := testTraveler(100)
	svc, bookings, _ := newBookingFixture(pkg, profile)

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
		Dates:     []time.Time{time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
	})

	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Zero(t, bookings.bookCalls)
}

func TestBookReservationSpendsPackagePrice(t *testing.T) {
	pkg := testPackage(nil)
	profile := testTraveler(100)
	svc, bookings, notifier := newBookingFixture(pkg, profile)

	booking, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
		Dates: []time.Time{
			time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 50, bookings.lastPrice)
	// Dates come back in UTC, sorted
	require.Len(t, booking.Dates, 2)
	assert.True(t, booking.Dates[0].Before(booking.Dates[1]))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, pkg.Title, notifier.sent[0].EventTitle)
}

func TestBookDeduplicatesRepeatedDates(t *testing.T) {
	pkg := testPackage(nil)
	profile := testTraveler(100)
	svc, _, _ := newBookingFixture(pkg, profile)

	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	booking, err := svc.Book(context.Background(), BookingRequest{
		UserID:    profile.ID,
		PackageID: pkg.ID,
		Kind:      models.KindReservation,
		Dates:     []time.Time{day, day.In(time.FixedZone("UTC+2", 2*3600)), day},
	})

	require.NoError(t, err)
	// The same instant picked three times is stored once
	require.Len(t, booking.Dates, 1)
	assert.True(t, booking.Dates[0].Equal(day))
}

func TestBookGuideApplicationIsFree(t *testing.T) {
	pkg := testPackage(nil)
	guide := &models.Profile{
		ID:      uuid.New(),
		Email:   "guide@example.com",
		Role:    models.RoleGuide,
		Credits: 0,
	}
	svc, bookings, _ := newBookingFixture(pkg, guide)

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    guide.ID,
		PackageID: pkg.ID,
		Kind:      models.KindGuideApplication,
		Dates:     []time.Time{time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, bookings.lastPrice)
}

func TestBookRoleGating(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		kind    models.BookingKind
		allowed bool
	}{
		{"traveler reserves", models.RoleTraveler, models.KindReservation, true},
		{"agent reserves for a client", models.RoleAgent, models.KindReservation, true},
		{"guide cannot reserve", models.RoleGuide, models.KindReservation, false},
		{"guide applies", models.RoleGuide, models.KindGuideApplication, true},
		{"traveler cannot apply", models.RoleTraveler, models.KindGuideApplication, false},
		{"admin can do both", models.RoleAdmin, models.KindReservation, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, RoleAllowed(tt.kind, tt.role))
		})
	}
}

func TestIntersectDatesComparesInstantsNotZones(t *testing.T) {
	utc := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	shifted := utc.In(time.FixedZone("UTC+2", 2*3600))

	conflicts := IntersectDates([]time.Time{shifted}, []time.Time{utc})
	assert.Len(t, conflicts, 1)
}

func TestIntersectDatesDistinctTimestampsDoNotConflict(t *testing.T) {
	a := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	b := a.Add(time.Hour)

	assert.Empty(t, IntersectDates([]time.Time{a}, []time.Time{b}))
}

func TestCheckAvailabilityUnlimitedCapacity(t *testing.T) {
	pkg := testPackage(nil)
	svc, bookings, _ := newBookingFixture(pkg, testTraveler(0))
	bookings.count = 5000

	got, err := svc.CheckAvailability(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, pkg.ID, got.ID)
}
