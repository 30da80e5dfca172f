package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/clients"
	"github.com/wanderly/wanderly-server/internal/models"
)

// In-memory stand-ins for the Supabase-backed repositories.

type fakePackagesRepo struct {
	pkg *models.EventPackage
}

func (f *fakePackagesRepo) CreatePackage(ctx context.Context, pkg *models.EventPackage, accessToken string) (*models.EventPackage, error) {
	f.pkg = pkg
	return pkg, nil
}

func (f *fakePackagesRepo) GetPackageByID(ctx context.Context, id uuid.UUID) (*models.EventPackage, error) {
	if f.pkg != nil && f.pkg.ID == id {
		return f.pkg, nil
	}
	return nil, nil
}

func (f *fakePackagesRepo) ListPackages(ctx context.Context, category string, from, to *time.Time) ([]*models.EventPackage, error) {
	if f.pkg == nil {
		return nil, nil
	}
	return []*models.EventPackage{f.pkg}, nil
}

func (f *fakePackagesRepo) ListPackagesByCreator(ctx context.Context, creatorId uuid.UUID) ([]*models.EventPackage, error) {
	if f.pkg != nil && f.pkg.CreatorID == creatorId {
		return []*models.EventPackage{f.pkg}, nil
	}
	return nil, nil
}

func (f *fakePackagesRepo) DeletePackage(ctx context.Context, creatorId, packageId uuid.UUID, accessToken string) error {
	f.pkg = nil
	return nil
}

type fakeBookingsRepo struct {
	count    int
	booked   []time.Time
	existing *models.Booking

	created   *models.Booking
	lastPrice int
	bookCalls int
}

func (f *fakeBookingsRepo) CountBookings(ctx context.Context, packageId uuid.UUID) (int, error) {
	return f.count, nil
}

func (f *fakeBookingsRepo) ListBookedDates(ctx context.Context, userId, packageId uuid.UUID) ([]time.Time, error) {
	return f.booked, nil
}

func (f *fakeBookingsRepo) FindBooking(ctx context.Context, userId, packageId uuid.UUID) (*models.Booking, error) {
	if f.existing != nil && f.existing.UserID == userId && f.existing.PackageID == packageId {
		return f.existing, nil
	}
	return nil, nil
}

func (f *fakeBookingsRepo) ListBookingsByUser(ctx context.Context, userId uuid.UUID, accessToken string) ([]*models.Booking, error) {
	if f.existing != nil && f.existing.UserID == userId {
		return []*models.Booking{f.existing}, nil
	}
	return nil, nil
}

func (f *fakeBookingsRepo) BookPackage(ctx context.Context, booking *models.Booking, price int, accessToken string) (*models.Booking, error) {
	f.bookCalls++
	f.lastPrice = price
	f.created = booking
	return booking, nil
}

func (f *fakeBookingsRepo) DeleteBooking(ctx context.Context, userId, bookingId uuid.UUID, accessToken string) error {
	f.existing = nil
	return nil
}

type fakeProfileRepo struct {
	profile *models.Profile
	// emailErr simulates a failed remote lookup, as opposed to a missing row
	emailErr error
}

func (f *fakeProfileRepo) CreateUser(ctx context.Context, profile *models.Profile) (interface{}, error) {
	f.profile = profile
	return profile, nil
}

func (f *fakeProfileRepo) AuthenticateUser(ctx context.Context, email, password string) (interface{}, error) {
	return nil, fmt.Errorf("not supported in tests")
}

func (f *fakeProfileRepo) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	return nil, fmt.Errorf("not supported in tests")
}

func (f *fakeProfileRepo) GetProfile(ctx context.Context, id uuid.UUID, accessToken string) (*models.Profile, error) {
	if f.profile == nil || f.profile.ID != id {
		return nil, models.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeProfileRepo) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	if f.profile == nil || f.profile.Email != email {
		return nil, models.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeProfileRepo) UpdateProfile(ctx context.Context, fields map[string]interface{}, userId uuid.UUID, accessToken string) (*models.Profile, error) {
	return f.profile, nil
}

func (f *fakeProfileRepo) DeleteProfile(ctx context.Context, id uuid.UUID, accessToken string) error {
	f.profile = nil
	return nil
}

func (f *fakeProfileRepo) UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string, accessToken string) (string, error) {
	return avatarURL, nil
}

type fakeVisitorsRepo struct {
	visits map[string][]string // package id -> viewer ids
}

func (f *fakeVisitorsRepo) RecordVisit(ctx context.Context, packageId, userId string) error {
	if f.visits == nil {
		f.visits = make(map[string][]string)
	}
	for _, v := range f.visits[packageId] {
		if v == userId {
			return nil
		}
	}
	f.visits[packageId] = append(f.visits[packageId], userId)
	return nil
}

func (f *fakeVisitorsRepo) GetVisitorStats(ctx context.Context, packageId string) (*models.VisitorStats, error) {
	return &models.VisitorStats{
		PackageID:     packageId,
		TotalVisitors: int64(len(f.visits[packageId])),
	}, nil
}

func (f *fakeVisitorsRepo) EnsureVisitorIndexes(ctx context.Context) error {
	return nil
}

type fakeNotifier struct {
	sent []clients.BookingNotification
}

func (f *fakeNotifier) NotifyBooking(ctx context.Context, notification clients.BookingNotification) {
	f.sent = append(f.sent, notification)
}

type fakeAttendanceRepo struct {
	existing *models.Attendance
	inserted *models.Attendance
}

func (f *fakeAttendanceRepo) FindAttendance(ctx context.Context, userId, eventId uuid.UUID) (*models.Attendance, error) {
	if f.existing != nil && f.existing.UserID == userId && f.existing.EventID == eventId {
		return f.existing, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) InsertAttendance(ctx context.Context, att *models.Attendance) (*models.Attendance, error) {
	f.inserted = att
	f.existing = att
	return att, nil
}

type fakePaymentsRepo struct {
	balance    int
	payments   []*models.Payment
	lastIntent string
}

func (f *fakePaymentsRepo) ApplyPayment(ctx context.Context, userId uuid.UUID, credits int, intentId string, accessToken string) (int, error) {
	f.balance += credits
	f.lastIntent = intentId
	f.payments = append(f.payments, &models.Payment{
		ID:       uuid.New(),
		UserID:   userId,
		Credits:  credits,
		IntentID: intentId,
	})
	return f.balance, nil
}

func (f *fakePaymentsRepo) ListPayments(ctx context.Context, userId uuid.UUID, accessToken string) ([]*models.Payment, error) {
	return f.payments, nil
}

type fakeCheckout struct {
	lastReq clients.CheckoutRequest
	resp    *clients.CheckoutResponse
	err     error
}

func (f *fakeCheckout) CreateSession(ctx context.Context, req clients.CheckoutRequest) (*clients.CheckoutResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &clients.CheckoutResponse{CheckoutURL: "https://checkout.test/session", SessionID: "sess_1"}, nil
}
