package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/models"
)

func newCheckinFixture(profile *models.Profile, booking *models.Booking) (*CheckinService, *fakeAttendanceRepo) {
	attendance := &fakeAttendanceRepo{}
	svc := NewCheckinService(
		&fakeProfileRepo{profile: profile},
		&fakeBookingsRepo{existing: booking},
		attendance,
	)
	return svc, attendance
}

func TestCheckInUnknownEmail(t *testing.T) {
	profile := testTraveler(0)
	svc, _ := newCheckinFixture(profile, nil)

	_, err := svc.CheckIn(context.Background(), CheckinRequest{
		Email:   "someone-else@example.com",
		EventID: uuid.New(),
	})

	assert.ErrorIs(t, err, ErrAttendeeMismatch)
}

func TestCheckInAttendeeMismatch(t *testing.T) {
	profile := testTraveler(0)
	svc, _ := newCheckinFixture(profile, nil)

	// The link was issued for a different attendee
	_, err := svc.CheckIn(context.Background(), CheckinRequest{
		Email:      profile.Email,
		AttendeeID: uuid.New().String(),
		EventID:    uuid.New(),
	})

	assert.ErrorIs(t, err, ErrAttendeeMismatch)
}

func TestCheckInProfileLookupFailureIsNotAMismatch(t *testing.T) {
	profiles := &fakeProfileRepo{emailErr: fmt.Errorf("postgrest unreachable")}
	svc := NewCheckinService(profiles, &fakeBookingsRepo{}, &fakeAttendanceRepo{})

	_, err := svc.CheckIn(context.Background(), CheckinRequest{
		Email:   "traveler@example.com",
		EventID: uuid.New(),
	})

	require.Error(t, err)
	// A remote failure must not masquerade as an unknown attendee
	assert.NotErrorIs(t, err, ErrAttendeeMismatch)
	assert.Contains(t, err.Error(), "postgrest unreachable")
}

func TestCheckInWithoutBooking(t *testing.T) {
	profile := testTraveler(0)
	svc, _ := newCheckinFixture(profile, nil)

	_, err := svc.CheckIn(context.Background(), CheckinRequest{
		Email:   profile.Email,
		EventID: uuid.New(),
	})

	assert.ErrorIs(t, err, ErrNoBookingFound)
}

func TestCheckInRecordsAttendance(t *testing.T) {
	profile := testTraveler(0)
	eventId := uuid.New()
	booking := &models.Booking{
		ID:        uuid.New(),
		UserID:    profile.ID,
		PackageID: eventId,
		Kind:      models.KindReservation,
	}
	svc, attendance := newCheckinFixture(profile, booking)

	start := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	result, err := svc.CheckIn(context.Background(), CheckinRequest{
		Email:      profile.Email,
		AttendeeID: profile.ID.String(),
		EventID:    eventId,
		EventStart: start,
		EventEnd:   end,
	})

	require.NoError(t, err)
	assert.False(t, result.AlreadyChecked)
	require.NotNil(t, attendance.inserted)
	assert.Equal(t, profile.ID, attendance.inserted.UserID)
	assert.Equal(t, eventId, attendance.inserted.EventID)
	assert.Equal(t, start, attendance.inserted.EventStart)
}

func TestCheckInIsIdempotent(t *testing.T) {
	profile := testTraveler(0)
	eventId := uuid.New()
	booking := &models.Booking{
		ID:        uuid.New(),
		UserID:    profile.ID,
		PackageID: eventId,
		Kind:      models.KindReservation,
	}
	svc, attendance := newCheckinFixture(profile, booking)

	req := CheckinRequest{
		Email:      profile.Email,
		AttendeeID: helpers.GeneralAttendee,
		EventID:    eventId,
	}

	first, err := svc.CheckIn(context.Background(), req)
	require.NoError(t, err)
	require.False(t, first.AlreadyChecked)
	firstRow := attendance.inserted

	second, err := svc.CheckIn(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.AlreadyChecked)
	assert.Same(t, firstRow, second.Attendance)
}

func TestBuildCheckinLink(t *testing.T) {
	pkg := testPackage(nil)
	link := BuildCheckinLink("https://wanderly.app", pkg, "general")

	assert.True(t, strings.HasPrefix(link, "https://wanderly.app/event-checkin?"), link)
	assert.Contains(t, link, "event="+pkg.ID.String())
	assert.Contains(t, link, "attendee=general")
}
