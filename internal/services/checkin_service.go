package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/models"
)

var (
	ErrAttendeeMismatch = errors.New("profile does not match the expected attendee")
	ErrNoBookingFound   = errors.New("no booking found for this event")
)

// CheckinRequest is one submission of the scanned check-in form.
type CheckinRequest struct {
	Email      string
	AttendeeID string // profile id or "general"
	EventID    uuid.UUID
	EventStart time.Time
	EventEnd   time.Time
}

// CheckinResult reports whether the attendance row was created now or had
// already been recorded by an earlier scan.
type CheckinResult struct {
	Attendance     *models.Attendance
	AlreadyChecked bool
}

type CheckinService struct {
	profileRepo    models.ProfileRepo
	bookingsRepo   models.BookingsRepo
	attendanceRepo models.AttendanceRepo
}

func NewCheckinService(profileRepo models.ProfileRepo, bookingsRepo models.BookingsRepo, attendanceRepo models.AttendanceRepo) *CheckinService {
	return &CheckinService{
		profileRepo:    profileRepo,
		bookingsRepo:   bookingsRepo,
		attendanceRepo: attendanceRepo,
	}
}

// CheckIn validates the scanned link against a submitted email: the email
// must resolve to a profile, the profile must match the link's attendee id,
// and a booking must exist for (user, event). Resubmissions return the
// existing attendance row instead of inserting a duplicate.
func (cs *CheckinService) CheckIn(ctx context.Context, req CheckinRequest) (*CheckinResult, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.EventID == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}

	profile, err := cs.profileRepo.GetProfileByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrProfileNotFound) {
		return nil, ErrAttendeeMismatch
	}
	if err != nil {
		return nil, err
	}

	if req.AttendeeID != "" && req.AttendeeID != helpers.GeneralAttendee {
		if profile.ID.String() != req.AttendeeID {
			return nil, ErrAttendeeMismatch
		}
	}

	booking, err := cs.bookingsRepo.FindBooking(ctx, profile.ID, req.EventID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNoBookingFound
	}

	existing, err := cs.attendanceRepo.FindAttendance(ctx, profile.ID, req.EventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CheckinResult{Attendance: existing, AlreadyChecked: true}, nil
	}

	att := &models.Attendance{
		ID:         uuid.New(),
		UserID:     profile.ID,
		EventID:    req.EventID,
		EventStart: req.EventStart,
		EventEnd:   req.EventEnd,
		CreatedAt:  time.Now(),
	}

	created, err := cs.attendanceRepo.InsertAttendance(ctx, att)
	if err != nil {
		return nil, err
	}

	return &CheckinResult{Attendance: created}, nil
}

// BuildCheckinLink renders the scannable link for a package, optionally
// pinned to one attendee.
func BuildCheckinLink(origin string, pkg *models.EventPackage, attendeeId string) string {
	link := helpers.CheckinLink{
		Origin:   origin,
		EventID:  pkg.ID.String(),
		Attendee: attendeeId,
		Title:    pkg.Title,
		Start:    pkg.StartDate,
		End:      pkg.EndDate,
	}
	return link.String()
}
