package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attendance records that a booked user actually showed up, written by the
// check-in flow after the booking is confirmed to exist.
type Attendance struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	EventID    uuid.UUID `db:"event_id" json:"event_id"`
	EventStart time.Time `db:"event_start" json:"event_start"`
	EventEnd   time.Time `db:"event_end" json:"event_end"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type AttendanceRepo interface {
	FindAttendance(ctx context.Context, userId, eventId uuid.UUID) (*Attendance, error)
	InsertAttendance(ctx context.Context, att *Attendance) (*Attendance, error)
}

func (su *SupabaseRepo) FindAttendance(ctx context.Context, userId, eventId uuid.UUID) (*Attendance, error) {
	if userId == uuid.Nil || eventId == uuid.Nil {
		return nil, fmt.Errorf("invalid user or event ID")
	}

	data, _, err := su.supabaseClient.From(AttendanceTable).
		Select("*", "", false).
		Eq("user_id", userId.String()).
		Eq("event_id", eventId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to look up attendance: %v", err)
	}

	var rows []*Attendance
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendance rows: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (su *SupabaseRepo) InsertAttendance(ctx context.Context, att *Attendance) (*Attendance, error) {
	row := map[string]interface{}{
		"id":          att.ID,
		"user_id":     att.UserID,
		"event_id":    att.EventID,
		"event_start": att.EventStart,
		"event_end":   att.EventEnd,
		"created_at":  att.CreatedAt,
	}

	data, count, err := su.supabaseClient.From(AttendanceTable).
		Insert(row, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert attendance: %v", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no attendance data returned after insert")
	}

	var rows []*Attendance
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendance rows: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no attendance data returned after insert")
	}
	return rows[0], nil
}
