package helpers

import (
	"testing"
	"time"
)

func TestCheckinLinkRoundTrip(t *testing.T) {
	start := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	link := CheckinLink{
		Origin:   "https://wanderly.app",
		EventID:  "3f1c9d2e-0000-0000-0000-000000000000",
		Attendee: "general",
		Title:    "Rome Food Walk",
		Start:    start,
		End:      start.Add(3 * time.Hour),
	}

	parsed, err := ParseCheckinLink(link.String())
	if err != nil {
		t.Fatalf("Failed to parse generated link: %v", err)
	}

	if parsed.EventID != link.EventID {
		t.Errorf("EventID = %q, want %q", parsed.EventID, link.EventID)
	}
	if parsed.Attendee != link.Attendee {
		t.Errorf("Attendee = %q, want %q", parsed.Attendee, link.Attendee)
	}
	if parsed.Title != link.Title {
		t.Errorf("Title = %q, want %q", parsed.Title, link.Title)
	}
	if !parsed.Start.Equal(link.Start) {
		t.Errorf("Start = %v, want %v", parsed.Start, link.Start)
	}
	if !parsed.End.Equal(link.End) {
		t.Errorf("End = %v, want %v", parsed.End, link.End)
	}
}

func TestCheckinLinkDefaultsToGeneralAttendee(t *testing.T) {
	link := CheckinLink{
		Origin:  "https://wanderly.app",
		EventID: "abc",
	}

	parsed, err := ParseCheckinLink(link.String())
	if err != nil {
		t.Fatalf("Failed to parse link: %v", err)
	}
	if parsed.Attendee != GeneralAttendee {
		t.Errorf("Attendee = %q, want %q", parsed.Attendee, GeneralAttendee)
	}
}

func TestParseCheckinLinkRejectsOtherPaths(t *testing.T) {
	if _, err := ParseCheckinLink("https://wanderly.app/packages?event=abc"); err == nil {
		t.Error("Non check-in paths should be rejected")
	}
}

func TestParseCheckinLinkRequiresEvent(t *testing.T) {
	if _, err := ParseCheckinLink("https://wanderly.app/event-checkin?attendee=general"); err == nil {
		t.Error("Links without an event id should be rejected")
	}
}
