package models

import (
	"strings"
	"testing"
)

func TestDecodeRpcResultSniffsErrors(t *testing.T) {
	body := `{"code":"P0001","message":"insufficient credits"}`

	var out Booking
	err := decodeRpcResult(body, &out)
	if err == nil {
		t.Fatal("Expected an error for a PostgREST error payload")
	}
	if !strings.Contains(err.Error(), "insufficient credits") {
		t.Errorf("Error should carry the database message, got: %v", err)
	}
}

func TestDecodeRpcResultEmptyBody(t *testing.T) {
	if err := decodeRpcResult("", nil); err == nil {
		t.Error("Empty body should be treated as a failure")
	}
}

func TestDecodeRpcResultUnmarshalsPayload(t *testing.T) {
	body := `{"kind":"reservation"}`

	var out Booking
	if err := decodeRpcResult(body, &out); err != nil {
		t.Fatalf("decodeRpcResult failed: %v", err)
	}
	if out.Kind != KindReservation {
		t.Errorf("Kind = %q, want %q", out.Kind, KindReservation)
	}
}

func TestBookingKindSpendsCredits(t *testing.T) {
	if !KindReservation.SpendsCredits() {
		t.Error("Reservations should spend credits")
	}
	if KindGuideApplication.SpendsCredits() {
		t.Error("Guide applications should not spend credits")
	}
}
