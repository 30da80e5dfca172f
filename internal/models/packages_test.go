package models

import (
	"testing"
	"time"
)

func TestCoordinatesScanWKT(t *testing.T) {
	var c Coordinates
	if err := c.Scan("POINT(-122.419400 37.774900)"); err != nil {
		t.Fatalf("Failed to scan WKT point: %v", err)
	}

	if c.Longitude != -122.4194 {
		t.Errorf("Longitude = %f, want -122.4194", c.Longitude)
	}
	if c.Latitude != 37.7749 {
		t.Errorf("Latitude = %f, want 37.7749", c.Latitude)
	}
}

func TestCoordinatesScanNil(t *testing.T) {
	var c Coordinates
	if err := c.Scan(nil); err != nil {
		t.Fatalf("Scanning nil should not fail: %v", err)
	}
	if c.Latitude != 0 || c.Longitude != 0 {
		t.Error("Nil scan should zero the coordinates")
	}
}

func TestCoordinatesValueRoundTrip(t *testing.T) {
	c := Coordinates{Latitude: 41.9028, Longitude: 12.4964}
	v, err := c.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}

	var back Coordinates
	if err := back.Scan(v); err != nil {
		t.Fatalf("Failed to scan back: %v", err)
	}
	if back != c {
		t.Errorf("Round trip changed coordinates: %+v != %+v", back, c)
	}
}

func TestContainsDateEndpointsInclusive(t *testing.T) {
	pkg := &EventPackage{
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	if !pkg.ContainsDate(pkg.StartDate) {
		t.Error("Start date should be bookable")
	}
	if !pkg.ContainsDate(pkg.EndDate) {
		t.Error("End date should be bookable")
	}
	if pkg.ContainsDate(pkg.StartDate.Add(-time.Second)) {
		t.Error("Date before the window should not be bookable")
	}
	if pkg.ContainsDate(pkg.EndDate.Add(time.Second)) {
		t.Error("Date after the window should not be bookable")
	}
}

func TestHasCapacityFor(t *testing.T) {
	unlimited := &EventPackage{}
	if !unlimited.HasCapacityFor(100000) {
		t.Error("Nil capacity should mean unlimited")
	}

	seats := 8
	limited := &EventPackage{Capacity: &seats}
	if !limited.HasCapacityFor(7) {
		t.Error("Seven of eight seats taken should leave room")
	}
	if limited.HasCapacityFor(8) {
		t.Error("Eight of eight seats taken should be full")
	}
}
