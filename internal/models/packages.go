package models

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Coordinates maps to PostGIS geography(Point,4326)
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Scan allows Coordinates to be read from Postgres
func (c *Coordinates) Scan(src interface{}) error {
	var dataStr string

	switch v := src.(type) {
	case []byte:
		dataStr = string(v)
	case string:
		dataStr = v
	case nil:
		c.Latitude = 0
		c.Longitude = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Coordinates", src)
	}

	// WKT formats first
	var lon, lat float64
	if _, err := fmt.Sscanf(dataStr, "POINT(%f %f)", &lon, &lat); err == nil {
		c.Latitude = lat
		c.Longitude = lon
		return nil
	}
	if _, err := fmt.Sscanf(dataStr, "SRID=4326;POINT(%f %f)", &lon, &lat); err == nil {
		c.Latitude = lat
		c.Longitude = lon
		return nil
	}

	// PostGIS usually returns hex-encoded EWKB over the REST API
	if len(dataStr) >= 32 && isHexString(dataStr) {
		ewkbBytes, err := hex.DecodeString(dataStr)
		if err != nil {
			return fmt.Errorf("failed to decode EWKB hex: %v", err)
		}
		return c.parseEWKB(ewkbBytes)
	}

	return fmt.Errorf("failed to parse coordinates from: %q", dataStr)
}

func isHexString(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

// parseEWKB parses Extended Well-Known Binary format for a PostGIS Point:
// byte 0 endianness, bytes 1-4 type with SRID flag, bytes 5-8 SRID,
// then two float64 coordinates (lon, lat).
func (c *Coordinates) parseEWKB(data []byte) error {
	if len(data) < 25 {
		return fmt.Errorf("EWKB data too short: %d bytes", len(data))
	}

	var order binary.ByteOrder = binary.BigEndian
	if data[0] == 1 {
		order = binary.LittleEndian
	}

	typ := order.Uint32(data[1:5])
	if typ&0x20000000 == 0 {
		return fmt.Errorf("EWKB type does not have SRID flag: %x", typ)
	}

	srid := order.Uint32(data[5:9])
	if srid != 4326 {
		return fmt.Errorf("unexpected SRID: %d (expected 4326)", srid)
	}

	c.Longitude = math.Float64frombits(order.Uint64(data[9:17]))
	c.Latitude = math.Float64frombits(order.Uint64(data[17:25]))

	return nil
}

// Value allows Coordinates to be written into Postgres
func (c Coordinates) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", c.Longitude, c.Latitude), nil
}

// EventPackage is a bookable listing: a tour, rental, club night, etc.
type EventPackage struct {
	ID          uuid.UUID   `db:"id" json:"id,omitempty"`
	CreatorID   uuid.UUID   `db:"creator_id" json:"creator_id,omitempty"`
	Title       string      `db:"title" json:"title" validate:"required"`
	Description string      `db:"description" json:"description"`
	Category    string      `db:"category" json:"category" validate:"required"`
	Location    string      `db:"location" json:"location"`
	Coordinates Coordinates `db:"coordinates" json:"coordinates"`
	Price       int         `db:"price" json:"price" validate:"gte=0"`
	Capacity    *int        `db:"capacity" json:"capacity,omitempty"`
	StartDate   time.Time   `db:"start_date" json:"start_date" validate:"required"`
	EndDate     time.Time   `db:"end_date" json:"end_date" validate:"required"`
	Images      []string    `db:"images" json:"images,omitempty"`
	OpenForPlan bool        `db:"open_for_planning" json:"open_for_planning"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// ContainsDate reports whether d falls inside the package's bookable window,
// endpoints included.
func (p *EventPackage) ContainsDate(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// HasCapacityFor reports whether one more booking fits. A nil capacity means
// unlimited.
func (p *EventPackage) HasCapacityFor(existingBookings int) bool {
	if p.Capacity == nil {
		return true
	}
	return existingBookings < *p.Capacity
}
