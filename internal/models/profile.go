package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTraveler = "traveler"
	RoleGuide    = "guide"
	RoleAgent    = "agent"
	RoleVenue    = "venue"
	RoleAdmin    = "admin"
)

type Profile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	Password    string    `db:"password" json:"password,omitempty"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Role        string    `db:"role" json:"role" validate:"omitempty,oneof=traveler guide agent venue admin"`
	Credits     int       `db:"credits" json:"credits"`
	Ranking     float64   `db:"ranking" json:"ranking"`
	Bio         string    `db:"bio" json:"bio"`
	Specialties []string  `db:"specialties" json:"specialties"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CanCreatePackages reports whether the role is allowed to publish listings.
func (p *Profile) CanCreatePackages() bool {
	switch p.Role {
	case RoleAgent, RoleVenue, RoleGuide, RoleAdmin:
		return true
	}
	return false
}
