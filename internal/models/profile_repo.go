package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

// ErrProfileNotFound distinguishes a missing profile row from a failed
// lookup, so callers can map the two onto different responses.
var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo interface {
	CreateUser(ctx context.Context, profile *Profile) (interface{}, error)
	AuthenticateUser(ctx context.Context, email, password string) (interface{}, error)
	RefreshToken(ctx context.Context, refreshToken string) (interface{}, error)
	GetProfile(ctx context.Context, id uuid.UUID, accessToken string) (*Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*Profile, error)
	UpdateProfile(ctx context.Context, fields map[string]interface{}, userId uuid.UUID, accessToken string) (*Profile, error)
	DeleteProfile(ctx context.Context, id uuid.UUID, accessToken string) error
	UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string, accessToken string) (string, error)
}

func ConvertToProfile(raw map[string]interface{}) (*Profile, error) {
	profileBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw profile: %v", err)
	}

	profile := &Profile{}
	if err := json.Unmarshal(profileBytes, profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to profile struct: %v", err)
	}

	return profile, nil
}

func (su *SupabaseRepo) CreateUser(ctx context.Context, profile *Profile) (interface{}, error) {
	signed := types.SignupRequest{
		Email:    profile.Email,
		Password: profile.Password,
		Data: map[string]interface{}{
			"display_name": profile.DisplayName,
			"role":         profile.Role,
		},
	}

	res, err := su.supabaseClient.Auth.Signup(signed)
	if err != nil {
		if strings.Contains(err.Error(), "User already Registered") {
			return nil, fmt.Errorf("email already in use")
		}

		errMsg := err.Error()
		if strings.Contains(errMsg, "null value in column") {
			return nil, fmt.Errorf("required field is missing")
		}
		if strings.Contains(errMsg, "unique constraint") {
			return nil, fmt.Errorf("user already exists")
		}
		if strings.Contains(errMsg, "invalid input syntax") {
			return nil, fmt.Errorf("invalid input format")
		}

		return nil, fmt.Errorf("failed to create user")
	}
	return res, nil
}

func (su *SupabaseRepo) AuthenticateUser(ctx context.Context, email, password string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) GetProfile(ctx context.Context, id uuid.UUID, accessToken string) (*Profile, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	client, err := su.clientFor(accessToken)
	if err != nil {
		return nil, err
	}

	raw, status, err := client.From(ProfileTable).
		Select("id,email,display_name,role,credits,ranking,bio,specialties,avatar_url,created_at,updated_at", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		if status != 0 {
			return nil, fmt.Errorf("postgrest error: status=%d body=%s err=%v", status, string(raw), err)
		}
		return nil, fmt.Errorf("failed to get profile by ID: %v", err)
	}

	// Supabase returns an array even for single results
	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile rows: %v", err)
	}

	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}
	if len(profiles) > 1 {
		return nil, fmt.Errorf("multiple profiles found for ID %s", id)
	}

	return &profiles[0], nil
}

func (su *SupabaseRepo) GetProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("email is required")
	}

	raw, _, err := su.supabaseClient.From(ProfileTable).
		Select("id,email,display_name,role,credits,ranking,created_at", "", false).
		Eq("email", strings.ToLower(strings.TrimSpace(email))).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile by email: %v", err)
	}

	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile rows: %v", err)
	}
	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}

	return &profiles[0], nil
}

func (su *SupabaseRepo) UpdateProfile(ctx context.Context, fields map[string]interface{}, userId uuid.UUID, accessToken string) (*Profile, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	client, err := su.clientFor(accessToken)
	if err != nil {
		return nil, err
	}

	raw, count, err := client.From(ProfileTable).
		Update(fields, "", "exact").
		Eq("id", userId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no profile found to update")
	}

	var rawProfiles []map[string]interface{}
	if err := json.Unmarshal(raw, &rawProfiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %v", err)
	}
	if len(rawProfiles) == 0 {
		return nil, fmt.Errorf("no profile data returned after update")
	}

	return ConvertToProfile(rawProfiles[0])
}

func (su *SupabaseRepo) DeleteProfile(ctx context.Context, id uuid.UUID, accessToken string) error {
	if id == uuid.Nil {
		return fmt.Errorf("no valid UUID provided")
	}

	client, err := su.clientFor(accessToken)
	if err != nil {
		return err
	}

	_, count, err := client.From(ProfileTable).Delete("", "exact").Eq("id", id.String()).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete profile: %v", err)
	}
	if count == 0 {
		return fmt.Errorf("no profile found to delete")
	}

	return nil
}

func (su *SupabaseRepo) UpdateAvatar(ctx context.Context, userId uuid.UUID, avatarURL string, accessToken string) (string, error) {
	client, err := su.clientFor(accessToken)
	if err != nil {
		return "", err
	}

	raw, count, err := client.From(ProfileTable).Update(map[string]interface{}{
		"avatar_url": avatarURL,
	}, "", "exact").Eq("id", userId.String()).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to update avatar: %v", err)
	}
	if count == 0 {
		return "", fmt.Errorf("no profile found to update avatar")
	}

	var rawProfiles []map[string]interface{}
	if err := json.Unmarshal(raw, &rawProfiles); err != nil {
		return "", fmt.Errorf("failed to unmarshal updated profile data: %v", err)
	}
	if len(rawProfiles) == 0 {
		return "", fmt.Errorf("no profile data returned after avatar update")
	}

	updated, err := ConvertToProfile(rawProfiles[0])
	if err != nil {
		return "", fmt.Errorf("failed to convert updated profile data: %v", err)
	}

	return updated.AvatarURL, nil
}
