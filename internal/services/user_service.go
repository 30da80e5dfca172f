package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/models"
)

type UserService struct {
	profileRepo models.ProfileRepo
	reviewsRepo models.ReviewsRepo
}

func NewUserService(profileRepo models.ProfileRepo, reviewsRepo models.ReviewsRepo) *UserService {
	return &UserService{
		profileRepo: profileRepo,
		reviewsRepo: reviewsRepo,
	}
}

func (us *UserService) CreateUser(profile *models.Profile) (interface{}, error) {
	if err := models.Validate.Struct(profile); err != nil {
		return nil, err
	}

	if !helpers.IsPasswordStrong(profile.Password) {
		return nil, fmt.Errorf("password is not strong enough")
	}

	if profile.Role == "" {
		profile.Role = models.RoleTraveler
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	return us.profileRepo.CreateUser(context.Background(), profile)
}

func (us *UserService) AuthenticateUser(email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %v", err)
	}
	response, err := us.profileRepo.AuthenticateUser(context.Background(), email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %v", err)
	}

	return response, nil
}

func (us *UserService) RefreshToken(refreshToken string) (interface{}, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	response, err := us.profileRepo.RefreshToken(context.Background(), refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}

// GetProfile returns the profile with the guide ranking refreshed from the
// review average when one exists.
func (us *UserService) GetProfile(id uuid.UUID, accessToken string) (*models.Profile, error) {
	profile, err := us.profileRepo.GetProfile(context.Background(), id, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %v", err)
	}

	if profile.Role == models.RoleGuide && us.reviewsRepo != nil {
		if ranking, err := us.reviewsRepo.GetGuideRanking(context.Background(), profile.ID); err == nil && ranking > 0 {
			profile.Ranking = ranking
		}
	}

	return profile, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, fields map[string]interface{}, userId uuid.UUID, accessToken string) (*models.Profile, error) {
	fields["updated_at"] = time.Now()

	updated, err := us.profileRepo.UpdateProfile(ctx, fields, userId, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}

	return updated, nil
}

func (us *UserService) DeleteProfile(ctx context.Context, id uuid.UUID, accessToken string) error {
	if err := us.profileRepo.DeleteProfile(ctx, id, accessToken); err != nil {
		return fmt.Errorf("failed to delete profile: %v", err)
	}
	return nil
}

func (us *UserService) UploadAvatar(ctx context.Context, userId uuid.UUID, avatarURL string, accessToken string) (string, error) {
	if userId == uuid.Nil {
		return "", fmt.Errorf("no valid UUID provided")
	}

	url, err := us.profileRepo.UpdateAvatar(ctx, userId, avatarURL, accessToken)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %v", err)
	}

	return url, nil
}
