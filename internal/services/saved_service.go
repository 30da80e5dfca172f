package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/models"
)

type SavedService struct {
	savedRepo models.SavedRepo
}

func NewSavedService(savedRepo models.SavedRepo) *SavedService {
	return &SavedService{
		savedRepo: savedRepo,
	}
}

func (ss *SavedService) SavePackage(ctx context.Context, userId uuid.UUID, packageId string) (*models.SavedList, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	if strings.TrimSpace(packageId) == "" {
		return nil, fmt.Errorf("package ID cannot be empty")
	}

	return ss.savedRepo.SavePackage(ctx, userId, packageId)
}

func (ss *SavedService) UnsavePackage(ctx context.Context, userId uuid.UUID, packageId string) error {
	if userId == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}
	if strings.TrimSpace(packageId) == "" {
		return fmt.Errorf("package ID cannot be empty")
	}

	return ss.savedRepo.UnsavePackage(ctx, userId, packageId)
}

func (ss *SavedService) GetSaved(ctx context.Context, userId uuid.UUID) (*models.SavedList, error) {
	if userId == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	return ss.savedRepo.GetSavedByUserID(ctx, userId)
}
