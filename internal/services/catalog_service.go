package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/models"
)

// CatalogFilter narrows package search results. An empty term matches
// everything; a nil date leaves that side of the window open.
type CatalogFilter struct {
	Term     string
	Category string
	From     *time.Time
	To       *time.Time
}

// MatchesFilter is the catalog predicate: case-insensitive substring match of
// the term over title, location and description, category equality, and
// start/end inside the date window.
func MatchesFilter(pkg *models.EventPackage, f CatalogFilter) bool {
	if f.Category != "" && pkg.Category != f.Category {
		return false
	}
	if f.From != nil && pkg.StartDate.Before(*f.From) {
		return false
	}
	if f.To != nil && pkg.EndDate.After(*f.To) {
		return false
	}
	if f.Term == "" {
		return true
	}

	term := strings.ToLower(f.Term)
	return strings.Contains(strings.ToLower(pkg.Title), term) ||
		strings.Contains(strings.ToLower(pkg.Location), term) ||
		strings.Contains(strings.ToLower(pkg.Description), term)
}

type CatalogService struct {
	packagesRepo models.PackagesRepo
	visitorsRepo models.VisitorsRepo
	cld          *cloudinary.Cloudinary
}

func NewCatalogService(packagesRepo models.PackagesRepo, visitorsRepo models.VisitorsRepo, cld *cloudinary.Cloudinary) *CatalogService {
	return &CatalogService{
		packagesRepo: packagesRepo,
		visitorsRepo: visitorsRepo,
		cld:          cld,
	}
}

// Search returns all packages satisfying the filter, in storage order.
// Category and date bounds are pushed down to the store; the free-text term
// is applied here.
func (cs *CatalogService) Search(ctx context.Context, filter CatalogFilter) ([]*models.EventPackage, error) {
	pkgs, err := cs.packagesRepo.ListPackages(ctx, filter.Category, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	if filter.Term == "" {
		return pkgs, nil
	}

	matched := make([]*models.EventPackage, 0, len(pkgs))
	for _, pkg := range pkgs {
		if MatchesFilter(pkg, filter) {
			matched = append(matched, pkg)
		}
	}
	return matched, nil
}

func (cs *CatalogService) CreatePackage(ctx context.Context, pkg *models.EventPackage, creatorId uuid.UUID, accessToken string) (*models.EventPackage, error) {
	if err := models.Validate.Struct(pkg); err != nil {
		return nil, fmt.Errorf("invalid package data provided: %v", err)
	}
	if pkg.EndDate.Before(pkg.StartDate) {
		return nil, fmt.Errorf("end date must not be before start date")
	}
	if pkg.Capacity != nil && *pkg.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive when set")
	}

	now := time.Now()
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	pkg.CreatorID = creatorId
	pkg.CreatedAt = now
	pkg.UpdatedAt = now

	var uploadedPublicIDs []string
	if len(pkg.Images) > 0 && cs.cld != nil {
		urls, publicIDs, err := helpers.UploadImages(ctx, cs.cld, pkg.Images, helpers.PackagesFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload images: %v", err)
		}
		pkg.Images = urls
		uploadedPublicIDs = publicIDs
	}

	created, err := cs.packagesRepo.CreatePackage(ctx, pkg, accessToken)
	if err != nil {
		// The listing insert failed, so orphaned uploads are cleaned up
		if len(uploadedPublicIDs) > 0 {
			helpers.DeleteImages(ctx, cs.cld, helpers.PackagesFolder, uploadedPublicIDs)
		}
		return nil, err
	}

	return created, nil
}

// GetPackage fetches one package and records the viewer's visit. The visit
// write is idempotent per (package, user) and never fails the read.
func (cs *CatalogService) GetPackage(ctx context.Context, id uuid.UUID, viewerId uuid.UUID) (*models.EventPackage, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid package ID")
	}

	pkg, err := cs.packagesRepo.GetPackageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, nil
	}

	if viewerId != uuid.Nil && cs.visitorsRepo != nil {
		_ = cs.visitorsRepo.RecordVisit(ctx, id.String(), viewerId.String())
	}

	return pkg, nil
}

func (cs *CatalogService) ListByCreator(ctx context.Context, creatorId uuid.UUID) ([]*models.EventPackage, error) {
	if creatorId == uuid.Nil {
		return nil, fmt.Errorf("invalid creator ID")
	}
	return cs.packagesRepo.ListPackagesByCreator(ctx, creatorId)
}

func (cs *CatalogService) DeletePackage(ctx context.Context, creatorId, packageId uuid.UUID, accessToken string) error {
	if creatorId == uuid.Nil || packageId == uuid.Nil {
		return fmt.Errorf("invalid creator or package ID")
	}
	return cs.packagesRepo.DeletePackage(ctx, creatorId, packageId, accessToken)
}

func (cs *CatalogService) GetVisitorStats(ctx context.Context, packageId uuid.UUID) (*models.VisitorStats, error) {
	if packageId == uuid.Nil {
		return nil, fmt.Errorf("invalid package ID")
	}
	return cs.visitorsRepo.GetVisitorStats(ctx, packageId.String())
}
