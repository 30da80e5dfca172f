package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PackagesRepo interface {
	CreatePackage(ctx context.Context, pkg *EventPackage, accessToken string) (*EventPackage, error)
	GetPackageByID(ctx context.Context, id uuid.UUID) (*EventPackage, error)
	ListPackages(ctx context.Context, category string, from, to *time.Time) ([]*EventPackage, error)
	ListPackagesByCreator(ctx context.Context, creatorId uuid.UUID) ([]*EventPackage, error)
	DeletePackage(ctx context.Context, creatorId, packageId uuid.UUID, accessToken string) error
}

func (su *SupabaseRepo) CreatePackage(ctx context.Context, pkg *EventPackage, accessToken string) (*EventPackage, error) {
	client, err := su.clientFor(accessToken)
	if err != nil {
		return nil, err
	}

	coords, _ := pkg.Coordinates.Value()
	row := map[string]interface{}{
		"id":                pkg.ID,
		"creator_id":        pkg.CreatorID,
		"title":             pkg.Title,
		"description":       pkg.Description,
		"category":          pkg.Category,
		"location":          pkg.Location,
		"coordinates":       coords,
		"price":             pkg.Price,
		"capacity":          pkg.Capacity,
		"start_date":        pkg.StartDate,
		"end_date":          pkg.EndDate,
		"images":            pkg.Images,
		"open_for_planning": pkg.OpenForPlan,
		"created_at":        pkg.CreatedAt,
		"updated_at":        pkg.UpdatedAt,
	}

	data, count, err := client.From(PackagesTable).
		Insert(row, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create package: %v", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no package data returned after insert")
	}

	created, err := unmarshalPackages(data)
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no package data returned after insert")
	}
	return created[0], nil
}

func (su *SupabaseRepo) GetPackageByID(ctx context.Context, id uuid.UUID) (*EventPackage, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid package ID")
	}

	data, _, err := su.supabaseClient.From(PackagesTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %v", err)
	}

	pkgs, err := unmarshalPackages(data)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, nil
	}
	return pkgs[0], nil
}

// ListPackages pushes the equality and date-window filters down to PostgREST;
// free-text matching happens in the catalog service.
func (su *SupabaseRepo) ListPackages(ctx context.Context, category string, from, to *time.Time) ([]*EventPackage, error) {
	query := su.supabaseClient.From(PackagesTable).Select("*", "exact", false)
	if category != "" {
		query = query.Eq("category", category)
	}
	if from != nil {
		query = query.Gte("start_date", from.UTC().Format(time.RFC3339))
	}
	if to != nil {
		query = query.Lte("end_date", to.UTC().Format(time.RFC3339))
	}

	data, count, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %v", err)
	}
	if count == 0 {
		return []*EventPackage{}, nil
	}

	return unmarshalPackages(data)
}

func (su *SupabaseRepo) ListPackagesByCreator(ctx context.Context, creatorId uuid.UUID) ([]*EventPackage, error) {
	if creatorId == uuid.Nil {
		return nil, fmt.Errorf("invalid creator ID")
	}

	data, _, err := su.supabaseClient.From(PackagesTable).
		Select("*", "", false).
		Eq("creator_id", creatorId.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list packages by creator: %v", err)
	}

	return unmarshalPackages(data)
}

func (su *SupabaseRepo) DeletePackage(ctx context.Context, creatorId, packageId uuid.UUID, accessToken string) error {
	if creatorId == uuid.Nil || packageId == uuid.Nil {
		return fmt.Errorf("invalid creator or package ID")
	}

	client, err := su.clientFor(accessToken)
	if err != nil {
		return err
	}

	_, count, err := client.From(PackagesTable).
		Delete("", "exact").
		Eq("id", packageId.String()).
		Eq("creator_id", creatorId.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete package: %v", err)
	}
	if count == 0 {
		return fmt.Errorf("no package found to delete")
	}
	return nil
}

// unmarshalPackages decodes PostgREST rows, handling the PostGIS coordinates
// column which arrives as a string.
func unmarshalPackages(data []byte) ([]*EventPackage, error) {
	var rawRows []map[string]interface{}
	if err := json.Unmarshal(data, &rawRows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal package rows: %v", err)
	}

	pkgs := make([]*EventPackage, 0, len(rawRows))
	for _, raw := range rawRows {
		pkg := &EventPackage{}

		var coordStr string
		if coords, exists := raw["coordinates"]; exists {
			if str, ok := coords.(string); ok {
				coordStr = str
			}
			delete(raw, "coordinates")
		}

		rowData, _ := json.Marshal(raw)
		if err := json.Unmarshal(rowData, pkg); err != nil {
			return nil, fmt.Errorf("failed to convert package data: %v", err)
		}

		if coordStr != "" {
			if err := pkg.Coordinates.Scan([]byte(coordStr)); err != nil {
				return nil, fmt.Errorf("failed to parse coordinates for package %v: %v", raw["id"], err)
			}
		}

		pkgs = append(pkgs, pkg)
	}

	return pkgs, nil
}
