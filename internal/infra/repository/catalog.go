package repository

import (
	"context"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/infra"
	"tripdesk/internal/infra/db"
	"tripdesk/internal/pkg/pgconv"
	"tripdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(db db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ shared.CatalogRepository = (*CatalogRepository)(nil)

func (r *CatalogRepository) LockResource(ctx context.Context, ref catalog.ResourceRef) (*shared.ResourceSnapshot, error) {
	return r.findResource(ctx, ref, true)
}

// FindResource reads the catalog row without a lock, for pre-transaction
// validation.
func (r *CatalogRepository) FindResource(ctx context.Context, ref catalog.ResourceRef) (*shared.ResourceSnapshot, error) {
	return r.findResource(ctx, ref, false)
}

func (r *CatalogRepository) findResource(ctx context.Context, ref catalog.ResourceRef, forUpdate bool) (*shared.ResourceSnapshot, error) {
	var query string
	switch ref.Kind() {
	case catalog.KindVehicle:
		query = `SELECT id, name, owner_account_id, available, with_driver, 0, 0 FROM vehicles WHERE id = $1`
	case catalog.KindHotel:
		query = `SELECT id, name, owner_account_id, true, false, total_units, available_units FROM hotels WHERE id = $1`
	case catalog.KindDriver:
		query = `SELECT id, name, account_id, available, false, 0, 0 FROM drivers WHERE id = $1`
	default:
		query = `SELECT id, name, account_id, available, false, 0, 0 FROM tour_guides WHERE id = $1`
	}
	if forUpdate {
		query += " FOR UPDATE"
	}

	snap := shared.ResourceSnapshot{Kind: ref.Kind()}
	err := r.db.QueryRow(ctx, query, ref.ID()).Scan(
		&snap.ID,
		&snap.Name,
		&snap.OwnerAccountID,
		&snap.Available,
		&snap.WithDriver,
		&snap.TotalUnits,
		&snap.AvailableUnits,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}

	return &snap, nil
}

func (r *CatalogRepository) DecrementHotelUnits(ctx context.Context, hotelID uuid.UUID) error {
	const query = `
		UPDATE hotels
		SET available_units = available_units - 1, updated_at = now()
		WHERE id = $1 AND available_units > 0`

	tag, err := r.db.Exec(ctx, query, hotelID)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement hotel units", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no hotel units left", nil, infra.KindConflict)
	}

	return nil
}

func (r *CatalogRepository) IncrementHotelUnits(ctx context.Context, hotelID uuid.UUID) error {
	const query = `
		UPDATE hotels
		SET available_units = available_units + 1, updated_at = now()
		WHERE id = $1 AND available_units < total_units`

	tag, err := r.db.Exec(ctx, query, hotelID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment hotel units", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("hotel units already at total", nil, infra.KindConflict)
	}

	return nil
}
