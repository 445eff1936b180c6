package repository

import (
	"context"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/infra"
	"tripdesk/internal/infra/db"
	"tripdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads bundles the non-transactional reads the command layer runs
// before opening a transaction. Results are advisory; the transaction
// re-verifies everything under row locks.
type CommandReads struct {
	catalog      *CatalogRepository
	promos       *PromoRepository
	reservations *ReservationRepository
	db           db.DBTX
}

func NewCommandReads(db db.DBTX) *CommandReads {
	return &CommandReads{
		catalog:      NewCatalogRepository(db),
		promos:       NewPromoRepository(db),
		reservations: NewReservationRepository(db),
		db:           db,
	}
}

var _ shared.CommandReads = (*CommandReads)(nil)

func (c *CommandReads) ResourceByRef(ctx context.Context, ref catalog.ResourceRef) (*shared.ResourceSnapshot, error) {
	return c.catalog.FindResource(ctx, ref)
}

func (c *CommandReads) PromoByCode(ctx context.Context, code string) (*shared.PromoSnapshot, error) {
	return c.promos.FindByCode(ctx, code)
}

func (c *CommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	const query = `
		SELECT r.id, r.resource_kind,
		       COALESCE(r.vehicle_id, r.hotel_id, r.driver_id, r.guide_id),
		       r.requester_id, r.status, r.start_date, r.end_date,
		       COALESCE(v.owner_account_id, h.owner_account_id, d.account_id, g.account_id)
		FROM reservations r
		LEFT JOIN vehicles v ON r.vehicle_id = v.id
		LEFT JOIN hotels h ON r.hotel_id = h.id
		LEFT JOIN drivers d ON r.driver_id = d.id
		LEFT JOIN tour_guides g ON r.guide_id = g.id
		WHERE r.id = $1`

	return scanReservationSnapshot(c.db.QueryRow(ctx, query, id))
}

func (c *CommandReads) HasApprovedLicense(ctx context.Context, accountID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM license_records
			WHERE account_id = $1 AND status = 'approved'
		)`

	var approved bool
	if err := c.db.QueryRow(ctx, query, accountID).Scan(&approved); err != nil {
		return false, infra.WrapRepoErr("failed to check driving license", err)
	}

	return approved, nil
}
