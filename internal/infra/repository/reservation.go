package repository

import (
	"context"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/reservation"
	"tripdesk/internal/infra"
	"tripdesk/internal/infra/db"
	"tripdesk/internal/pkg/pgconv"
	"tripdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// refColumn maps a validated kind to its foreign-key column. Kind is a closed
// set, so interpolating the column name is safe.
func refColumn(kind catalog.Kind) string {
	switch kind {
	case catalog.KindVehicle:
		return "vehicle_id"
	case catalog.KindHotel:
		return "hotel_id"
	case catalog.KindDriver:
		return "driver_id"
	default:
		return "guide_id"
	}
}

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

var _ shared.ReservationRepository = (*ReservationRepository)(nil)

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	refs := map[string]pgtype.UUID{
		"vehicle_id": {},
		"hotel_id":   {},
		"driver_id":  {},
		"guide_id":   {},
	}
	refs[refColumn(res.Resource().Kind())] = pgconv.UUIDToPgtype(res.Resource().ID())

	var pickupLat, pickupLng, destLat, destLng pgtype.Float8
	if route := res.Route(); route != nil {
		pickupLat = pgtype.Float8{Float64: route.Pickup().Lat(), Valid: true}
		pickupLng = pgtype.Float8{Float64: route.Pickup().Lng(), Valid: true}
		destLat = pgtype.Float8{Float64: route.Destination().Lat(), Valid: true}
		destLng = pgtype.Float8{Float64: route.Destination().Lng(), Valid: true}
	}

	const query = `
		INSERT INTO reservations (
			id, resource_kind, vehicle_id, hotel_id, driver_id, guide_id,
			requester_id, start_date, end_date,
			pickup_lat, pickup_lng, destination_lat, destination_lng,
			total_price_cents, status, promo_code_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		res.ID(),
		res.Resource().Kind().String(),
		refs["vehicle_id"],
		refs["hotel_id"],
		refs["driver_id"],
		refs["guide_id"],
		res.RequesterID(),
		pgconv.DateToPgtype(res.Dates().Start()),
		pgconv.DateToPgtype(res.Dates().End()),
		pickupLat, pickupLng, destLat, destLng,
		res.Price().Cents(),
		res.Status().String(),
		pgconv.UUIDPtrToPgtype(res.PromoCodeID()),
		pgconv.TimeToPgtype(res.CreatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return id, nil
}

func (r *ReservationRepository) CountOverlapping(ctx context.Context, ref catalog.ResourceRef, dates reservation.DateRange) (int64, error) {
	// Inclusive-day intersection: requested.start <= existing.end AND
	// requested.end >= existing.start.
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE resource_kind = $1
		  AND ` + refColumn(ref.Kind()) + ` = $2
		  AND status <> 'cancelled'
		  AND start_date <= $4
		  AND end_date >= $3`

	var count int64
	err := r.db.QueryRow(ctx, query,
		ref.Kind().String(),
		ref.ID(),
		pgconv.DateToPgtype(dates.Start()),
		pgconv.DateToPgtype(dates.End()),
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping reservations", err)
	}

	return count, nil
}

func (r *ReservationRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
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
		WHERE r.id = $1
		FOR UPDATE OF r`

	return scanReservationSnapshot(r.db.QueryRow(ctx, query, id))
}

func scanReservationSnapshot(row pgx.Row) (*shared.ReservationSnapshot, error) {
	var snap shared.ReservationSnapshot
	var kind, status string
	var start, end pgtype.Date
	err := row.Scan(
		&snap.ID,
		&kind,
		&snap.ResourceID,
		&snap.RequesterID,
		&status,
		&start,
		&end,
		&snap.OwnerAccountID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation", err)
	}

	snap.Kind = catalog.Kind(kind)
	snap.Status = reservation.Status(status)
	snap.StartDate = pgconv.DateFromPgtype(start)
	snap.EndDate = pgconv.DateFromPgtype(end)
	return &snap, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status, reason *string) error {
	const query = `
		UPDATE reservations
		SET status = $3,
		    cancellation_reason = COALESCE($4, cancellation_reason),
		    updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, from.String(), to.String(), pgconv.StringPtrToPgtype(reason))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation status changed concurrently", nil, infra.KindConflict)
	}

	return nil
}
