package readstore

import (
	"context"

	"tripdesk/internal/domain/reservation"
	"tripdesk/internal/infra"
	"tripdesk/internal/infra/db"
	"tripdesk/internal/pkg/pgconv"
	"tripdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// reservationViewSelect joins the four catalog tables once; COALESCE picks the
// populated reference for the row's kind.
const reservationViewSelect = `
	SELECT r.id, r.resource_kind,
	       COALESCE(r.vehicle_id, r.hotel_id, r.driver_id, r.guide_id) AS resource_id,
	       COALESCE(v.name, h.name, d.name, g.name) AS resource_name,
	       COALESCE(v.owner_account_id, h.owner_account_id, d.account_id, g.account_id) AS owner_account_id,
	       r.requester_id, a.email,
	       r.start_date, r.end_date,
	       r.pickup_lat, r.pickup_lng, r.destination_lat, r.destination_lng,
	       r.total_price_cents, r.status, r.cancellation_reason, r.promo_code_id,
	       r.created_at, r.updated_at
	FROM reservations r
	JOIN accounts a ON r.requester_id = a.id
	LEFT JOIN vehicles v ON r.vehicle_id = v.id
	LEFT JOIN hotels h ON r.hotel_id = h.id
	LEFT JOIN drivers d ON r.driver_id = d.id
	LEFT JOIN tour_guides g ON r.guide_id = g.id`

const reservationListSelect = `
	SELECT r.id, r.resource_kind,
	       COALESCE(r.vehicle_id, r.hotel_id, r.driver_id, r.guide_id) AS resource_id,
	       COALESCE(v.name, h.name, d.name, g.name) AS resource_name,
	       r.start_date, r.end_date, r.total_price_cents, r.status, r.created_at
	FROM reservations r
	LEFT JOIN vehicles v ON r.vehicle_id = v.id
	LEFT JOIN hotels h ON r.hotel_id = h.id
	LEFT JOIN drivers d ON r.driver_id = d.id
	LEFT JOIN tour_guides g ON r.guide_id = g.id`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

var _ queries.ReservationReadStore = (*ReservationReadStore)(nil)

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, reservationViewSelect+" WHERE r.id = $1", id)

	var view queries.ReservationView
	var start, end pgtype.Date
	var pickupLat, pickupLng, destLat, destLng pgtype.Float8
	var reason pgtype.Text
	var promoID pgtype.UUID
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&view.ID,
		&view.ResourceKind,
		&view.ResourceID,
		&view.ResourceName,
		&view.OwnerAccountID,
		&view.RequesterID,
		&view.RequesterEmail,
		&start,
		&end,
		&pickupLat,
		&pickupLng,
		&destLat,
		&destLng,
		&view.TotalPriceCents,
		&view.Status,
		&reason,
		&promoID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view.StartDate = pgconv.DateFromPgtype(start)
	view.EndDate = pgconv.DateFromPgtype(end)
	view.PickupLat = pgconv.Float64PtrFromPgtype(pickupLat)
	view.PickupLng = pgconv.Float64PtrFromPgtype(pickupLng)
	view.DestinationLat = pgconv.Float64PtrFromPgtype(destLat)
	view.DestinationLng = pgconv.Float64PtrFromPgtype(destLng)
	view.CancellationReason = pgconv.StringPtrFromPgtype(reason)
	view.PromoCodeID = pgconv.UUIDPtrFromPgtype(promoID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

func (r *ReservationReadStore) ListByRequester(ctx context.Context, requesterID uuid.UUID, status *reservation.Status) ([]*queries.ReservationListItem, error) {
	query := reservationListSelect + `
		WHERE r.requester_id = $1 AND ($2::text IS NULL OR r.status = $2)
		ORDER BY r.created_at DESC, r.id DESC`

	return r.list(ctx, query, requesterID, statusArg(status))
}

func (r *ReservationReadStore) ListByOwner(ctx context.Context, ownerAccountID uuid.UUID, status *reservation.Status) ([]*queries.ReservationListItem, error) {
	query := reservationListSelect + `
		WHERE COALESCE(v.owner_account_id, h.owner_account_id, d.account_id, g.account_id) = $1
		  AND ($2::text IS NULL OR r.status = $2)
		ORDER BY r.created_at DESC, r.id DESC`

	return r.list(ctx, query, ownerAccountID, statusArg(status))
}

func (r *ReservationReadStore) ListAll(ctx context.Context, status *reservation.Status) ([]*queries.ReservationListItem, error) {
	query := reservationListSelect + `
		WHERE ($1::text IS NULL OR r.status = $1)
		ORDER BY r.created_at DESC, r.id DESC`

	return r.list(ctx, query, statusArg(status))
}

func (r *ReservationReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReservationListItem, error) {
		var item queries.ReservationListItem
		var start, end pgtype.Date
		var createdAt pgtype.Timestamptz
		if err := row.Scan(
			&item.ID,
			&item.ResourceKind,
			&item.ResourceID,
			&item.ResourceName,
			&start,
			&end,
			&item.TotalPriceCents,
			&item.Status,
			&createdAt,
		); err != nil {
			return nil, err
		}
		item.StartDate = pgconv.DateFromPgtype(start)
		item.EndDate = pgconv.DateFromPgtype(end)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		return &item, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reservations", err)
	}

	return items, nil
}

func statusArg(status *reservation.Status) pgtype.Text {
	if status == nil {
		return pgtype.Text{Valid: false}
	}
	return pgconv.StringToPgtype(status.String())
}
