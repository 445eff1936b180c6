package readstore

import (
	"context"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/reservation"
	"tripdesk/internal/infra"
	"tripdesk/internal/infra/db"
	"tripdesk/internal/infra/repository"
	"tripdesk/internal/pkg/pgconv"
	"tripdesk/internal/usecase/queries"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(db db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: db}
}

var _ queries.AvailabilityReadStore = (*AvailabilityReadStore)(nil)

func (r *AvailabilityReadStore) ResourceState(ctx context.Context, ref catalog.ResourceRef) (*queries.ResourceState, error) {
	var query string
	switch ref.Kind() {
	case catalog.KindVehicle:
		query = `SELECT available, 0 FROM vehicles WHERE id = $1`
	case catalog.KindHotel:
		query = `SELECT true, total_units FROM hotels WHERE id = $1`
	case catalog.KindDriver:
		query = `SELECT available, 0 FROM drivers WHERE id = $1`
	default:
		query = `SELECT available, 0 FROM tour_guides WHERE id = $1`
	}

	var state queries.ResourceState
	err := r.db.QueryRow(ctx, query, ref.ID()).Scan(&state.Available, &state.TotalUnits)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return &queries.ResourceState{Exists: false}, nil
		}
		return nil, infra.WrapRepoErr("failed to read resource state", err)
	}

	state.Exists = true
	return &state, nil
}

func (r *AvailabilityReadStore) CountOverlapping(ctx context.Context, ref catalog.ResourceRef, dates reservation.DateRange) (int64, error) {
	return repository.NewReservationRepository(r.db).CountOverlapping(ctx, ref, dates)
}
