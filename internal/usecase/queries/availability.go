package queries

import (
	"context"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/reservation"
	"tripdesk/internal/infra"
	"tripdesk/internal/pkg/errs"
)

var ErrInvalidAvailabilityQuery = errs.New("invalid availability query")

// AvailabilityResult is advisory: the authoritative answer is recomputed
// inside the reservation transaction.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ResourceState is what the availability check needs from the catalog row.
type ResourceState struct {
	Exists     bool
	Available  bool
	TotalUnits int32
}

type AvailabilityReadStore interface {
	ResourceState(ctx context.Context, ref catalog.ResourceRef) (*ResourceState, error)
	CountOverlapping(ctx context.Context, ref catalog.ResourceRef, dates reservation.DateRange) (int64, error)
}

type AvailabilityQueries interface {
	Check(ctx context.Context, ref catalog.ResourceRef, dates reservation.DateRange) (*AvailabilityResult, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
}

func NewAvailabilityQueries(store AvailabilityReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store}
}

// Check is a pure read. A missing or supplier-disabled resource is a normal
// "not available" outcome, not an error.
func (q *availabilityQueriesImpl) Check(ctx context.Context, ref catalog.ResourceRef, dates reservation.DateRange) (*AvailabilityResult, error) {
	state, err := q.store.ResourceState(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &AvailabilityResult{Available: false, Reason: "resource does not exist"}, nil
		}
		return nil, err
	}
	if !state.Exists {
		return &AvailabilityResult{Available: false, Reason: "resource does not exist"}, nil
	}
	if ref.Kind().IsExclusiveUse() && !state.Available {
		return &AvailabilityResult{Available: false, Reason: "resource is marked unavailable by its supplier"}, nil
	}

	overlapping, err := q.store.CountOverlapping(ctx, ref, dates)
	if err != nil {
		return nil, err
	}

	if ref.Kind().IsExclusiveUse() {
		if overlapping > 0 {
			return &AvailabilityResult{Available: false, Reason: "dates conflict with an existing reservation"}, nil
		}
		return &AvailabilityResult{Available: true}, nil
	}

	if overlapping >= int64(state.TotalUnits) {
		return &AvailabilityResult{Available: false, Reason: "no units left for the requested dates"}, nil
	}
	return &AvailabilityResult{Available: true}, nil
}
