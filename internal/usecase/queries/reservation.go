package queries

import (
	"context"
	"time"

	"tripdesk/internal/domain/account"
	"tripdesk/internal/domain/reservation"
	"tripdesk/internal/infra"
	"tripdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidStatusFilter = errs.New("invalid status filter")
)

// Read models (DTO for read side)
type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	ResourceKind       string     `json:"resource_kind"`
	ResourceID         uuid.UUID  `json:"resource_id"`
	ResourceName       string     `json:"resource_name"`
	OwnerAccountID     uuid.UUID  `json:"owner_account_id"`
	RequesterID        uuid.UUID  `json:"requester_id"`
	RequesterEmail     string     `json:"requester_email"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	PickupLat          *float64   `json:"pickup_lat,omitempty"`
	PickupLng          *float64   `json:"pickup_lng,omitempty"`
	DestinationLat     *float64   `json:"destination_lat,omitempty"`
	DestinationLng     *float64   `json:"destination_lng,omitempty"`
	TotalPriceCents    int64      `json:"total_price_cents"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	PromoCodeID        *uuid.UUID `json:"promo_code_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID              uuid.UUID `json:"id"`
	ResourceKind    string    `json:"resource_kind"`
	ResourceID      uuid.UUID `json:"resource_id"`
	ResourceName    string    `json:"resource_name"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID, status *reservation.Status) ([]*ReservationListItem, error)
	ListByOwner(ctx context.Context, ownerAccountID uuid.UUID, status *reservation.Status) ([]*ReservationListItem, error)
	ListAll(ctx context.Context, status *reservation.Status) ([]*ReservationListItem, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor account.Actor, id uuid.UUID) (*ReservationView, error)
	// List scopes by role: admins see everything, business accounts see
	// reservations against their resources, travelers see their own.
	List(ctx context.Context, actor account.Actor, statusFilter *string) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor account.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	facts := account.ReservationFacts{
		RequesterID:    view.RequesterID,
		OwnerAccountID: view.OwnerAccountID,
	}
	if err := account.Authorize(actor, account.ActionRead, facts); err != nil {
		return nil, err
	}

	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, actor account.Actor, statusFilter *string) ([]*ReservationListItem, error) {
	var status *reservation.Status
	if statusFilter != nil {
		s, err := reservation.NewStatus(*statusFilter)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidStatusFilter)
		}
		status = &s
	}

	switch {
	case actor.Role == account.RoleAdmin:
		return q.store.ListAll(ctx, status)
	case actor.Role.IsBusiness():
		return q.store.ListByOwner(ctx, actor.ID, status)
	default:
		return q.store.ListByRequester(ctx, actor.ID, status)
	}
}
