package reservation

import (
	"errors"
	"time"

	"tripdesk/internal/domain/catalog"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrNilRequester      = errors.New("requester cannot be nil")
	ErrRouteNotSupported = errors.New("pickup and destination apply only to mobile resources")
	ErrReasonRequired    = errors.New("cancellation reason is required")
	ErrInvalidTransition = errors.New("illegal status transition")
)

// DefaultWithdrawReason is stored when the requester cancels without giving one.
const DefaultWithdrawReason = "cancelled by requester"

type Reservation struct {
	id                 uuid.UUID
	resource           catalog.ResourceRef
	requesterID        uuid.UUID
	dates              DateRange
	route              *Route
	price              Money
	status             Status
	cancellationReason *string
	promoCodeID        *uuid.UUID
	createdAt          time.Time
	updatedAt          time.Time
}

// NewReservation builds a pending reservation. The resource reference carries
// the one-of-four invariant; the route is rejected for non-mobile kinds.
func NewReservation(
	resource catalog.ResourceRef,
	requesterID uuid.UUID,
	dates DateRange,
	price Money,
	promoCodeID *uuid.UUID,
	route *Route,
	now time.Time,
) (*Reservation, error) {
	if resource.IsZero() {
		return nil, catalog.ErrNilResourceID
	}
	if requesterID == uuid.Nil {
		return nil, ErrNilRequester
	}
	if route != nil && !resource.Kind().IsMobile() {
		return nil, ErrRouteNotSupported
	}

	return &Reservation{
		id:          uuid.New(),
		resource:    resource,
		requesterID: requesterID,
		dates:       dates,
		route:       route,
		price:       price,
		status:      StatusPending,
		promoCodeID: promoCodeID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	resource catalog.ResourceRef,
	requesterID uuid.UUID,
	dates DateRange,
	route *Route,
	price Money,
	status Status,
	cancellationReason *string,
	promoCodeID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                 id,
		resource:           resource,
		requesterID:        requesterID,
		dates:              dates,
		route:              route,
		price:              price,
		status:             status,
		cancellationReason: cancellationReason,
		promoCodeID:        promoCodeID,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Accept moves pending → confirmed.
func (r *Reservation) Accept() error {
	return r.transition(StatusConfirmed)
}

// Reject moves pending → cancelled and demands a reason the requester can read.
func (r *Reservation) Reject(reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if r.status != StatusPending {
		return ErrInvalidTransition
	}
	if err := r.transition(StatusCancelled); err != nil {
		return err
	}
	r.cancellationReason = &reason
	return nil
}

// Withdraw cancels on behalf of the requester; legal from pending or confirmed.
func (r *Reservation) Withdraw(reason string) error {
	if reason == "" {
		reason = DefaultWithdrawReason
	}
	if err := r.transition(StatusCancelled); err != nil {
		return err
	}
	r.cancellationReason = &reason
	return nil
}

// Complete moves confirmed → completed.
func (r *Reservation) Complete() error {
	return r.transition(StatusCompleted)
}

func (r *Reservation) transition(to Status) error {
	if !r.status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	r.status = to
	return nil
}

func (r *Reservation) IsPending() bool {
	return r.status == StatusPending
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) ID() uuid.UUID                 { return r.id }
func (r *Reservation) Resource() catalog.ResourceRef { return r.resource }
func (r *Reservation) RequesterID() uuid.UUID        { return r.requesterID }
func (r *Reservation) Dates() DateRange              { return r.dates }
func (r *Reservation) Route() *Route                 { return r.route }
func (r *Reservation) Price() Money                  { return r.price }
func (r *Reservation) Status() Status                { return r.status }
func (r *Reservation) CancellationReason() *string   { return r.cancellationReason }
func (r *Reservation) PromoCodeID() *uuid.UUID       { return r.promoCodeID }
func (r *Reservation) CreatedAt() time.Time          { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time          { return r.updatedAt }
