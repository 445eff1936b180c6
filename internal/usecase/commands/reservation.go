package commands

import (
	"context"
	"errors"
	"time"

	"tripdesk/internal/domain/account"
	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/promo"
	"tripdesk/internal/domain/reservation"
	"tripdesk/internal/infra"
	"tripdesk/internal/pkg/clock"
	"tripdesk/internal/pkg/errs"
	"tripdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput            = errs.New("invalid reservation input")
	ErrResourceNotFound        = errs.New("resource not found")
	ErrResourceUnavailable     = errs.New("resource is not available")
	ErrDateConflict            = errs.New("requested dates conflict with an existing reservation")
	ErrCapacityExhausted       = errs.New("no units left for the requested dates")
	ErrPromoNotFound           = errs.New("promo code not found")
	ErrPromoNotApplicable      = errs.New("promo code cannot be applied")
	ErrPromoExhausted          = errs.New("promo code has no redemptions left")
	ErrLicenseRequired         = errs.New("approved driving licence required")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrInvalidTransition       = errs.New("illegal reservation state transition")
	ErrReasonRequired          = errs.New("cancellation reason is required")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateReservationInput struct {
	Kind        catalog.Kind
	ResourceID  uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	PriceCents  int64
	PromoCode   *string
	Pickup      *reservation.GeoPoint
	Destination *reservation.GeoPoint
}

type ReservationCommands interface {
	Create(ctx context.Context, actor account.Actor, in CreateReservationInput) (uuid.UUID, error)
	Accept(ctx context.Context, actor account.Actor, id uuid.UUID) error
	Reject(ctx context.Context, actor account.Actor, id uuid.UUID, reason string) error
	Withdraw(ctx context.Context, actor account.Actor, id uuid.UUID, reason string) error
	Complete(ctx context.Context, actor account.Actor, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, clock clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

// Create runs the check-then-commit sequence for a new reservation. The
// pre-transaction part resolves and validates collaborators; the authoritative
// overlap/capacity check and every write happen inside one transaction with
// the resource row locked, so two concurrent requests for the same resource
// serialize and at most the capacity can be granted.
func (c *reservationCommandsImpl) Create(ctx context.Context, actor account.Actor, in CreateReservationInput) (uuid.UUID, error) {
	if err := account.Authorize(actor, account.ActionCreate, account.ReservationFacts{}); err != nil {
		return uuid.Nil, err
	}

	ref, err := catalog.NewResourceRef(in.Kind, in.ResourceID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidInput)
	}

	dates, err := reservation.NewDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidInput)
	}

	route, err := buildRoute(in.Pickup, in.Destination)
	if err != nil {
		return uuid.Nil, err
	}

	resource, err := c.uow.Reads().ResourceByRef(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrResourceNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if ref.Kind().IsExclusiveUse() && !resource.Available {
		return uuid.Nil, ErrResourceUnavailable
	}

	if err := c.checkLicense(ctx, actor, ref.Kind(), resource); err != nil {
		return uuid.Nil, err
	}

	priceCents, promoID, err := c.applyPromo(ctx, in.PromoCode, in.PriceCents)
	if err != nil {
		return uuid.Nil, err
	}

	price, err := reservation.NewMoney(priceCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidInput)
	}

	entity, err := reservation.NewReservation(ref, actor.ID, dates, price, promoID, route, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidInput)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return c.commitReservation(ctx, tx, entity)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return entity.ID(), nil
}

// commitReservation is the all-or-nothing step: lock, re-check, insert,
// decrement, redeem. Any error rolls the whole transaction back.
func (c *reservationCommandsImpl) commitReservation(ctx context.Context, tx shared.Tx, entity *reservation.Reservation) error {
	ref := entity.Resource()

	resource, err := tx.Catalog().LockResource(ctx, ref)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrResourceNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if ref.Kind().IsExclusiveUse() && !resource.Available {
		return ErrResourceUnavailable
	}

	// Authoritative recount against committed rows, not the cached counter.
	overlapping, err := tx.Reservations().CountOverlapping(ctx, ref, entity.Dates())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if ref.Kind().IsExclusiveUse() {
		if overlapping > 0 {
			return ErrDateConflict
		}
	} else if overlapping >= int64(resource.TotalUnits) {
		return ErrCapacityExhausted
	}

	if _, err := tx.Reservations().Create(ctx, entity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if ref.Kind() == catalog.KindHotel {
		if err := tx.Catalog().DecrementHotelUnits(ctx, ref.ID()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrCapacityExhausted
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	if promoID := entity.PromoCodeID(); promoID != nil {
		if err := tx.Promos().Redeem(ctx, *promoID); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrPromoExhausted
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return nil
}

func (c *reservationCommandsImpl) Accept(ctx context.Context, actor account.Actor, id uuid.UUID) error {
	return c.transition(ctx, actor, id, account.ActionAccept, reservation.StatusConfirmed, nil)
}

func (c *reservationCommandsImpl) Reject(ctx context.Context, actor account.Actor, id uuid.UUID, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	return c.transition(ctx, actor, id, account.ActionReject, reservation.StatusCancelled, &reason)
}

func (c *reservationCommandsImpl) Withdraw(ctx context.Context, actor account.Actor, id uuid.UUID, reason string) error {
	if reason == "" {
		reason = reservation.DefaultWithdrawReason
	}
	return c.transition(ctx, actor, id, account.ActionWithdraw, reservation.StatusCancelled, &reason)
}

func (c *reservationCommandsImpl) Complete(ctx context.Context, actor account.Actor, id uuid.UUID) error {
	return c.transition(ctx, actor, id, account.ActionComplete, reservation.StatusCompleted, nil)
}

// transition drives one lifecycle step: lock the reservation, gate the actor,
// verify legality, update under the status guard, and run the compensating
// capacity release when a pooled reservation is cancelled.
func (c *reservationCommandsImpl) transition(
	ctx context.Context,
	actor account.Actor,
	id uuid.UUID,
	action account.Action,
	target reservation.Status,
	reason *string,
) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reservations().FindForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		facts := account.ReservationFacts{
			RequesterID:    snap.RequesterID,
			ResourceKind:   snap.Kind,
			OwnerAccountID: snap.OwnerAccountID,
		}
		if err := account.Authorize(actor, action, facts); err != nil {
			return err
		}

		if !snap.Status.CanTransitionTo(target) {
			return ErrInvalidTransition
		}
		// Accept and reject are owner decisions on an open request only.
		if (action == account.ActionAccept || action == account.ActionReject) &&
			snap.Status != reservation.StatusPending {
			return ErrInvalidTransition
		}

		if err := tx.Reservations().UpdateStatus(ctx, id, snap.Status, target, reason); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				// Lost the guard to a concurrent transition.
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// The guard above fired at most once per reservation, so the unit
		// comes back exactly once.
		if target == reservation.StatusCancelled && snap.Kind == catalog.KindHotel {
			if err := tx.Catalog().IncrementHotelUnits(ctx, snap.ResourceID); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		return nil
	})
}

func (c *reservationCommandsImpl) checkLicense(ctx context.Context, actor account.Actor, kind catalog.Kind, resource *shared.ResourceSnapshot) error {
	if kind != catalog.KindVehicle || resource.WithDriver || actor.Role != account.RoleTraveler {
		return nil
	}

	approved, err := c.uow.Reads().HasApprovedLicense(ctx, actor.ID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !approved {
		return ErrLicenseRequired
	}
	return nil
}

func (c *reservationCommandsImpl) applyPromo(ctx context.Context, code *string, priceCents int64) (int64, *uuid.UUID, error) {
	if code == nil {
		return priceCents, nil, nil
	}

	snap, err := c.uow.Reads().PromoByCode(ctx, *code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, nil, ErrPromoNotFound
		}
		return 0, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := promoFromSnapshot(snap)
	if err != nil {
		return 0, nil, errs.Mark(err, ErrPromoNotApplicable)
	}

	discounted, err := entity.Apply(priceCents, c.clock.Now())
	if err != nil {
		if errors.Is(err, promo.ErrExhausted) {
			return 0, nil, ErrPromoExhausted
		}
		return 0, nil, errs.Mark(err, ErrPromoNotApplicable)
	}

	id := snap.ID
	return discounted, &id, nil
}

func promoFromSnapshot(snap *shared.PromoSnapshot) (*promo.PromoCode, error) {
	var discount promo.Discount
	var err error
	switch {
	case snap.PercentOff != nil:
		discount, err = promo.NewPercentageDiscount(*snap.PercentOff, snap.MaxDiscountCents)
	case snap.AmountOffCents != nil:
		discount, err = promo.NewFixedDiscount(*snap.AmountOffCents)
	default:
		err = promo.ErrInvalidDiscount
	}
	if err != nil {
		return nil, err
	}

	return promo.NewPromoCode(snap.ID, snap.Code, discount, snap.MinAmountCents, snap.ValidUntil, snap.MaxUses, snap.UsedCount)
}

func buildRoute(pickup, destination *reservation.GeoPoint) (*reservation.Route, error) {
	if pickup == nil && destination == nil {
		return nil, nil
	}
	if pickup == nil || destination == nil {
		return nil, errs.Mark(errs.New("pickup and destination must be given together"), ErrInvalidInput)
	}
	route := reservation.NewRoute(*pickup, *destination)
	return &route, nil
}
