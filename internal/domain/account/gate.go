package account

import (
	"errors"

	"tripdesk/internal/domain/catalog"

	"github.com/google/uuid"
)

// ErrDenied matches every gate rejection via errors.Is.
var ErrDenied = errors.New("action not permitted")

type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return "action not permitted: " + e.Reason
}

func (e *DeniedError) Is(target error) bool {
	return target == ErrDenied
}

func deny(reason string) error {
	return &DeniedError{Reason: reason}
}

type Action string

const (
	ActionCreate   Action = "create"
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionWithdraw Action = "withdraw"
	ActionComplete Action = "complete"
	ActionRead     Action = "read"
)

// Actor is the authenticated caller as resolved by the session credential.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// ReservationFacts is the slice of a reservation the gate needs: who asked for
// it, what kind of resource it holds, and which account owns that resource.
type ReservationFacts struct {
	RequesterID    uuid.UUID
	ResourceKind   catalog.Kind
	OwnerAccountID uuid.UUID
}

// DeciderRoleFor maps a resource kind to the business role allowed to
// accept or reject reservations against it.
func DeciderRoleFor(kind catalog.Kind) Role {
	switch kind {
	case catalog.KindVehicle:
		return RoleCarOwner
	case catalog.KindHotel:
		return RoleHotelOwner
	case catalog.KindDriver:
		return RoleDriver
	default:
		return RoleTourGuide
	}
}

// Authorize returns nil when the actor may perform the action, or a
// DeniedError carrying a human-readable reason.
func Authorize(actor Actor, action Action, facts ReservationFacts) error {
	switch action {
	case ActionCreate:
		if actor.Role != RoleTraveler && actor.Role != RoleAdmin {
			return deny("only travelers may create reservations")
		}
		return nil

	case ActionAccept, ActionReject:
		if actor.Role != DeciderRoleFor(facts.ResourceKind) {
			return deny("only the supplying business account may decide this reservation")
		}
		if actor.ID != facts.OwnerAccountID {
			return deny("reservation belongs to another account's resource")
		}
		return nil

	case ActionWithdraw:
		if actor.ID != facts.RequesterID {
			return deny("only the requester may withdraw a reservation")
		}
		return nil

	case ActionComplete:
		if actor.Role != RoleAdmin {
			return deny("only administrators may complete reservations")
		}
		return nil

	case ActionRead:
		if actor.Role == RoleAdmin || actor.ID == facts.RequesterID || actor.ID == facts.OwnerAccountID {
			return nil
		}
		return deny("reservation is not visible to this account")

	default:
		return deny("unknown action")
	}
}
