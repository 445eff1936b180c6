package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNilResourceID   = errors.New("resource id cannot be nil")
	ErrInvalidUnitPool = errors.New("available units must be between 0 and total units")
)

// ResourceRef is the tagged reference a reservation carries: exactly one
// resource id, tagged with its kind. Constructing it through NewResourceRef is
// what keeps the one-of-four invariant out of reach of callers.
type ResourceRef struct {
	kind Kind
	id   uuid.UUID
}

func NewResourceRef(kind Kind, id uuid.UUID) (ResourceRef, error) {
	if !kind.IsValid() {
		return ResourceRef{}, ErrInvalidKind
	}
	if id == uuid.Nil {
		return ResourceRef{}, ErrNilResourceID
	}
	return ResourceRef{kind: kind, id: id}, nil
}

func (r ResourceRef) Kind() Kind    { return r.kind }
func (r ResourceRef) ID() uuid.UUID { return r.id }

func (r ResourceRef) IsZero() bool {
	return r.id == uuid.Nil
}

// UnitPool models a hotel's room inventory. Exclusive-use resources have an
// implicit pool of one and never construct this.
type UnitPool struct {
	total     int32
	available int32
}

func NewUnitPool(total, available int32) (UnitPool, error) {
	if total < 1 || available < 0 || available > total {
		return UnitPool{}, ErrInvalidUnitPool
	}
	return UnitPool{total: total, available: available}, nil
}

func (p UnitPool) Total() int32     { return p.total }
func (p UnitPool) Available() int32 { return p.available }

func (p UnitPool) HasCapacity() bool {
	return p.available > 0
}
