package shared

import (
	"time"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/reservation"

	"github.com/google/uuid"
)

// Write-side snapshots keep the command layer off the read-side view types.

type ResourceSnapshot struct {
	Kind           catalog.Kind
	ID             uuid.UUID
	Name           string
	OwnerAccountID uuid.UUID
	// Available is the supplier-controlled flag on exclusive-use rows;
	// hotels are always true here and gate on units instead.
	Available  bool
	WithDriver bool
	// TotalUnits/AvailableUnits are meaningful for hotels only.
	TotalUnits     int32
	AvailableUnits int32
}

type ReservationSnapshot struct {
	ID             uuid.UUID
	Kind           catalog.Kind
	ResourceID     uuid.UUID
	RequesterID    uuid.UUID
	OwnerAccountID uuid.UUID
	Status         reservation.Status
	StartDate      time.Time
	EndDate        time.Time
}

type PromoSnapshot struct {
	ID               uuid.UUID
	Code             string
	PercentOff       *float64
	MaxDiscountCents *int64
	AmountOffCents   *int64
	MinAmountCents   int64
	ValidUntil       *time.Time
	MaxUses          *int32
	UsedCount        int32
}
