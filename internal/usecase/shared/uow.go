package shared

import (
	"context"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-committed transaction with retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: non-transactional command-side reads for validation before the transaction
	Reads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Catalog() CatalogRepository
	Promos() PromoRepository
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	// CountOverlapping counts non-cancelled reservations against the resource
	// whose inclusive date ranges intersect the given one.
	CountOverlapping(ctx context.Context, ref catalog.ResourceRef, dates reservation.DateRange) (int64, error)
	// FindForUpdate locks the reservation row and resolves the owning account
	// of its underlying resource.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	// UpdateStatus transitions only when the row still holds the expected
	// status; a lost guard surfaces as a conflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status, reason *string) error
}

type CatalogRepository interface {
	// LockResource takes a row lock on the catalog row, serializing concurrent
	// reservation attempts against the same resource.
	LockResource(ctx context.Context, ref catalog.ResourceRef) (*ResourceSnapshot, error)
	// DecrementHotelUnits conditionally takes one unit; exhausted pools
	// surface as a conflict.
	DecrementHotelUnits(ctx context.Context, hotelID uuid.UUID) error
	IncrementHotelUnits(ctx context.Context, hotelID uuid.UUID) error
}

type PromoRepository interface {
	// Redeem increments used_count only while it is below max_uses; an
	// exhausted code surfaces as a conflict.
	Redeem(ctx context.Context, promoID uuid.UUID) error
}

type CommandReads interface {
	ResourceByRef(ctx context.Context, ref catalog.ResourceRef) (*ResourceSnapshot, error)
	PromoByCode(ctx context.Context, code string) (*PromoSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	HasApprovedLicense(ctx context.Context, accountID uuid.UUID) (bool, error)
}
