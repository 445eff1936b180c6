//go:build unit || e2e

package builder

import (
	"time"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/reservation"
	"tripdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	Kind        string
	ResourceID  uuid.UUID
	RequesterID uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	PriceCents  int64
	PromoCodeID *uuid.UUID
	Route       *reservation.Route
	Now         time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		Kind:        "vehicle",
		ResourceID:  uuid.New(),
		RequesterID: uuid.New(),
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		PriceCents:  150000,
		Now:         time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	kind, err := catalog.NewKind(b.Kind)
	if err != nil {
		return nil, err
	}

	ref, err := catalog.NewResourceRef(kind, b.ResourceID)
	if err != nil {
		return nil, err
	}

	dates, err := reservation.NewDateRange(b.StartDate, b.EndDate)
	if err != nil {
		return nil, err
	}

	price, err := reservation.NewMoney(b.PriceCents)
	if err != nil {
		return nil, err
	}

	return reservation.NewReservation(ref, b.RequesterID, dates, price, b.PromoCodeID, b.Route, b.Now)
}

func (b *ReservationBuilder) BuildSnapshot(status reservation.Status, ownerAccountID uuid.UUID) *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:             uuid.New(),
		Kind:           catalog.Kind(b.Kind),
		ResourceID:     b.ResourceID,
		RequesterID:    b.RequesterID,
		OwnerAccountID: ownerAccountID,
		Status:         status,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithKind(kind string) *ReservationBuilder {
	b.Kind = kind
	return b
}

func (b *ReservationBuilder) WithDates(start, end time.Time) *ReservationBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *ReservationBuilder) WithPriceCents(cents int64) *ReservationBuilder {
	b.PriceCents = cents
	return b
}

func (b *ReservationBuilder) WithRequester(id uuid.UUID) *ReservationBuilder {
	b.RequesterID = id
	return b
}

func (b *ReservationBuilder) WithPromoCodeID(id *uuid.UUID) *ReservationBuilder {
	b.PromoCodeID = id
	return b
}

func (b *ReservationBuilder) WithRoute(pickup, destination reservation.GeoPoint) *ReservationBuilder {
	route := reservation.NewRoute(pickup, destination)
	b.Route = &route
	return b
}
