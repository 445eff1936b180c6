package request

import (
	"time"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/reservation"

	"github.com/google/uuid"
)

type AvailabilityQuery struct {
	ResourceKind string    `form:"resource_kind" binding:"required"`
	ResourceID   uuid.UUID `form:"resource_id" binding:"required"`
	StartDate    string    `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string    `form:"end_date" binding:"required,datetime=2006-01-02"`
}

func (q AvailabilityQuery) ToDomain() (catalog.ResourceRef, reservation.DateRange, error) {
	kind, err := catalog.NewKind(q.ResourceKind)
	if err != nil {
		return catalog.ResourceRef{}, reservation.DateRange{}, err
	}

	ref, err := catalog.NewResourceRef(kind, q.ResourceID)
	if err != nil {
		return catalog.ResourceRef{}, reservation.DateRange{}, err
	}

	start, err := time.Parse(dateLayout, q.StartDate)
	if err != nil {
		return catalog.ResourceRef{}, reservation.DateRange{}, err
	}
	end, err := time.Parse(dateLayout, q.EndDate)
	if err != nil {
		return catalog.ResourceRef{}, reservation.DateRange{}, err
	}

	dates, err := reservation.NewDateRange(start, end)
	if err != nil {
		return catalog.ResourceRef{}, reservation.DateRange{}, err
	}

	return ref, dates, nil
}
