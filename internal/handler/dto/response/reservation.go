package response

import (
	"time"

	"tripdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationResponse struct {
	ID uuid.UUID `json:"id"`
}

type ReservationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ResourceKind       string     `json:"resourceKind"`
	ResourceID         uuid.UUID  `json:"resourceId"`
	ResourceName       string     `json:"resourceName"`
	RequesterID        uuid.UUID  `json:"requesterId"`
	RequesterEmail     string     `json:"requesterEmail"`
	StartDate          string     `json:"startDate"`
	EndDate            string     `json:"endDate"`
	PickupLat          *float64   `json:"pickupLat,omitempty"`
	PickupLng          *float64   `json:"pickupLng,omitempty"`
	DestinationLat     *float64   `json:"destinationLat,omitempty"`
	DestinationLng     *float64   `json:"destinationLng,omitempty"`
	TotalPriceCents    int64      `json:"totalPriceCents"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	PromoCodeID        *uuid.UUID `json:"promoCodeId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID              uuid.UUID `json:"id"`
	ResourceKind    string    `json:"resourceKind"`
	ResourceID      uuid.UUID `json:"resourceId"`
	ResourceName    string    `json:"resourceName"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

const dateLayout = "2006-01-02"

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:                 rm.ID,
		ResourceKind:       rm.ResourceKind,
		ResourceID:         rm.ResourceID,
		ResourceName:       rm.ResourceName,
		RequesterID:        rm.RequesterID,
		RequesterEmail:     rm.RequesterEmail,
		StartDate:          rm.StartDate.Format(dateLayout),
		EndDate:            rm.EndDate.Format(dateLayout),
		PickupLat:          rm.PickupLat,
		PickupLng:          rm.PickupLng,
		DestinationLat:     rm.DestinationLat,
		DestinationLng:     rm.DestinationLng,
		TotalPriceCents:    rm.TotalPriceCents,
		Status:             rm.Status,
		CancellationReason: rm.CancellationReason,
		PromoCodeID:        rm.PromoCodeID,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:              rm.ID,
		ResourceKind:    rm.ResourceKind,
		ResourceID:      rm.ResourceID,
		ResourceName:    rm.ResourceName,
		StartDate:       rm.StartDate.Format(dateLayout),
		EndDate:         rm.EndDate.Format(dateLayout),
		TotalPriceCents: rm.TotalPriceCents,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
	}
}
