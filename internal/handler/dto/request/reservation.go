package request

import (
	"strings"
	"time"

	"tripdesk/internal/domain/catalog"
	"tripdesk/internal/domain/reservation"
	"tripdesk/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type GeoPointRequest struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

type CreateReservationRequest struct {
	ResourceKind string           `json:"resource_kind" binding:"required"`
	ResourceID   uuid.UUID        `json:"resource_id" binding:"required"`
	StartDate    string           `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string           `json:"end_date" binding:"required,datetime=2006-01-02"`
	PriceCents   int64            `json:"price_cents" binding:"required,min=0"`
	PromoCode    *string          `json:"promo_code,omitempty"`
	Pickup       *GeoPointRequest `json:"pickup,omitempty"`
	Destination  *GeoPointRequest `json:"destination,omitempty"`
}

func (r CreateReservationRequest) GetPromoCode() *string {
	if r.PromoCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.PromoCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	kind, err := catalog.NewKind(r.ResourceKind)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}

	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}

	in := commands.CreateReservationInput{
		Kind:       kind,
		ResourceID: r.ResourceID,
		StartDate:  start,
		EndDate:    end,
		PriceCents: r.PriceCents,
		PromoCode:  r.GetPromoCode(),
	}

	if r.Pickup != nil {
		p, err := reservation.NewGeoPoint(r.Pickup.Lat, r.Pickup.Lng)
		if err != nil {
			return commands.CreateReservationInput{}, err
		}
		in.Pickup = &p
	}
	if r.Destination != nil {
		d, err := reservation.NewGeoPoint(r.Destination.Lat, r.Destination.Lng)
		if err != nil {
			return commands.CreateReservationInput{}, err
		}
		in.Destination = &d
	}

	return in, nil
}

type RejectReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type WithdrawReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r WithdrawReservationRequest) GetReason() string {
	if r.Reason == nil {
		return ""
	}
	return strings.TrimSpace(*r.Reason)
}
