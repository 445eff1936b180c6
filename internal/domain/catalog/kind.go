package catalog

import "errors"

var ErrInvalidKind = errors.New("invalid resource kind")

// Kind identifies which catalog table a reservation points at.
type Kind string

const (
	KindVehicle   Kind = "vehicle"
	KindHotel     Kind = "hotel"
	KindDriver    Kind = "driver"
	KindTourGuide Kind = "tour_guide"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindVehicle, KindHotel, KindDriver, KindTourGuide:
		return true
	default:
		return false
	}
}

// IsExclusiveUse reports whether the resource is a single unit that can hold
// at most one active reservation per day.
func (k Kind) IsExclusiveUse() bool {
	return k != KindHotel
}

// IsMobile reports whether pickup/destination coordinates are meaningful.
func (k Kind) IsMobile() bool {
	return k == KindVehicle || k == KindDriver
}

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}
