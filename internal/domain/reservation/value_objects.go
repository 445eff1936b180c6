package reservation

import (
	"errors"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// DateRange is an inclusive range of whole calendar days. A reservation that
// ends on a given day still blocks that day for the next one: a same-day
// handover counts as a conflict.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if s.After(e) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: s, end: e}, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// Overlaps is the inclusive-day intersection test:
// r.start <= other.end && r.end >= other.start.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !r.end.Before(other.start)
}

// Days returns the number of calendar days covered, boundary days included.
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// CoversOrAfter reports whether any part of the range is today or later.
func (r DateRange) CoversOrAfter(now time.Time) bool {
	return !r.end.Before(truncateToDay(now))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

type GeoPoint struct {
	lat float64
	lng float64
}

func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return GeoPoint{}, ErrInvalidLatitude
	}
	if lng < -180 || lng > 180 {
		return GeoPoint{}, ErrInvalidLongitude
	}
	return GeoPoint{lat: lat, lng: lng}, nil
}

func (p GeoPoint) Lat() float64 { return p.lat }
func (p GeoPoint) Lng() float64 { return p.lng }

// Route is the optional pickup/destination pair for mobile resources.
type Route struct {
	pickup      GeoPoint
	destination GeoPoint
}

func NewRoute(pickup, destination GeoPoint) Route {
	return Route{pickup: pickup, destination: destination}
}

func (r Route) Pickup() GeoPoint      { return r.pickup }
func (r Route) Destination() GeoPoint { return r.destination }
