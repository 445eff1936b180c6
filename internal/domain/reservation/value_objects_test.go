//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"tripdesk/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) reservation.DateRange {
	t.Helper()
	r, err := reservation.NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewDateRange(t *testing.T) {
	t.Run("single day is valid", func(t *testing.T) {
		r, err := reservation.NewDateRange(day(2026, 9, 1), day(2026, 9, 1))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Days())
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		_, err := reservation.NewDateRange(day(2026, 9, 5), day(2026, 9, 1))
		require.ErrorIs(t, err, reservation.ErrInvalidDateRange)
	})

	t.Run("time-of-day is truncated", func(t *testing.T) {
		r, err := reservation.NewDateRange(
			time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 9, 2, 0, 1, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, day(2026, 9, 1), r.Start())
		assert.Equal(t, day(2026, 9, 2), r.End())
		assert.Equal(t, 2, r.Days())
	})
}

func TestDateRangeOverlaps(t *testing.T) {
	base := func(t *testing.T) reservation.DateRange {
		return mustRange(t, day(2026, 9, 10), day(2026, 9, 15))
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical ranges", day(2026, 9, 10), day(2026, 9, 15), true},
		{"fully inside", day(2026, 9, 11), day(2026, 9, 14), true},
		{"fully containing", day(2026, 9, 1), day(2026, 9, 30), true},
		{"partial from the left", day(2026, 9, 5), day(2026, 9, 10), true},
		{"partial from the right", day(2026, 9, 15), day(2026, 9, 20), true},
		// One ends the day the other starts: shared day, still a conflict.
		{"boundary day shared at start", day(2026, 9, 5), day(2026, 9, 10), true},
		{"boundary day shared at end", day(2026, 9, 15), day(2026, 9, 18), true},
		{"adjacent before", day(2026, 9, 5), day(2026, 9, 9), false},
		{"adjacent after", day(2026, 9, 16), day(2026, 9, 20), false},
		{"far away", day(2026, 10, 1), day(2026, 10, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustRange(t, tt.start, tt.end)
			assert.Equal(t, tt.want, base(t).Overlaps(other))
			// Intersection is symmetric.
			assert.Equal(t, tt.want, other.Overlaps(base(t)))
		})
	}
}

func TestMoney(t *testing.T) {
	t.Run("zero is valid", func(t *testing.T) {
		m, err := reservation.NewMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})

	t.Run("negative is rejected", func(t *testing.T) {
		_, err := reservation.NewMoney(-1)
		require.ErrorIs(t, err, reservation.ErrNegativePrice)
	})
}

func TestGeoPoint(t *testing.T) {
	tests := []struct {
		name  string
		lat   float64
		lng   float64
		errIs error
	}{
		{"valid point", 35.6586, 139.7454, nil},
		{"latitude at bound", 90, 0, nil},
		{"latitude out of range", 90.01, 0, reservation.ErrInvalidLatitude},
		{"longitude at bound", 0, -180, nil},
		{"longitude out of range", 0, 180.5, reservation.ErrInvalidLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := reservation.NewGeoPoint(tt.lat, tt.lng)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, p.Lat())
			assert.Equal(t, tt.lng, p.Lng())
		})
	}
}
