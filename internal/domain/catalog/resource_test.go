//go:build unit

package catalog_test

import (
	"testing"

	"tripdesk/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	t.Run("closed set", func(t *testing.T) {
		for _, s := range []string{"vehicle", "hotel", "driver", "tour_guide"} {
			k, err := catalog.NewKind(s)
			require.NoError(t, err)
			assert.Equal(t, s, k.String())
		}

		_, err := catalog.NewKind("campervan")
		require.ErrorIs(t, err, catalog.ErrInvalidKind)
		_, err = catalog.NewKind("")
		require.ErrorIs(t, err, catalog.ErrInvalidKind)
	})

	t.Run("only hotels pool units", func(t *testing.T) {
		assert.True(t, catalog.KindVehicle.IsExclusiveUse())
		assert.True(t, catalog.KindDriver.IsExclusiveUse())
		assert.True(t, catalog.KindTourGuide.IsExclusiveUse())
		assert.False(t, catalog.KindHotel.IsExclusiveUse())
	})

	t.Run("mobile kinds", func(t *testing.T) {
		assert.True(t, catalog.KindVehicle.IsMobile())
		assert.True(t, catalog.KindDriver.IsMobile())
		assert.False(t, catalog.KindHotel.IsMobile())
		assert.False(t, catalog.KindTourGuide.IsMobile())
	})
}

func TestResourceRef(t *testing.T) {
	t.Run("valid reference", func(t *testing.T) {
		id := uuid.New()
		ref, err := catalog.NewResourceRef(catalog.KindHotel, id)
		require.NoError(t, err)
		assert.Equal(t, catalog.KindHotel, ref.Kind())
		assert.Equal(t, id, ref.ID())
		assert.False(t, ref.IsZero())
	})

	t.Run("nil id rejected", func(t *testing.T) {
		_, err := catalog.NewResourceRef(catalog.KindHotel, uuid.Nil)
		require.ErrorIs(t, err, catalog.ErrNilResourceID)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		_, err := catalog.NewResourceRef(catalog.Kind("boat"), uuid.New())
		require.ErrorIs(t, err, catalog.ErrInvalidKind)
	})

	t.Run("zero value", func(t *testing.T) {
		var ref catalog.ResourceRef
		assert.True(t, ref.IsZero())
	})
}

func TestUnitPool(t *testing.T) {
	tests := []struct {
		name      string
		total     int32
		available int32
		errIs     error
	}{
		{"full pool", 10, 10, nil},
		{"empty pool", 10, 0, nil},
		{"zero total", 0, 0, catalog.ErrInvalidUnitPool},
		{"available above total", 5, 6, catalog.ErrInvalidUnitPool},
		{"negative available", 5, -1, catalog.ErrInvalidUnitPool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := catalog.NewUnitPool(tt.total, tt.available)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.available > 0, pool.HasCapacity())
		})
	}
}
