//go:build unit

package promo_test

import (
	"testing"
	"time"

	"tripdesk/internal/domain/promo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func int32Ptr(v int32) *int32 { return &v }

func newCode(t *testing.T, discount promo.Discount, minAmount int64, validUntil *time.Time, maxUses *int32, usedCount int32) *promo.PromoCode {
	t.Helper()
	code, err := promo.NewPromoCode(uuid.New(), "SUMMER26", discount, minAmount, validUntil, maxUses, usedCount)
	require.NoError(t, err)
	return code
}

func TestDiscountMath(t *testing.T) {
	t.Run("percentage", func(t *testing.T) {
		d, err := promo.NewPercentageDiscount(10, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), d.AmountOff(10000))
	})

	t.Run("percentage with cap", func(t *testing.T) {
		d, err := promo.NewPercentageDiscount(50, int64Ptr(2000))
		require.NoError(t, err)
		assert.Equal(t, int64(2000), d.AmountOff(10000))
		assert.Equal(t, int64(500), d.AmountOff(1000))
	})

	t.Run("fixed amount never exceeds price", func(t *testing.T) {
		d, err := promo.NewFixedDiscount(5000)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), d.AmountOff(10000))
		assert.Equal(t, int64(3000), d.AmountOff(3000))
	})

	t.Run("invalid percent rejected", func(t *testing.T) {
		_, err := promo.NewPercentageDiscount(0, nil)
		assert.ErrorIs(t, err, promo.ErrInvalidPercent)
		_, err = promo.NewPercentageDiscount(100.5, nil)
		assert.ErrorIs(t, err, promo.ErrInvalidPercent)
	})

	t.Run("non-positive fixed discount rejected", func(t *testing.T) {
		_, err := promo.NewFixedDiscount(0)
		assert.ErrorIs(t, err, promo.ErrInvalidDiscount)
	})
}

func TestPromoCodeApply(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	tenPercent, _ := promo.NewPercentageDiscount(10, nil)

	t.Run("applies discount", func(t *testing.T) {
		code := newCode(t, tenPercent, 0, nil, nil, 0)
		got, err := code.Apply(10000, now)
		require.NoError(t, err)
		assert.Equal(t, int64(9000), got)
	})

	t.Run("expired code", func(t *testing.T) {
		past := now.Add(-time.Hour)
		code := newCode(t, tenPercent, 0, &past, nil, 0)
		_, err := code.Apply(10000, now)
		require.ErrorIs(t, err, promo.ErrExpired)
	})

	t.Run("valid until the exact deadline", func(t *testing.T) {
		code := newCode(t, tenPercent, 0, &now, nil, 0)
		_, err := code.Apply(10000, now)
		require.NoError(t, err)
	})

	t.Run("below minimum amount", func(t *testing.T) {
		code := newCode(t, tenPercent, 5000, nil, nil, 0)
		_, err := code.Apply(4999, now)
		require.ErrorIs(t, err, promo.ErrBelowMinAmount)
	})

	t.Run("exhausted code", func(t *testing.T) {
		code := newCode(t, tenPercent, 0, nil, int32Ptr(3), 3)
		assert.True(t, code.IsExhausted())
		_, err := code.Apply(10000, now)
		require.ErrorIs(t, err, promo.ErrExhausted)
	})

	t.Run("one redemption left", func(t *testing.T) {
		code := newCode(t, tenPercent, 0, nil, int32Ptr(3), 2)
		assert.False(t, code.IsExhausted())
		_, err := code.Apply(10000, now)
		require.NoError(t, err)
	})

	t.Run("unlimited uses never exhaust", func(t *testing.T) {
		code := newCode(t, tenPercent, 0, nil, nil, 1000000)
		assert.False(t, code.IsExhausted())
	})
}

func TestNewPromoCodeRequiresDiscount(t *testing.T) {
	_, err := promo.NewPromoCode(uuid.New(), "EMPTY", promo.Discount{}, 0, nil, nil, 0)
	require.ErrorIs(t, err, promo.ErrInvalidDiscount)
}
