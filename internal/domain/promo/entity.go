package promo

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDiscount = errors.New("promo code must define exactly one discount rule")
	ErrInvalidPercent  = errors.New("percent off must be between 0 and 100")
	ErrExpired         = errors.New("promo code has expired")
	ErrBelowMinAmount  = errors.New("order total below promo code minimum")
	ErrExhausted       = errors.New("promo code has no redemptions left")
)

// Discount is either a percentage (optionally capped) or a fixed amount.
type Discount struct {
	percentOff       *float64
	maxDiscountCents *int64
	amountOffCents   *int64
}

func NewPercentageDiscount(percentOff float64, maxDiscountCents *int64) (Discount, error) {
	if percentOff <= 0 || percentOff > 100 {
		return Discount{}, ErrInvalidPercent
	}
	return Discount{percentOff: &percentOff, maxDiscountCents: maxDiscountCents}, nil
}

func NewFixedDiscount(amountOffCents int64) (Discount, error) {
	if amountOffCents <= 0 {
		return Discount{}, ErrInvalidDiscount
	}
	return Discount{amountOffCents: &amountOffCents}, nil
}

func (d Discount) IsPercentage() bool {
	return d.percentOff != nil
}

// AmountOff computes the discount for a price, never exceeding the price.
func (d Discount) AmountOff(priceCents int64) int64 {
	var off int64
	if d.percentOff != nil {
		off = int64(float64(priceCents) * *d.percentOff / 100.0)
		if d.maxDiscountCents != nil && off > *d.maxDiscountCents {
			off = *d.maxDiscountCents
		}
	} else if d.amountOffCents != nil {
		off = *d.amountOffCents
	}
	if off > priceCents {
		off = priceCents
	}
	return off
}

type PromoCode struct {
	id             uuid.UUID
	code           string
	discount       Discount
	minAmountCents int64
	validUntil     *time.Time
	maxUses        *int32
	usedCount      int32
}

func NewPromoCode(
	id uuid.UUID,
	code string,
	discount Discount,
	minAmountCents int64,
	validUntil *time.Time,
	maxUses *int32,
	usedCount int32,
) (*PromoCode, error) {
	if discount.percentOff == nil && discount.amountOffCents == nil {
		return nil, ErrInvalidDiscount
	}
	return &PromoCode{
		id:             id,
		code:           code,
		discount:       discount,
		minAmountCents: minAmountCents,
		validUntil:     validUntil,
		maxUses:        maxUses,
		usedCount:      usedCount,
	}, nil
}

func (p *PromoCode) ID() uuid.UUID      { return p.id }
func (p *PromoCode) Code() string       { return p.code }
func (p *PromoCode) Discount() Discount { return p.discount }

func (p *PromoCode) IsExhausted() bool {
	return p.maxUses != nil && p.usedCount >= *p.maxUses
}

// Apply validates the code against a price and returns the discounted price.
// The used_count cap is re-checked transactionally at commit; the check here
// only gives callers an early answer.
func (p *PromoCode) Apply(priceCents int64, now time.Time) (int64, error) {
	if p.validUntil != nil && now.After(*p.validUntil) {
		return 0, ErrExpired
	}
	if priceCents < p.minAmountCents {
		return 0, ErrBelowMinAmount
	}
	if p.IsExhausted() {
		return 0, ErrExhausted
	}
	return priceCents - p.discount.AmountOff(priceCents), nil
}
