package repository

import (
	"context"

	"tripdesk/internal/infra"
	"tripdesk/internal/infra/db"
	"tripdesk/internal/pkg/pgconv"
	"tripdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PromoRepository struct {
	db db.DBTX
}

func NewPromoRepository(db db.DBTX) *PromoRepository {
	return &PromoRepository{db: db}
}

var _ shared.PromoRepository = (*PromoRepository)(nil)

// Redeem increments used_count while it is still below max_uses. The guard
// runs in the caller's transaction, so two concurrent redemptions of the last
// use cannot both succeed.
func (r *PromoRepository) Redeem(ctx context.Context, promoID uuid.UUID) error {
	const query = `
		UPDATE promo_codes
		SET used_count = used_count + 1, updated_at = now()
		WHERE id = $1 AND (max_uses IS NULL OR used_count < max_uses)`

	tag, err := r.db.Exec(ctx, query, promoID)
	if err != nil {
		return infra.WrapRepoErr("failed to redeem promo code", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("promo code usage cap reached", nil, infra.KindConflict)
	}

	return nil
}

// FindByCode reads the promo row for pre-transaction validation.
func (r *PromoRepository) FindByCode(ctx context.Context, code string) (*shared.PromoSnapshot, error) {
	const query = `
		SELECT id, code, percent_off, max_discount_cents, amount_off_cents,
		       min_amount_cents, valid_until, max_uses, used_count
		FROM promo_codes
		WHERE code = $1`

	var snap shared.PromoSnapshot
	var percentOff pgtype.Float8
	var maxDiscount, amountOff pgtype.Int8
	var validUntil pgtype.Timestamptz
	var maxUses pgtype.Int4
	err := r.db.QueryRow(ctx, query, code).Scan(
		&snap.ID,
		&snap.Code,
		&percentOff,
		&maxDiscount,
		&amountOff,
		&snap.MinAmountCents,
		&validUntil,
		&maxUses,
		&snap.UsedCount,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promo code not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promo code", err)
	}

	snap.PercentOff = pgconv.Float64PtrFromPgtype(percentOff)
	if maxDiscount.Valid {
		snap.MaxDiscountCents = &maxDiscount.Int64
	}
	if amountOff.Valid {
		snap.AmountOffCents = &amountOff.Int64
	}
	snap.ValidUntil = pgconv.TimePtrFromPgtype(validUntil)
	snap.MaxUses = pgconv.Int32PtrFromPgtype(maxUses)
	return &snap, nil
}
