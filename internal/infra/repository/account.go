package repository

import (
	"context"

	"tripdesk/internal/domain/account"
	"tripdesk/internal/infra"
	"tripdesk/internal/infra/db"
	"tripdesk/internal/pkg/pgconv"
	"tripdesk/internal/usecase"

	"github.com/google/uuid"
)

type AccountRepository struct {
	db db.DBTX
}

func NewAccountRepository(db db.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ usecase.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) FindByEmail(ctx context.Context, email account.Email) (*usecase.AccountView, string, error) {
	const query = `
		SELECT id, email, role, is_active, password_hash
		FROM accounts
		WHERE email = $1`

	var view usecase.AccountView
	var hash string
	err := r.db.QueryRow(ctx, query, email.String()).Scan(
		&view.ID,
		&view.Email,
		&view.Role,
		&view.IsActive,
		&hash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("account not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find account by email", err)
	}

	return &view, hash, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*usecase.AccountView, error) {
	const query = `
		SELECT id, email, role, is_active
		FROM accounts
		WHERE id = $1`

	var view usecase.AccountView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID,
		&view.Email,
		&view.Role,
		&view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find account by id", err)
	}

	return &view, nil
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, accountID uuid.UUID) error {
	const query = `UPDATE accounts SET last_login_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, accountID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}

	return nil
}
