package usecase

import (
	"context"
	"errors"

	"tripdesk/internal/domain/account"
	"tripdesk/internal/pkg/jwt"
	"tripdesk/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
)

type AccountView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type AccountRepository interface {
	FindByEmail(ctx context.Context, email account.Email) (*AccountView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AccountView, error)
	UpdateLastLogin(ctx context.Context, accountID uuid.UUID) error
}

type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, account.Role, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, credentials account.Credentials) (string, *AccountView, error)
	GetCurrentAccount(ctx context.Context, accountID uuid.UUID) (*AccountView, error)
	TokenValidator
}

type authUseCaseImpl struct {
	accountRepo AccountRepository
	jwtService  *jwt.Service
}

func NewAuthUseCase(accountRepo AccountRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		accountRepo: accountRepo,
		jwtService:  jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials account.Credentials) (string, *AccountView, error) {
	view, err := a.validateAccount(ctx, credentials)
	if err != nil {
		return "", nil, err
	}

	role, err := account.NewRole(view.Role)
	if err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	if err := a.accountRepo.UpdateLastLogin(ctx, view.ID); err != nil {
		return "", nil, err
	}

	return token, view, nil
}

func (a *authUseCaseImpl) validateAccount(ctx context.Context, credentials account.Credentials) (*AccountView, error) {
	view, hashedPassword, err := a.accountRepo.FindByEmail(ctx, credentials.Email())
	if err != nil || view == nil {
		return nil, ErrAccountNotFound
	}

	if !view.IsActive {
		return nil, ErrAccountInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return view, nil
}

func (a *authUseCaseImpl) GetCurrentAccount(ctx context.Context, accountID uuid.UUID) (*AccountView, error) {
	view, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil || view == nil {
		return nil, ErrAccountNotFound
	}

	if !view.IsActive {
		return nil, ErrAccountInactive
	}

	return view, nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (uuid.UUID, account.Role, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role, err := account.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}

	return claims.AccountID, role, nil
}
