//go:build unit

package account_test

import (
	"testing"

	"tripdesk/internal/domain/account"
	"tripdesk/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeCreate(t *testing.T) {
	tests := []struct {
		role    account.Role
		allowed bool
	}{
		{account.RoleTraveler, true},
		{account.RoleAdmin, true},
		{account.RoleDriver, false},
		{account.RoleTourGuide, false},
		{account.RoleCarOwner, false},
		{account.RoleHotelOwner, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			actor := account.Actor{ID: uuid.New(), Role: tt.role}
			err := account.Authorize(actor, account.ActionCreate, account.ReservationFacts{})
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, account.ErrDenied)
			}
		})
	}
}

func TestAuthorizeDecide(t *testing.T) {
	owner := uuid.New()

	kinds := map[catalog.Kind]account.Role{
		catalog.KindVehicle:   account.RoleCarOwner,
		catalog.KindHotel:     account.RoleHotelOwner,
		catalog.KindDriver:    account.RoleDriver,
		catalog.KindTourGuide: account.RoleTourGuide,
	}

	for kind, deciderRole := range kinds {
		facts := account.ReservationFacts{
			RequesterID:    uuid.New(),
			ResourceKind:   kind,
			OwnerAccountID: owner,
		}

		t.Run(string(kind)+" owner may decide", func(t *testing.T) {
			actor := account.Actor{ID: owner, Role: deciderRole}
			assert.NoError(t, account.Authorize(actor, account.ActionAccept, facts))
			assert.NoError(t, account.Authorize(actor, account.ActionReject, facts))
		})

		t.Run(string(kind)+" right role wrong account denied", func(t *testing.T) {
			actor := account.Actor{ID: uuid.New(), Role: deciderRole}
			assert.ErrorIs(t, account.Authorize(actor, account.ActionAccept, facts), account.ErrDenied)
		})

		t.Run(string(kind)+" admin cannot decide for suppliers", func(t *testing.T) {
			actor := account.Actor{ID: owner, Role: account.RoleAdmin}
			assert.ErrorIs(t, account.Authorize(actor, account.ActionAccept, facts), account.ErrDenied)
		})
	}

	t.Run("wrong business role denied", func(t *testing.T) {
		facts := account.ReservationFacts{
			RequesterID:    uuid.New(),
			ResourceKind:   catalog.KindVehicle,
			OwnerAccountID: owner,
		}
		actor := account.Actor{ID: owner, Role: account.RoleHotelOwner}
		assert.ErrorIs(t, account.Authorize(actor, account.ActionAccept, facts), account.ErrDenied)
	})
}

func TestAuthorizeWithdraw(t *testing.T) {
	requester := uuid.New()
	facts := account.ReservationFacts{
		RequesterID:    requester,
		ResourceKind:   catalog.KindHotel,
		OwnerAccountID: uuid.New(),
	}

	t.Run("requester may withdraw", func(t *testing.T) {
		actor := account.Actor{ID: requester, Role: account.RoleTraveler}
		require.NoError(t, account.Authorize(actor, account.ActionWithdraw, facts))
	})

	t.Run("anyone else denied, admin included", func(t *testing.T) {
		for _, role := range []account.Role{account.RoleAdmin, account.RoleHotelOwner, account.RoleTraveler} {
			actor := account.Actor{ID: uuid.New(), Role: role}
			assert.ErrorIs(t, account.Authorize(actor, account.ActionWithdraw, facts), account.ErrDenied)
		}
	})
}

func TestAuthorizeComplete(t *testing.T) {
	facts := account.ReservationFacts{
		RequesterID:    uuid.New(),
		ResourceKind:   catalog.KindVehicle,
		OwnerAccountID: uuid.New(),
	}

	t.Run("admin only", func(t *testing.T) {
		admin := account.Actor{ID: uuid.New(), Role: account.RoleAdmin}
		require.NoError(t, account.Authorize(admin, account.ActionComplete, facts))

		owner := account.Actor{ID: facts.OwnerAccountID, Role: account.RoleCarOwner}
		assert.ErrorIs(t, account.Authorize(owner, account.ActionComplete, facts), account.ErrDenied)
	})
}

func TestAuthorizeRead(t *testing.T) {
	requester := uuid.New()
	owner := uuid.New()
	facts := account.ReservationFacts{
		RequesterID:    requester,
		ResourceKind:   catalog.KindTourGuide,
		OwnerAccountID: owner,
	}

	t.Run("requester, owner and admin may read", func(t *testing.T) {
		assert.NoError(t, account.Authorize(account.Actor{ID: requester, Role: account.RoleTraveler}, account.ActionRead, facts))
		assert.NoError(t, account.Authorize(account.Actor{ID: owner, Role: account.RoleTourGuide}, account.ActionRead, facts))
		assert.NoError(t, account.Authorize(account.Actor{ID: uuid.New(), Role: account.RoleAdmin}, account.ActionRead, facts))
	})

	t.Run("unrelated account denied", func(t *testing.T) {
		actor := account.Actor{ID: uuid.New(), Role: account.RoleTraveler}
		assert.ErrorIs(t, account.Authorize(actor, account.ActionRead, facts), account.ErrDenied)
	})
}

func TestDeniedErrorCarriesReason(t *testing.T) {
	actor := account.Actor{ID: uuid.New(), Role: account.RoleDriver}
	err := account.Authorize(actor, account.ActionCreate, account.ReservationFacts{})

	require.ErrorIs(t, err, account.ErrDenied)
	var denied *account.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.NotEmpty(t, denied.Reason)
}
