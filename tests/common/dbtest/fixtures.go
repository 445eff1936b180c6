//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", precomputed so fixtures stay fast
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestAccount(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	accountID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO accounts (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		accountID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM accounts WHERE email = $1", email).Scan(&accountID)
	}

	return accountID
}

func CreateTestVehicle(t *testing.T, db DBLike, ownerAccountID uuid.UUID, name string, withDriver bool) uuid.UUID {
	t.Helper()

	vehicleID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO vehicles (id, owner_account_id, name, with_driver, available) VALUES ($1, $2, $3, $4, true)",
		vehicleID, ownerAccountID, name, withDriver)
	require.NoError(t, err)

	return vehicleID
}

func CreateTestHotel(t *testing.T, db DBLike, ownerAccountID uuid.UUID, name string, totalUnits int32) uuid.UUID {
	t.Helper()

	hotelID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO hotels (id, owner_account_id, name, total_units, available_units) VALUES ($1, $2, $3, $4, $4)",
		hotelID, ownerAccountID, name, totalUnits)
	require.NoError(t, err)

	return hotelID
}

func CreateTestDriver(t *testing.T, db DBLike, accountID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	driverID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO drivers (id, account_id, name, available) VALUES ($1, $2, $3, true)",
		driverID, accountID, name)
	require.NoError(t, err)

	return driverID
}

func CreateTestTourGuide(t *testing.T, db DBLike, accountID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	guideID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO tour_guides (id, account_id, name, available) VALUES ($1, $2, $3, true)",
		guideID, accountID, name)
	require.NoError(t, err)

	return guideID
}

func CreateTestPromoCode(t *testing.T, db DBLike, code string, percentOff float64, maxUses *int32) uuid.UUID {
	t.Helper()

	promoID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO promo_codes (id, code, percent_off, max_uses) VALUES ($1, $2, $3, $4)",
		promoID, code, percentOff, maxUses)
	require.NoError(t, err)

	return promoID
}

func CreateApprovedLicense(t *testing.T, db DBLike, accountID uuid.UUID) uuid.UUID {
	t.Helper()

	licenseID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO license_records (id, account_id, status) VALUES ($1, $2, 'approved')",
		licenseID, accountID)
	require.NoError(t, err)

	return licenseID
}

func HotelAvailableUnits(t *testing.T, db DBLike, hotelID uuid.UUID) int32 {
	t.Helper()

	var units int32
	err := db.QueryRow(context.Background(),
		"SELECT available_units FROM hotels WHERE id = $1", hotelID).Scan(&units)
	require.NoError(t, err)

	return units
}

func PromoUsedCount(t *testing.T, db DBLike, promoID uuid.UUID) int32 {
	t.Helper()

	var count int32
	err := db.QueryRow(context.Background(),
		"SELECT used_count FROM promo_codes WHERE id = $1", promoID).Scan(&count)
	require.NoError(t, err)

	return count
}

func ReservationStatus(t *testing.T, db DBLike, reservationID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM reservations WHERE id = $1", reservationID).Scan(&status)
	require.NoError(t, err)

	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
