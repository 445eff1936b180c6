//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"tripdesk/internal/handler/dto/request"
	"tripdesk/internal/handler/dto/response"
	"tripdesk/tests/common/authtest"
	"tripdesk/tests/common/dbtest"
	"tripdesk/tests/common/httptest"
	"tripdesk/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const reservationsURL = "/api/reservations"

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func buildCreateRequest(kind string, resourceID uuid.UUID) request.CreateReservationRequest {
	return request.CreateReservationRequest{
		ResourceKind: kind,
		ResourceID:   resourceID,
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-03",
		PriceCents:   150000,
	}
}

func (s *ReservationSuite) createReservation(t *testing.T, token string, req request.CreateReservationRequest) uuid.UUID {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.CreateReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.NotEqual(t, uuid.Nil, created.ID)
	return created.ID
}

// =============================================================================
// TestCreateReservation - Reservation creation API tests
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: Traveler reserves a chauffeured vehicle", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")

		id := s.createReservation(t, token, buildCreateRequest("vehicle", vehicleID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+id.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var actualRes response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &actualRes))

		expected := &response.ReservationResponse{
			ID:              id,
			ResourceKind:    "vehicle",
			ResourceID:      vehicleID,
			ResourceName:    "City Hatchback",
			RequesterEmail:  "traveler@example.com",
			StartDate:       "2026-09-01",
			EndDate:         "2026-09-03",
			TotalPriceCents: 150000,
			Status:          "pending",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReservationResponse{}, "RequesterID", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &actualRes, opts...); diff != "" {
			t.Errorf("reservation response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: Overlapping dates on an exclusive-use resource conflict", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")

		s.createReservation(t, token, buildCreateRequest("vehicle", vehicleID))

		// Same last day as the existing reservation's first day still conflicts.
		second := buildCreateRequest("vehicle", vehicleID)
		second.StartDate = "2026-08-30"
		second.EndDate = "2026-09-01"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, second, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Adjacent days are free.
		third := buildCreateRequest("vehicle", vehicleID)
		third.StartDate = "2026-09-04"
		third.EndDate = "2026-09-05"
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, third, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: Self-drive vehicle requires an approved licence", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "Self-drive Sedan", false)
		travelerID := dbtest.CreateTestAccount(t, s.DB, "traveler@example.com", "traveler")
		token := authtest.LoginAccount(t, s.Router, "traveler@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			buildCreateRequest("vehicle", vehicleID), token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

		dbtest.CreateApprovedLicense(t, s.DB, travelerID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			buildCreateRequest("vehicle", vehicleID), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: Business accounts may not create reservations", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)
		token := authtest.LoginAccount(t, s.Router, "owner@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			buildCreateRequest("vehicle", vehicleID), token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: Missing resource returns 404", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			buildCreateRequest("vehicle", uuid.New()), token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Normal case: Promo code discounts the stored price", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "hotel_owner")
		hotelID := dbtest.CreateTestHotel(t, s.DB, ownerID, "Bay View Hotel", 10)
		dbtest.CreateTestPromoCode(t, s.DB, "SUMMER26", 10, nil)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")

		req := buildCreateRequest("hotel", hotelID)
		code := "SUMMER26"
		req.PromoCode = &code
		id := s.createReservation(t, token, req)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+id.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var actualRes response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &actualRes))
		require.Equal(t, int64(135000), actualRes.TotalPriceCents)
		require.NotNil(t, actualRes.PromoCodeID)
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			buildCreateRequest("vehicle", uuid.New()), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestLifecycle - Reservation state transition API tests
// =============================================================================

func (s *ReservationSuite) TestLifecycle() {
	s.Run("Normal case: Pending reservation is accepted then completed", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)
		travelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")
		id := s.createReservation(t, travelerToken, buildCreateRequest("vehicle", vehicleID))

		ownerToken := authtest.LoginAccount(t, s.Router, "owner@example.com", "password123")
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/accept", nil, ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "confirmed", dbtest.ReservationStatus(t, s.DB, id))

		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", "admin")
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/complete", nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "completed", dbtest.ReservationStatus(t, s.DB, id))

		// Completed is terminal.
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/withdraw", nil, travelerToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: Owner rejects with a reason", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "hotel_owner")
		hotelID := dbtest.CreateTestHotel(t, s.DB, ownerID, "Bay View Hotel", 5)
		travelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")
		id := s.createReservation(t, travelerToken, buildCreateRequest("hotel", hotelID))

		ownerToken := authtest.LoginAccount(t, s.Router, "owner@example.com", "password123")

		// Missing reason is a 400.
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/reject",
			request.RejectReservationRequest{}, ownerToken)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/reject",
			request.RejectReservationRequest{Reason: "fully renovating that week"}, ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "cancelled", dbtest.ReservationStatus(t, s.DB, id))

		var actualRes response.ReservationResponse
		g := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+id.String(), nil, travelerToken)
		require.Equal(t, http.StatusOK, g.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, g.Body, &actualRes))
		require.NotNil(t, actualRes.CancellationReason)
		require.Equal(t, "fully renovating that week", *actualRes.CancellationReason)
	})

	s.Run("Error case: Only the supplying owner may accept", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)
		travelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")
		id := s.createReservation(t, travelerToken, buildCreateRequest("vehicle", vehicleID))

		strangerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other-owner@example.com", "car_owner")
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/accept", nil, strangerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		// Admins do not decide on behalf of suppliers either.
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", "admin")
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/accept", nil, adminToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Normal case: Requester withdraws a confirmed reservation", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)
		travelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")
		id := s.createReservation(t, travelerToken, buildCreateRequest("vehicle", vehicleID))

		ownerToken := authtest.LoginAccount(t, s.Router, "owner@example.com", "password123")
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/accept", nil, ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/withdraw",
			request.WithdrawReservationRequest{}, travelerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "cancelled", dbtest.ReservationStatus(t, s.DB, id))

		// Cancelled is terminal; a second withdraw conflicts.
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/withdraw",
			request.WithdrawReservationRequest{}, travelerToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestHotelUnits - Pooled capacity behavior
// =============================================================================

func (s *ReservationSuite) TestHotelUnits() {
	s.Run("Normal case: Cancelling a hotel reservation returns the unit", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "hotel_owner")
		hotelID := dbtest.CreateTestHotel(t, s.DB, ownerID, "Single Room Inn", 1)
		travelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")

		id := s.createReservation(t, travelerToken, buildCreateRequest("hotel", hotelID))
		require.Equal(t, int32(0), dbtest.HotelAvailableUnits(t, s.DB, hotelID))

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/withdraw",
			request.WithdrawReservationRequest{}, travelerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, int32(1), dbtest.HotelAvailableUnits(t, s.DB, hotelID))
	})

	s.Run("Normal case: Cancelled reservations do not block new bookings", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "hotel_owner")
		hotelID := dbtest.CreateTestHotel(t, s.DB, ownerID, "Single Room Inn", 1)
		travelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")

		id := s.createReservation(t, travelerToken, buildCreateRequest("hotel", hotelID))

		// Pool is exhausted for the overlapping window.
		other := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", "traveler")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			buildCreateRequest("hotel", hotelID), other)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, reservationsURL+"/"+id.String()+"/withdraw",
			request.WithdrawReservationRequest{}, travelerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
			buildCreateRequest("hotel", hotelID), other)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestConcurrency - Races resolved inside the reservation transaction
// =============================================================================

func (s *ReservationSuite) TestConcurrency() {
	s.Run("Normal case: One winner per exclusive-use resource", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)

		const attempts = 8
		tokens := make([]string, attempts)
		for i := range attempts {
			tokens[i] = authtest.CreateAndLogin(t, s.DB, s.Router,
				fmt.Sprintf("traveler%d@example.com", i), "traveler")
		}

		var created, conflicted atomic.Int32
		var g errgroup.Group
		for i := range attempts {
			g.Go(func() error {
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
					buildCreateRequest("vehicle", vehicleID), tokens[i])
				switch w.Code {
				case http.StatusCreated:
					created.Add(1)
				case http.StatusConflict:
					conflicted.Add(1)
				default:
					return fmt.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		require.Equal(t, int32(1), created.Load(), "exactly one attempt should win")
		require.Equal(t, int32(attempts-1), conflicted.Load())
	})

	s.Run("Normal case: Hotel pool never oversells", func() {
		t := s.T()

		const totalUnits = 3
		const attempts = 8

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "hotel_owner")
		hotelID := dbtest.CreateTestHotel(t, s.DB, ownerID, "Bay View Hotel", totalUnits)

		tokens := make([]string, attempts)
		for i := range attempts {
			tokens[i] = authtest.CreateAndLogin(t, s.DB, s.Router,
				fmt.Sprintf("traveler%d@example.com", i), "traveler")
		}

		var created atomic.Int32
		var g errgroup.Group
		for i := range attempts {
			g.Go(func() error {
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
					buildCreateRequest("hotel", hotelID), tokens[i])
				switch w.Code {
				case http.StatusCreated:
					created.Add(1)
				case http.StatusConflict:
				default:
					return fmt.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		require.Equal(t, int32(totalUnits), created.Load(), "winners must match the pool size")
		require.Equal(t, int32(0), dbtest.HotelAvailableUnits(t, s.DB, hotelID))
	})

	s.Run("Normal case: Promo redemptions never exceed the cap", func() {
		t := s.T()

		const maxUses = int32(2)
		const attempts = 5

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "hotel_owner")
		hotelID := dbtest.CreateTestHotel(t, s.DB, ownerID, "Bay View Hotel", attempts)
		uses := maxUses
		promoID := dbtest.CreateTestPromoCode(t, s.DB, "LASTTWO", 10, &uses)

		tokens := make([]string, attempts)
		for i := range attempts {
			tokens[i] = authtest.CreateAndLogin(t, s.DB, s.Router,
				fmt.Sprintf("traveler%d@example.com", i), "traveler")
		}

		var created atomic.Int32
		var g errgroup.Group
		for i := range attempts {
			g.Go(func() error {
				req := buildCreateRequest("hotel", hotelID)
				code := "LASTTWO"
				req.PromoCode = &code
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req, tokens[i])
				switch w.Code {
				case http.StatusCreated:
					created.Add(1)
				case http.StatusConflict:
				default:
					return fmt.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		require.Equal(t, maxUses, created.Load(), "winners must match the promo cap")
		require.Equal(t, maxUses, dbtest.PromoUsedCount(t, s.DB, promoID))
	})
}

// =============================================================================
// TestListReservations - Role-scoped listing
// =============================================================================

func (s *ReservationSuite) TestListReservations() {
	s.Run("Normal case: Each role sees its own slice", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		otherOwnerID := dbtest.CreateTestAccount(t, s.DB, "other-owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)
		otherVehicleID := dbtest.CreateTestVehicle(t, s.DB, otherOwnerID, "Beach Buggy", true)

		travelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")
		s.createReservation(t, travelerToken, buildCreateRequest("vehicle", vehicleID))

		otherTravelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", "traveler")
		s.createReservation(t, otherTravelerToken, buildCreateRequest("vehicle", otherVehicleID))

		listLen := func(token, query string) int {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+query, nil, token)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var items []*response.ReservationListResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
			return len(items)
		}

		require.Equal(t, 1, listLen(travelerToken, ""), "traveler sees only their own")

		ownerToken := authtest.LoginAccount(t, s.Router, "owner@example.com", "password123")
		require.Equal(t, 1, listLen(ownerToken, ""), "owner sees reservations against their resources")

		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", "admin")
		require.Equal(t, 2, listLen(adminToken, ""), "admin sees everything")

		require.Equal(t, 2, listLen(adminToken, "?status=pending"))
		require.Equal(t, 0, listLen(adminToken, "?status=confirmed"))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?status=archived", nil, adminToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: Strangers cannot read another traveler's reservation", func() {
		t := s.T()

		ownerID := dbtest.CreateTestAccount(t, s.DB, "owner@example.com", "car_owner")
		vehicleID := dbtest.CreateTestVehicle(t, s.DB, ownerID, "City Hatchback", true)
		travelerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "traveler@example.com", "traveler")
		id := s.createReservation(t, travelerToken, buildCreateRequest("vehicle", vehicleID))

		strangerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "stranger@example.com", "traveler")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+id.String(), nil, strangerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
