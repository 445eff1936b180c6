package api

import (
	"errors"
	"net/http"

	"tripdesk/internal/domain/account"
	reqdto "tripdesk/internal/handler/dto/request"
	resdto "tripdesk/internal/handler/dto/response"
	"tripdesk/internal/handler/middleware"
	"tripdesk/internal/usecase/commands"
	"tripdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmd commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmd,
		queries:  q,
	}
}

// @Summary Create reservation
// @Description Request a reservation against a catalog resource
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	id, err := h.commands.Create(c.Request.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not permitted",
			})
		case errors.Is(err, commands.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid reservation input",
			})
		case errors.Is(err, commands.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		case errors.Is(err, commands.ErrPromoNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Promo code not found",
			})
		case errors.Is(err, commands.ErrLicenseRequired):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Approved driving licence required",
			})
		case errors.Is(err, commands.ErrResourceUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Resource is not available",
			})
		case errors.Is(err, commands.ErrDateConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Requested dates conflict with an existing reservation",
			})
		case errors.Is(err, commands.ErrCapacityExhausted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "No units left for the requested dates",
			})
		case errors.Is(err, commands.ErrPromoExhausted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Promo code has no redemptions left",
			})
		case errors.Is(err, commands.ErrPromoNotApplicable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Promo code cannot be applied",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateReservationResponse{ID: id})
}

// @Summary Accept reservation
// @Description Confirm a pending reservation as the supplying business account
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/accept [put]
func (h *ReservationHandler) AcceptReservation(c *gin.Context) {
	h.transition(c, func(actor account.Actor, id uuid.UUID) error {
		return h.commands.Accept(c.Request.Context(), actor, id)
	})
}

// @Summary Reject reservation
// @Description Reject a pending reservation with a reason
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RejectReservationRequest true "Rejection reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/reject [put]
func (h *ReservationHandler) RejectReservation(c *gin.Context) {
	var req reqdto.RejectReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Rejection reason is required",
		})
		return
	}

	h.transition(c, func(actor account.Actor, id uuid.UUID) error {
		return h.commands.Reject(c.Request.Context(), actor, id, req.Reason)
	})
}

// @Summary Withdraw reservation
// @Description Withdraw an own reservation before completion
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.WithdrawReservationRequest false "Optional reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/withdraw [put]
func (h *ReservationHandler) WithdrawReservation(c *gin.Context) {
	var req reqdto.WithdrawReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	h.transition(c, func(actor account.Actor, id uuid.UUID) error {
		return h.commands.Withdraw(c.Request.Context(), actor, id, req.GetReason())
	})
}

// @Summary Complete reservation
// @Description Mark a confirmed reservation as completed
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/complete [put]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.transition(c, func(actor account.Actor, id uuid.UUID) error {
		return h.commands.Complete(c.Request.Context(), actor, id)
	})
}

func (h *ReservationHandler) transition(c *gin.Context, fn func(actor account.Actor, id uuid.UUID) error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := fn(actor, id); err != nil {
		switch {
		case errors.Is(err, account.ErrDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not permitted",
			})
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Illegal reservation state transition",
			})
		case errors.Is(err, commands.ErrReasonRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Rejection reason is required",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not permitted",
			})
		case errors.Is(err, queries.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List reservations visible to the current account, optionally filtered by status
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (pending, confirmed, completed, cancelled)"
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var statusFilter *string
	if s := c.Query("status"); s != "" {
		statusFilter = &s
	}

	items, err := h.queries.List(c.Request.Context(), actor, statusFilter)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidStatusFilter):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status filter",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]*resdto.ReservationListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromReservationListItem(item)
	}

	c.JSON(http.StatusOK, response)
}
