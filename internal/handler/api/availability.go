package api

import (
	"net/http"

	reqdto "tripdesk/internal/handler/dto/request"
	resdto "tripdesk/internal/handler/dto/response"
	"tripdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	queries queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: q}
}

// @Summary Check availability
// @Description Check whether a resource can be reserved for a date range; advisory only
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param resource_kind query string true "Resource kind (vehicle, hotel, driver, tour_guide)"
// @Param resource_id query string true "Resource ID"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	ref, dates, err := q.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	result, err := h.queries.Check(c.Request.Context(), ref, dates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}
