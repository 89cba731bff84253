package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Admin dashboard overview
// @Description Aggregated counts across users, practitioners, bookings and the verification queue.
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.AdminOverview
// @Failure 403 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/overview [get]
func (h *Handler) getAdminOverview(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	overview, err := h.services.Admin.Overview(c.Request.Context(), actor)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, overview)
}
