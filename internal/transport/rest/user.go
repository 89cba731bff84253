package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heala/internal/domain"
)

func (h *Handler) getCurrentUser(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, user)
}

func (h *Handler) getUserByID(c *gin.Context) {
	user, err := h.services.User.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid user update payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.User.Update(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "user updated")
}

func (h *Handler) updatePassword(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.PasswordUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.User.UpdatePassword(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "password updated")
}

func (h *Handler) deactivateUser(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.User.Deactivate(c.Request.Context(), actor, c.Param("id")); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

func (h *Handler) getUsers(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var role *domain.UserRole
	if roleStr := c.Query("role"); roleStr != "" {
		r := domain.UserRole(roleStr)
		if !r.IsValid() {
			badRequestResponse(c, "invalid role")
			return
		}
		role = &r
	}

	limit, offset := paginationParams(c)

	users, total, err := h.services.User.List(c.Request.Context(), actor, role, limit, offset)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, users, total, offset/limit+1, limit)
}

func paginationParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
