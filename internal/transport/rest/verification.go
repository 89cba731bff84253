package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heala/internal/domain"
)

// @Summary Submit a profile for verification review
// @Description Moves a rejected profile back into the review queue. Both required document types must be on file.
// @Tags Verification
// @Produce json
// @Param id path string true "Practitioner ID"
// @Success 200 {object} messageResponseType
// @Failure 403 {object} errorResponseBody "Not the profile owner"
// @Failure 409 {object} errorResponseBody "Profile is already verified or changed concurrently"
// @Failure 422 {object} errorResponseBody "Required documents missing"
// @Security ApiKeyAuth
// @Router /practitioners/{id}/submit-for-review [post]
func (h *Handler) submitForReview(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Verification.SubmitForReview(c.Request.Context(), actor, c.Param("id")); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "submitted for review")
}

// @Summary Verification queue
// @Description Lists practitioners awaiting a verification decision.
// @Tags Verification
// @Produce json
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /verification/queue [get]
func (h *Handler) getVerificationQueue(c *gin.Context) {
	pending := domain.VerificationStatusPending
	filter := domain.PractitionerFilter{VerificationStatus: &pending}
	filter.Limit, filter.Offset = paginationParams(c)

	practitioners, total, err := h.services.Practitioner.List(c.Request.Context(), filter)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, practitioners, total, filter.Offset/filter.Limit+1, filter.Limit)
}

// @Summary Decide a pending verification
// @Description Resolves a pending verification to verified or rejected and records an audit note.
// @Tags Verification
// @Accept json
// @Produce json
// @Param practitionerId path string true "Practitioner ID"
// @Param input body domain.DecideVerificationDTO true "Decision and optional note"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Invalid decision"
// @Failure 404 {object} errorResponseBody "Practitioner not found"
// @Failure 409 {object} errorResponseBody "Not pending or decided concurrently"
// @Security ApiKeyAuth
// @Router /verification/{practitionerId}/decide [post]
func (h *Handler) decideVerification(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.DecideVerificationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid verification decision payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Verification.Decide(c.Request.Context(), actor, c.Param("practitionerId"), req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "verification decided")
}

func (h *Handler) getVerificationNotes(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	notes, err := h.services.Verification.ListNotes(c.Request.Context(), actor, c.Param("practitionerId"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, notes)
}
