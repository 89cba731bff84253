package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heala/internal/domain"
)

func (h *Handler) getPractitioners(c *gin.Context) {
	var filter domain.PractitionerFilter

	if statusStr := c.Query("verification_status"); statusStr != "" {
		status := domain.VerificationStatus(statusStr)
		if !status.IsValid() {
			badRequestResponse(c, "invalid verification status")
			return
		}
		filter.VerificationStatus = &status
	}
	if availStr := c.Query("is_available"); availStr != "" {
		avail := availStr == "true"
		filter.IsAvailable = &avail
	}
	if spec := c.Query("specialization"); spec != "" {
		filter.Specialization = &spec
	}
	filter.Limit, filter.Offset = paginationParams(c)

	practitioners, total, err := h.services.Practitioner.List(c.Request.Context(), filter)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, practitioners, total, filter.Offset/filter.Limit+1, filter.Limit)
}

func (h *Handler) getPractitionerByID(c *gin.Context) {
	practitioner, err := h.services.Practitioner.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, practitioner)
}

func (h *Handler) getMyPractitionerProfile(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	practitioner, err := h.services.Practitioner.GetByUserID(c.Request.Context(), actor.ID)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, practitioner)
}

// @Summary Update a practitioner profile
// @Description Applies a partial update and recomputes profile completeness.
// @Tags Practitioners
// @Accept json
// @Produce json
// @Param id path string true "Practitioner ID"
// @Param input body domain.UpdatePractitionerDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 403 {object} errorResponseBody "Not the profile owner"
// @Failure 404 {object} errorResponseBody "Practitioner not found"
// @Security ApiKeyAuth
// @Router /practitioners/{id} [put]
func (h *Handler) updatePractitioner(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.UpdatePractitionerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid practitioner update payload", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Practitioner.Update(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "profile updated")
}

// @Summary Profile completeness report
// @Description Returns the completeness percentage and which fields are still missing.
// @Tags Practitioners
// @Produce json
// @Param id path string true "Practitioner ID"
// @Success 200 {object} domain.CompletenessReport
// @Failure 404 {object} errorResponseBody "Practitioner not found"
// @Router /practitioners/{id}/completeness [get]
func (h *Handler) getPractitionerCompleteness(c *gin.Context) {
	report, err := h.services.Practitioner.Completeness(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, report)
}

func (h *Handler) uploadCoverPhoto(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	data, filename, ok := readUploadedFile(c)
	if !ok {
		return
	}

	if err := h.services.Practitioner.UploadCoverPhoto(c.Request.Context(), actor, c.Param("id"), data, filename); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "cover photo uploaded")
}

func (h *Handler) uploadPractitionerMedia(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	mediaType := domain.MediaType(c.DefaultPostForm("media_type", string(domain.MediaTypeGallery)))

	data, filename, ok := readUploadedFile(c)
	if !ok {
		return
	}

	id, err := h.services.Practitioner.UploadMedia(c.Request.Context(), actor, c.Param("id"), mediaType, data, filename)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

func (h *Handler) getPractitionerMedia(c *gin.Context) {
	media, err := h.services.Practitioner.ListMedia(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, media)
}

func (h *Handler) deletePractitionerMedia(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Practitioner.DeleteMedia(c.Request.Context(), actor, c.Param("mediaId")); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

func (h *Handler) addAvailability(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAvailabilityDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Availability.Add(c.Request.Context(), actor, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

func (h *Handler) getPractitionerAvailability(c *gin.Context) {
	windows, err := h.services.Availability.ListByPractitioner(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, windows)
}

func (h *Handler) deleteAvailability(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Availability.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// readUploadedFile reads the multipart "file" field, responding with 400 on
// failure. Size limits are enforced by the service layer.
func readUploadedFile(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequestResponse(c, "file is required")
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequestResponse(c, "cannot open uploaded file")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxDocumentSize+1))
	if err != nil {
		badRequestResponse(c, "cannot read uploaded file")
		return nil, "", false
	}

	return data, fileHeader.Filename, true
}
