package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heala/internal/domain"
)

// @Summary Upload a verification document
// @Description Uploads a document file (PDF, JPEG or PNG, up to 5 MiB). The content type is sniffed server-side.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param document_type formData string true "Document type"
// @Param file formData file true "Document file"
// @Success 201 {object} map[string]interface{} "ID of the stored document"
// @Failure 400 {object} errorResponseBody "Invalid type, size or content type"
// @Security ApiKeyAuth
// @Router /documents [post]
func (h *Handler) uploadDocument(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	docType := domain.DocumentType(c.PostForm("document_type"))

	data, filename, ok := readUploadedFile(c)
	if !ok {
		return
	}

	id, err := h.services.Document.Upload(c.Request.Context(), actor, docType, data, filename)
	if err != nil {
		h.logger.Warn("document upload rejected", zap.Error(err))
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

func (h *Handler) getPractitionerDocuments(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	docs, err := h.services.Document.ListByPractitioner(c.Request.Context(), actor, c.Param("practitionerId"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, docs)
}

func (h *Handler) getDocumentURL(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	url, err := h.services.Document.DownloadURL(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, gin.H{"url": url})
}

func (h *Handler) reviewDocument(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.ReviewDocumentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Document.Review(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "document reviewed")
}

func (h *Handler) deleteDocument(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Document.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}
