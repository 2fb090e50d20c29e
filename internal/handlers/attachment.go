package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/requestdata"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/services"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

type AttachmentHandler struct {
	log               *logger.Logger
	attachmentService services.AttachmentService
}

func NewAttachmentHandler(log *logger.Logger, attachmentService services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		log:               log.With("handler", "AttachmentHandler"),
		attachmentService: attachmentService,
	}
}

// POST /api/projects/:id/attachments
func (h *AttachmentHandler) Upload(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_PROJECT_ID", err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", err)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(raw)
	}
	if _, err := services.SourceTypeForMime(mimeType); err != nil {
		RespondError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", err)
		return
	}

	input := services.AddAttachmentInput{
		ProjectID:    projectID,
		OriginalName: fileHeader.Filename,
		MimeType:     mimeType,
		Raw:          raw,
	}
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		input.UploadedBy = rd.UserID
		input.UploaderName = rd.DisplayName
	}

	attachment, err := h.attachmentService.Add(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

// GET /api/projects/:id/attachments
func (h *AttachmentHandler) ListActive(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_PROJECT_ID", err)
		return
	}
	list, err := h.attachmentService.ListActiveOrdered(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, list)
}

type updateMetadataRequest struct {
	DisplayTitle     *string `json:"display_title"`
	AppendixCategory *string `json:"appendix_category"`
}

// PATCH /api/attachments/:id
func (h *AttachmentHandler) UpdateMetadata(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_ATTACHMENT_ID", err)
		return
	}
	var req updateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_BODY", err)
		return
	}
	attachment, err := h.attachmentService.UpdateMetadata(c.Request.Context(), id, req.DisplayTitle, req.AppendixCategory)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, attachment)
}

// POST /api/attachments/:id/move-up
func (h *AttachmentHandler) MoveUp(c *gin.Context) {
	h.move(c, h.attachmentService.MoveUp)
}

// POST /api/attachments/:id/move-down
func (h *AttachmentHandler) MoveDown(c *gin.Context) {
	h.move(c, h.attachmentService.MoveDown)
}

func (h *AttachmentHandler) move(c *gin.Context, op func(ctx context.Context, id uuid.UUID) ([]*types.Attachment, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_ATTACHMENT_ID", err)
		return
	}
	list, err := op(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, list)
}

// DELETE /api/attachments/:id
func (h *AttachmentHandler) SoftDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_ATTACHMENT_ID", err)
		return
	}
	if err := h.attachmentService.SoftDelete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
