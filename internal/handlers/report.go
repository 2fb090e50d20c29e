package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/services"
)

type ReportHandler struct {
	log           *logger.Logger
	reportService services.ReportService
	mergeService  services.MergeService
}

func NewReportHandler(log *logger.Logger, reportService services.ReportService, mergeService services.MergeService) *ReportHandler {
	return &ReportHandler{
		log:           log.With("handler", "ReportHandler"),
		reportService: reportService,
		mergeService:  mergeService,
	}
}

func respondPDF(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", body)
}

// GET /api/projects/:id/report
func (h *ReportHandler) ComposeReport(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_PROJECT_ID", err)
		return
	}
	report, err := h.reportService.ComposeReport(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	respondPDF(c, report.Filename, report.Bytes)
}

// GET /api/projects/:id/audit-pack
func (h *ReportHandler) MergePack(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "BAD_PROJECT_ID", err)
		return
	}
	pack, err := h.mergeService.MergePack(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	respondPDF(c, pack.Filename, pack.Bytes)
}
