package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/prasit9/affilink/app/dto"
	businessflow "github.com/prasit9/affilink/business_flow"
)

// ReportHandlerInterface defines the contract for report download handlers
type ReportHandlerInterface interface {
	DownloadCampaignLinks(c fiber.Ctx) error
}

// ReportHandler serves operator report downloads
type ReportHandler struct {
	reportFlow businessflow.ReportFlow
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportFlow businessflow.ReportFlow) *ReportHandler {
	return &ReportHandler{reportFlow: reportFlow}
}

func (h *ReportHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

// DownloadCampaignLinks returns an Excel workbook of a campaign's links and click counts
// @Summary Download Campaign Links
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Campaign ID"
// @Success 200 {file} binary "Excel workbook"
// @Failure 400 {object} dto.APIResponse "Malformed campaign ID"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/reports/campaigns/{id}/links.xlsx [get]
func (h *ReportHandler) DownloadCampaignLinks(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign ID must be a positive integer", "VALIDATION_ERROR", nil)
	}

	filename, content, err := h.reportFlow.CampaignLinksExcel(createRequestContext(c, "/api/reports/campaigns/:id/links.xlsx"), uint(id))
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "NOT_FOUND", nil)
		}
		log.Println("Campaign links report failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate report", "INTERNAL_ERROR", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(content)
}
