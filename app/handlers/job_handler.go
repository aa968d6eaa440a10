package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/prasit9/affilink/app/dto"
	businessflow "github.com/prasit9/affilink/business_flow"
)

// JobHandlerInterface defines the contract for background job status handlers
type JobHandlerInterface interface {
	GetRefreshStatus(c fiber.Ctx) error
}

// JobHandler reports background job outcomes to the dashboard
type JobHandler struct {
	jobStatusFlow businessflow.JobStatusFlow
}

// NewJobHandler creates a new job status handler
func NewJobHandler(jobStatusFlow businessflow.JobStatusFlow) *JobHandler {
	return &JobHandler{jobStatusFlow: jobStatusFlow}
}

// GetRefreshStatus returns the outcome of the most recent price refresh run
// @Summary Refresh Job Status
// @Tags Jobs
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.JobStatusResponse}
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/jobs/status [get]
func (h *JobHandler) GetRefreshStatus(c fiber.Ctx) error {
	status, err := h.jobStatusFlow.Get(createRequestContext(c, "/api/jobs/status"))
	if err != nil {
		log.Println("Refresh job status read failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to read job status",
			Error:   dto.ErrorDetail{Code: "INTERNAL_ERROR", Message: "Failed to read job status"},
		})
	}

	resp := dto.JobStatusResponse{
		DurationMillis: status.DurationMillis,
		Processed:      status.Processed,
		Updated:        status.Updated,
		Errors:         status.Errors,
	}
	if status.LastRunAt != nil {
		formatted := status.LastRunAt.UTC().Format(time.RFC3339)
		resp.LastRunAt = &formatted
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Job status fetched successfully",
		Data:    resp,
	})
}
