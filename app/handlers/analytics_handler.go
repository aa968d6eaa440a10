package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/prasit9/affilink/app/dto"
	businessflow "github.com/prasit9/affilink/business_flow"
	"github.com/prasit9/affilink/utils"
)

// AnalyticsHandlerInterface defines the contract for analytics handlers
type AnalyticsHandlerInterface interface {
	GetOverview(c fiber.Ctx) error
	GetTopProducts(c fiber.Ctx) error
	GetCampaignStats(c fiber.Ctx) error
}

// AnalyticsHandler handles dashboard analytics HTTP requests
type AnalyticsHandler struct {
	analyticsFlow businessflow.AnalyticsFlow
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsFlow businessflow.AnalyticsFlow) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsFlow: analyticsFlow}
}

func (h *AnalyticsHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
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

func (h *AnalyticsHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GetOverview returns aggregate click metrics for the dashboard
// @Summary Analytics Overview
// @Tags Analytics
// @Produce json
// @Param campaignId query int false "Restrict to one campaign"
// @Param dateRange query string false "last7days, last30days or all" default(all)
// @Success 200 {object} dto.APIResponse{data=dto.OverviewResponse}
// @Failure 400 {object} dto.APIResponse "Unknown date range"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c fiber.Ctx) error {
	filters := dto.OverviewFilters{DateRange: utils.DateRangeAll}
	if v := c.Query("dateRange"); v != "" {
		filters.DateRange = v
	}
	if v := c.Query("campaignId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil || id == 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "campaignId must be a positive integer", "VALIDATION_ERROR", nil)
		}
		filters.CampaignID = utils.ToPtr(uint(id))
	}

	result, err := h.analyticsFlow.GetOverview(createRequestContext(c, "/api/analytics/overview"), filters)
	if err != nil {
		if businessflow.IsInvalidDateRange(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unknown date range", "VALIDATION_ERROR", nil)
		}
		log.Println("Analytics overview failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute overview", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Overview computed successfully", result)
}

// GetTopProducts returns the most clicked products across all campaigns
// @Summary Top Products
// @Tags Analytics
// @Produce json
// @Param limit query int false "Result size, 1 to 50" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.TopProductEntry}
// @Failure 400 {object} dto.APIResponse "Malformed limit"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/analytics/products/top [get]
func (h *AnalyticsHandler) GetTopProducts(c fiber.Ctx) error {
	limit := utils.TopProductsDefaultLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "limit must be an integer", "VALIDATION_ERROR", nil)
		}
		limit = parsed
	}

	result, err := h.analyticsFlow.GetTopProducts(createRequestContext(c, "/api/analytics/products/top"), limit)
	if err != nil {
		log.Println("Top products query failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute top products", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Top products computed successfully", result)
}

// GetCampaignStats returns per-campaign click totals, product breakdown, and daily trend
// @Summary Campaign Stats
// @Tags Analytics
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} dto.APIResponse{data=dto.CampaignStatsResponse}
// @Failure 400 {object} dto.APIResponse "Malformed campaign ID"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/analytics/campaigns/{id} [get]
func (h *AnalyticsHandler) GetCampaignStats(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign ID must be a positive integer", "VALIDATION_ERROR", nil)
	}

	result, err := h.analyticsFlow.GetCampaignStats(createRequestContext(c, "/api/analytics/campaigns/:id"), uint(id))
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "NOT_FOUND", nil)
		}
		log.Println("Campaign stats query failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute campaign stats", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign stats computed successfully", result)
}
