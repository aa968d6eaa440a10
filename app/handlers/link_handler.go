package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/prasit9/affilink/app/dto"
	businessflow "github.com/prasit9/affilink/business_flow"
)

// LinkHandlerInterface defines the contract for link handlers
type LinkHandlerInterface interface {
	CreateLink(c fiber.Ctx) error
}

// LinkHandler handles affiliate link minting HTTP requests
type LinkHandler struct {
	linkFlow  businessflow.LinkFlow
	validator *validator.Validate
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkFlow businessflow.LinkFlow) *LinkHandler {
	return &LinkHandler{
		linkFlow:  linkFlow,
		validator: validator.New(),
	}
}

func (h *LinkHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
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

func (h *LinkHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateLink mints a short affiliate link for a campaign, product, and offer
// @Summary Create Link
// @Tags Links
// @Accept json
// @Produce json
// @Param request body dto.CreateLinkRequest true "Link creation data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateLinkResponse} "Link created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Campaign, product, or offer not found"
// @Failure 409 {object} dto.APIResponse "Duplicate link"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/links [post]
func (h *LinkHandler) CreateLink(c fiber.Ctx) error {
	var req dto.CreateLinkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "VALIDATION_ERROR", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	result, err := h.linkFlow.CreateLink(createRequestContext(c, "/api/links"), &req)
	if err != nil {
		switch {
		case businessflow.IsNotFound(err):
			return h.ErrorResponse(c, fiber.StatusNotFound, err.Error(), "NOT_FOUND", nil)
		case businessflow.IsCampaignEnded(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign has already ended", "BAD_REQUEST", nil)
		case businessflow.IsOfferProductMismatch(err):
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Offer does not belong to the product", "BAD_REQUEST", nil)
		case businessflow.IsOfferDuplicateListing(err):
			return h.ErrorResponse(c, fiber.StatusConflict, "Offer duplicates another listing of the product", "DUPLICATE", nil)
		case businessflow.IsDuplicateLink(err):
			return h.ErrorResponse(c, fiber.StatusConflict, "An identical link already exists", "DUPLICATE", nil)
		}
		log.Println("Link creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Link creation failed", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Link created successfully", result)
}
