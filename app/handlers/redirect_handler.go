package handlers

import (
	"log"
	"regexp"

	"github.com/gofiber/fiber/v3"

	"github.com/prasit9/affilink/app/dto"
	"github.com/prasit9/affilink/app/middleware"
	businessflow "github.com/prasit9/affilink/business_flow"
	"github.com/prasit9/affilink/utils"
)

// RedirectHandlerInterface defines the contract for public short link visits
type RedirectHandlerInterface interface {
	Visit(c fiber.Ctx) error
}

// RedirectHandler handles public short link redirects
type RedirectHandler struct {
	redirectFlow businessflow.RedirectFlow
}

// NewRedirectHandler creates a new redirect handler
func NewRedirectHandler(redirectFlow businessflow.RedirectFlow) RedirectHandlerInterface {
	return &RedirectHandler{redirectFlow: redirectFlow}
}

var shortCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8}$`)

// Visit resolves a short code, records the click, and redirects to the target URL
// @Summary Visit Short Link
// @Tags Redirect
// @Produce json
// @Param shortCode path string true "Short code"
// @Success 302 {string} string "Redirect"
// @Failure 400 {object} dto.APIResponse "Malformed short code"
// @Failure 404 {object} dto.APIResponse "Unknown short code"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /go/{shortCode} [get]
func (h *RedirectHandler) Visit(c fiber.Ctx) error {
	shortCode := c.Params("shortCode")
	if !shortCodePattern.MatchString(shortCode) {
		middleware.ObserveRedirect("invalid")
		return c.Status(fiber.StatusBadRequest).JSON(dto.APIResponse{
			Success: false,
			Message: "Malformed short code",
			Error:   dto.ErrorDetail{Code: "VALIDATION_ERROR", Message: "Malformed short code"},
		})
	}

	meta := businessflow.NewClickMetadata(
		utils.ClientIP(c.Get("X-Forwarded-For"), c.IP()),
		c.Get("Referer"),
		c.Get("User-Agent"),
	)

	target, err := h.redirectFlow.Visit(createRequestContext(c, "/go/"+shortCode), shortCode, meta)
	if err != nil {
		if businessflow.IsLinkNotFound(err) {
			middleware.ObserveRedirect("not_found")
			return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
				Success: false,
				Message: "Short link not found",
				Error:   dto.ErrorDetail{Code: "NOT_FOUND", Message: "Short link not found"},
			})
		}
		log.Println("Short link visit failed", err)
		middleware.ObserveRedirect("error")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Internal server error",
			Error:   dto.ErrorDetail{Code: "INTERNAL_ERROR", Message: "Internal server error"},
		})
	}

	middleware.ObserveRedirect("found")
	return c.Redirect().Status(fiber.StatusFound).To(target)
}
