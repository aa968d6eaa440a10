package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The failure envelope carries the readable message both at the top level
// and inside error, so clients reading error.message are never left empty.
func TestErrorResponseEnvelope(t *testing.T) {
	app := fiber.New()
	h := &LinkHandler{}
	app.Get("/boom", func(c fiber.Ctx) error {
		return h.ErrorResponse(c, fiber.StatusConflict, "An identical link already exists", "DUPLICATE", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))

	assert.False(t, envelope.Success)
	assert.Equal(t, "DUPLICATE", envelope.Error.Code)
	assert.Equal(t, "An identical link already exists", envelope.Error.Message)
	assert.Equal(t, envelope.Message, envelope.Error.Message)
}
