package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve runs the handler once and returns the raw body.
func serve(t *testing.T, handler fiber.Handler) []byte {
	t.Helper()
	app := fiber.New()
	app.Get("/check", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/check", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return body
}

func TestEnvelope_TimestampIsUnixSeconds(t *testing.T) {
	body := serve(t, func(c *fiber.Ctx) error {
		return RespondSuccess(c, fiber.StatusOK, "ok", fiber.Map{"k": "v"})
	})

	var envelope APIResponse
	require.NoError(t, json.Unmarshal(body, &envelope), "timestamp must decode as an integer")

	now := time.Now().Unix()
	assert.GreaterOrEqual(t, envelope.Timestamp, now-5)
	assert.LessOrEqual(t, envelope.Timestamp, now+5)
}

func TestRespondWithError_InternalCauseStaysServerSide(t *testing.T) {
	cause := errors.New(`pq: password authentication failed for user "admin"`)
	body := serve(t, func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError, NewInternalError(cause))
	})

	assert.NotContains(t, string(body), "pq:", "store error text must not reach the client")

	var envelope APIResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Internal server error", envelope.Message)
	assert.Equal(t, []string{"INTERNAL_ERROR"}, envelope.Errors)
}
