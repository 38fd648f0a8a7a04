package models

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the envelope every endpoint returns. Mobile clients key
// off Success and Code rather than the HTTP status alone. Timestamp is
// unix seconds.
type APIResponse struct {
	Success   bool        `json:"success"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func envelope(status int, success bool, message string, data interface{}, errs []string) APIResponse {
	return APIResponse{
		Success:   success,
		Code:      status,
		Message:   message,
		Data:      data,
		Errors:    errs,
		Timestamp: time.Now().Unix(),
	}
}

// RespondSuccess writes a success envelope with the given status and payload.
func RespondSuccess(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(envelope(status, true, message, data, nil))
}

// RespondWithError writes an error envelope. Only the AppError code and
// message reach the client; the wrapped cause stays server-side.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var message string
	var errs []string

	if appErr, ok := err.(*AppError); ok {
		message = appErr.Message
		errs = []string{appErr.Code}
	} else {
		message = err.Error()
	}

	return c.Status(status).JSON(envelope(status, false, message, nil, errs))
}
