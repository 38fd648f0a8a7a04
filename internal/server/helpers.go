package server

import (
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"newshub/internal/middleware"
	"newshub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// PageQuery holds parsed page/size query parameters.
type PageQuery struct {
	Page int
	Size int
}

// parsePageQuery extracts page and size query parameters. Out-of-range
// values fall back to sane defaults; the service layer enforces the final
// maximum.
func parsePageQuery(c *fiber.Ctx, defaultSize int) PageQuery {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	size := c.QueryInt("size", defaultSize)
	if size <= 0 {
		size = defaultSize
	}
	return PageQuery{Page: page, Size: size}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUserID returns the authenticated user ID, or 0 for anonymous
// callers on OptionalAuth routes.
func currentUserID(c *fiber.Ctx) uint {
	if userID, ok := c.Locals("userID").(uint); ok {
		return userID
	}
	return 0
}

// statusForError maps an application error to its HTTP status. Duplicate
// account conflicts are domain validation failures to mobile clients, so
// CONFLICT maps to 400 rather than 409.
func statusForError(err error) int {
	appErr := models.AsAppError(err)
	switch appErr.Code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR", "CONFLICT":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the error envelope with the status derived from the error.
// Internal causes are logged here; the envelope never carries them.
func fail(c *fiber.Ctx, err error) error {
	appErr := models.AsAppError(err)
	if appErr.Code == "INTERNAL_ERROR" && appErr.Err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed on internal error",
			slog.String("path", c.Path()),
			slog.String("error", appErr.Err.Error()),
		)
	}
	return models.RespondWithError(c, statusForError(err), appErr)
}
