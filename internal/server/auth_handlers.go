package server

import (
	"strings"

	"newshub/internal/middleware"
	"newshub/internal/models"
	"newshub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/v1/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
		DeviceID    string `json:"device_id"`
		PushToken   string `json:"push_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, pair, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Username:    strings.TrimSpace(req.Username),
		Email:       strings.TrimSpace(req.Email),
		Password:    req.Password,
		DisplayName: strings.TrimSpace(req.DisplayName),
		DeviceID:    req.DeviceID,
		PushToken:   req.PushToken,
	})
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusCreated, "Account created", fiber.Map{
		"user":  user.Public(),
		"token": pair,
	})
}

// Login handles POST /api/v1/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		DeviceID  string `json:"device_id"`
		PushToken string `json:"push_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, pair, err := s.authService.Login(c.UserContext(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return fail(c, err)
	}

	// best-effort device registration for push delivery
	if req.DeviceID != "" || req.PushToken != "" {
		if err := s.authService.UpdateDevice(c.UserContext(), user.ID, req.DeviceID, req.PushToken); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "device registration failed", "error", err)
		}
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user.Public(),
		"token": pair,
	})
}

// Refresh handles POST /api/v1/auth/refresh
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Refresh token is required"))
	}

	pair, err := s.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Token refreshed", pair)
}

// Logout handles POST /api/v1/auth/logout. It succeeds regardless of token
// state so mobile clients can always clear their session.
func (s *Server) Logout(c *fiber.Ctx) error {
	token := ""
	authHeader := c.Get("Authorization")
	if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
		token = parts[1]
	}

	s.authService.Logout(c.UserContext(), token)

	return models.RespondSuccess(c, fiber.StatusOK, "Logged out", nil)
}

// GetProfile handles GET /api/v1/auth/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.authService.Profile(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return models.RespondSuccess(c, fiber.StatusOK, "Profile retrieved", user.Public())
}
