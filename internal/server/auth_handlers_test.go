package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"newshub/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestRegisterEndpoint(t *testing.T) {
	_, app, _ := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "",
			jsonBody(t, map[string]string{
				"username": "new_reader",
				"email":    "new_reader@example.com",
				"password": "SecurePass12!@",
			}))
		require.Equal(t, http.StatusCreated, status)
		assert.True(t, envelope.Success)

		data := dataMap(t, envelope)
		user, ok := data["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "new_reader", user["username"])
		assert.NotContains(t, user, "password_hash")

		token, ok := data["token"].(map[string]any)
		require.True(t, ok)
		assert.NotEmpty(t, token["access_token"])
		assert.NotEmpty(t, token["refresh_token"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "",
			jsonBody(t, map[string]string{
				"username": "other_reader",
				"email":    "new_reader@example.com",
				"password": "SecurePass12!@",
			}))
		assert.Equal(t, http.StatusBadRequest, status, "duplicate account is a domain validation failure")
		assert.Contains(t, envelope.Errors, "CONFLICT")
	})

	t.Run("weak password", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "",
			jsonBody(t, map[string]string{
				"username": "weak_reader",
				"email":    "weak@example.com",
				"password": "short",
			}))
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestLoginEndpoint(t *testing.T) {
	s, app, _ := newTestServer(t)
	registerUser(t, s, "login_reader")

	t.Run("success by username", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "",
			jsonBody(t, map[string]string{
				"username": "login_reader",
				"password": "SecurePass12!@",
			}))
		require.Equal(t, http.StatusOK, status)
		data := dataMap(t, envelope)
		token, ok := data["token"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "bearer", token["token_type"])
	})

	t.Run("success by email", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "",
			jsonBody(t, map[string]string{
				"username": "login_reader@example.com",
				"password": "SecurePass12!@",
			}))
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("wrong password", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "",
			jsonBody(t, map[string]string{
				"username": "login_reader",
				"password": "WrongPass12!@",
			}))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, envelope.Success)
	})
}

func TestRefreshEndpoint(t *testing.T) {
	s, app, _ := newTestServer(t)

	_, pair, err := s.authService.Register(t.Context(), service.RegisterInput{
		Username: "refresh_reader",
		Email:    "refresh_reader@example.com",
		Password: "SecurePass12!@",
	})
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "",
			jsonBody(t, map[string]string{"refresh_token": pair.RefreshToken}))
		require.Equal(t, http.StatusOK, status)
		data := dataMap(t, envelope)
		assert.NotEmpty(t, data["access_token"])
	})

	t.Run("access token rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "",
			jsonBody(t, map[string]string{"refresh_token": pair.AccessToken}))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("missing token", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "",
			jsonBody(t, map[string]string{}))
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestLogoutEndpoint_AlwaysSucceeds(t *testing.T) {
	s, app, _ := newTestServer(t)
	_, token := registerUser(t, s, "logout_reader")

	t.Run("with token", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, envelope.Success)
	})

	t.Run("without token", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, envelope.Success)
	})

	t.Run("garbage token", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", "garbage", nil)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestProfileEndpoint(t *testing.T) {
	s, app, _ := newTestServer(t)
	_, token := registerUser(t, s, "profile_reader")

	t.Run("authenticated", func(t *testing.T) {
		status, envelope := doJSON(t, app, http.MethodGet, "/api/v1/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, status)
		data := dataMap(t, envelope)
		assert.Equal(t, "profile_reader", data["username"])
	})

	t.Run("anonymous", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, "/api/v1/auth/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
