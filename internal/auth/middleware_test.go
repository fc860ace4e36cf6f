package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

func newProtectedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message})
		},
	})
	mw := NewAuthMiddleware(tm, zap.NewNop())
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("unauthorized")
		}
		return c.JSON(fiber.Map{"id": identity.ID, "role": identity.Role, "name": identity.Name})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	clock := newClock()
	tm := NewTokenManager("secret", 24*time.Hour).WithClock(clock.Now)
	app := newProtectedApp(tm)
	token, _, err := tm.GenerateToken(alice)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"missing header", "", http.StatusUnauthorized, "unauthorized"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "unauthorized"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "unauthorized"},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, "invalid token"},
		{"valid", "Bearer " + token, http.StatusOK, ""},
		{"case-insensitive scheme", "bearer " + token, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body["message"])
			} else {
				assert.Equal(t, "alice-id", body["id"])
				assert.Equal(t, "client", body["role"])
				assert.Equal(t, "Alice", body["name"])
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	clock := newClock()
	tm := NewTokenManager("secret", 24*time.Hour).WithClock(clock.Now)
	app := newProtectedApp(tm)
	token, _, err := tm.GenerateToken(alice)
	require.NoError(t, err)

	clock.Advance(24*time.Hour + time.Second)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid token", body["message"])
}
