package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie writes and clears the http-only cookie read by the route gate.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set stores token in the cookie for maxAge.
func (s SessionCookie) Set(c *fiber.Ctx, token string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		Secure:   s.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Clear empties the cookie and expires it immediately. Bearer tokens already held
// by clients remain valid until they expire. fasthttp never writes Max-Age=0, so
// expiry is carried by a past Expires date instead.
func (s SessionCookie) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   s.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
