package http

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

// CSRFCookieName holds the session-bound token the header must echo.
const CSRFCookieName = "csrf_token"

// CSRFHeaderName is the header state-changing admin calls must send.
const CSRFHeaderName = "X-CSRF-Token"

// CSRF implements the double-submit cookie pattern: a token is issued in
// both the response body and a cookie, and state-changing requests must
// present the same value in the header and the cookie.
type CSRF struct {
	secure bool
}

// NewCSRF constructs the handler pair. secure marks the cookie HTTPS-only.
func NewCSRF(secure bool) *CSRF {
	return &CSRF{secure: secure}
}

// Issue GET /api/csrf-token.
func (h *CSRF) Issue(c *fiber.Ctx) error {
	token := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"csrfToken": token})
}

// Protect rejects state-changing requests whose header token does not match
// the cookie.
func (h *CSRF) Protect(c *fiber.Ctx) error {
	header := c.Get(CSRFHeaderName)
	cookie := c.Cookies(CSRFCookieName)
	if header == "" || cookie == "" ||
		subtle.ConstantTimeCompare([]byte(header), []byte(cookie)) != 1 {
		return apperrors.NewForbidden("invalid csrf token")
	}
	return c.Next()
}
