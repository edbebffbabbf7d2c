package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"beerservice/internal/log"
	"beerservice/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token exchanges credentials for a bearer token. Credentials come from a Basic
// Authorization header or, failing that, a JSON body.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	user, pass, ok := basicCredentials(c)
	if !ok {
		var in tokenRequest
		if err := c.BodyParser(&in); err == nil {
			user, pass = in.Username, in.Password
		}
	}
	if user == "" || pass == "" {
		log.Security(c, "auth.token.fail", map[string]any{"reason": "missing_credentials"})
		return unauthorized(c)
	}

	u, err := h.Auth.Authenticate(c.UserContext(), user, pass)
	if err != nil {
		log.Security(c, "auth.token.fail", map[string]any{"username": user})
		return unauthorized(c)
	}
	tok, exp, err := h.Auth.IssueToken(u)
	if err != nil {
		return err
	}
	c.Locals(log.UserKey, u.Username)
	log.Audit(c, "auth.token.issue", map[string]any{"username": u.Username, "role": u.Role})
	return c.JSON(fiber.Map{
		"accessToken": tok,
		"tokenType":   "Bearer",
		"expiresAt":   exp.UTC().Format(time.RFC3339),
	})
}
