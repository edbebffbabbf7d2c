package handlers

import (
	"encoding/base64"
	"regexp"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"beerservice/internal/domain"
	"beerservice/internal/log"
	"beerservice/internal/services"
)

// RoleKey is the Locals key holding the authenticated role.
const RoleKey = "role"

// Rule grants access to paths matching Pattern. A public rule needs no
// principal; otherwise any authenticated principal passes when Roles is empty.
type Rule struct {
	Pattern *regexp.Regexp
	Public  bool
	Roles   []string
}

// DefaultPolicy is evaluated top to bottom; the first matching rule decides.
// Paths are lowercased before matching since routing ignores case.
func DefaultPolicy() []Rule {
	return []Rule{
		{Pattern: regexp.MustCompile(`^/api/v[^/]/auth(/.*)?$`), Public: true},
		{Pattern: regexp.MustCompile(`^/api/v[^/]/customer(/.*)?$`), Roles: []string{domain.RoleAdmin, domain.RoleUser}},
		{Pattern: regexp.MustCompile(`^/api/v[^/]/beer(/.*)?$`), Public: true},
		{Pattern: regexp.MustCompile(`^/actuator/(health|info|metrics)(/.*)?$`), Roles: []string{domain.RoleAdmin, domain.RoleActuator}},
		{Pattern: regexp.MustCompile(`^/actuator(/.*)?$`), Roles: []string{domain.RoleAdmin}},
		{Pattern: regexp.MustCompile(`.*`)},
	}
}

func match(rules []Rule, path string) (Rule, bool) {
	for _, r := range rules {
		if r.Pattern.MatchString(path) {
			return r, true
		}
	}
	return Rule{}, false
}

// Authorize resolves the caller from Basic or Bearer credentials and applies
// the first matching rule. 401 when a principal is needed but missing or wrong,
// 403 when the principal lacks the role.
func Authorize(auth *services.AuthService, rules []Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule, ok := match(rules, strings.ToLower(c.Path()))
		if !ok || rule.Public {
			return c.Next()
		}

		u, reason := principal(c, auth)
		if u == nil {
			c.Status(fiber.StatusUnauthorized)
			log.Security(c, "auth.fail", map[string]any{"reason": reason})
			return unauthorized(c)
		}
		c.Locals(log.UserKey, u.Username)
		c.Locals(RoleKey, u.Role)

		if len(rule.Roles) > 0 && !slices.Contains(rule.Roles, u.Role) {
			c.Status(fiber.StatusForbidden)
			log.Security(c, "access.denied", map[string]any{"role": u.Role, "required": rule.Roles})
			return c.JSON(fiber.Map{"error": "forbidden"})
		}
		return c.Next()
	}
}

func principal(c *fiber.Ctx, auth *services.AuthService) (*domain.User, string) {
	h := c.Get(fiber.HeaderAuthorization)
	switch {
	case h == "":
		return nil, "missing_credentials"
	case strings.HasPrefix(h, "Bearer "):
		u, err := auth.ParseToken(strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")))
		if err != nil {
			return nil, "bad_token"
		}
		return u, ""
	}
	user, pass, ok := basicCredentials(c)
	if !ok {
		return nil, "unsupported_scheme"
	}
	u, err := auth.Authenticate(c.UserContext(), user, pass)
	if err != nil {
		return nil, "bad_credentials"
	}
	return u, ""
}

func basicCredentials(c *fiber.Ctx) (string, string, bool) {
	h := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(h, "Basic ") {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(strings.TrimPrefix(h, "Basic ")))
	if err != nil {
		return "", "", false
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	return user, pass, ok
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="beerservice"`)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}
