// Package middleware wires authentication, authorization, and the security
// controls (rate limiting, input screening, headers) into the Fiber request
// pipeline.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/services"
)

// Locals keys set by Protected and read by handlers.
const (
	LocalMatricola   = "matricola"
	LocalRole        = "role"
	LocalCompanyCode = "companyCode"
)

// Protected returns a middleware that requires a valid bearer token and
// stores the caller's identity in the request locals.
func Protected(auth *services.AuthService, logger *security.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			logger.SecurityEvent(security.EventUnauthorizedAccess, nil, c.IP(), c.Get(fiber.HeaderUserAgent), map[string]interface{}{
				"path":   c.Path(),
				"reason": "invalid token",
			})
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		role, ok := models.ParseRole(claims.Role)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(LocalMatricola, claims.Matricola)
		c.Locals(LocalRole, role)
		c.Locals(LocalCompanyCode, claims.CompanyCode)
		return c.Next()
	}
}

// Requester extracts the authenticated caller from the request locals. Only
// valid behind Protected.
func Requester(c *fiber.Ctx) services.Requester {
	req := services.Requester{}
	if m, ok := c.Locals(LocalMatricola).(string); ok {
		req.Matricola = m
	}
	if r, ok := c.Locals(LocalRole).(models.Role); ok {
		req.Role = r
	}
	return req
}

// CompanyCode extracts the caller's company from the request locals.
func CompanyCode(c *fiber.Ctx) string {
	code, _ := c.Locals(LocalCompanyCode).(string)
	return code
}

// RequireRoles returns a middleware that rejects callers whose role is not
// in the allowed set. Must run behind Protected.
func RequireRoles(logger *security.Logger, allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := Requester(c)
		for _, role := range allowed {
			if req.Role == role {
				return c.Next()
			}
		}

		logger.SecurityEvent(security.EventUnauthorizedAccess, &req.Matricola, c.IP(), c.Get(fiber.HeaderUserAgent), map[string]interface{}{
			"path": c.Path(),
			"role": string(req.Role),
		})
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}

// SupervisorOnly restricts a route to employers and safety officers.
func SupervisorOnly(logger *security.Logger) fiber.Handler {
	return RequireRoles(logger, models.RoleEmployer, models.RoleSafetyOfficer)
}

// MaintainerOnly restricts a route to maintainers. This guard is the only
// authorization applied to the incident and resource status paths.
func MaintainerOnly(logger *security.Logger) fiber.Handler {
	return RequireRoles(logger, models.RoleMaintainer)
}

// EmployerOnly restricts a route to employers.
func EmployerOnly(logger *security.Logger) fiber.Handler {
	return RequireRoles(logger, models.RoleEmployer)
}
