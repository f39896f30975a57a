package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/services"
)

func newTestAuthService() *services.AuthService {
	return services.NewAuthService(
		repository.NewEmployeeRepository(),
		repository.NewCompanyRepository(),
		security.NewValidationService(security.DefaultSecurityConfig()),
		security.NewLogger(),
		"test-secret",
		time.Hour,
		bcrypt.MinCost,
	)
}

func signTestToken(t *testing.T, matricola string, role models.Role) string {
	t.Helper()

	claims := services.Claims{
		Matricola:   matricola,
		Role:        string(role),
		CompanyCode: "ACME-01",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   matricola,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestProtectedAcceptsValidTokenAndSetsLocals(t *testing.T) {
	auth := newTestAuthService()
	logger := security.NewLogger()

	app := fiber.New()
	app.Get("/secure", Protected(auth, logger), func(c *fiber.Ctx) error {
		req := Requester(c)
		return c.JSON(fiber.Map{
			"matricola": req.Matricola,
			"role":      string(req.Role),
			"company":   CompanyCode(c),
		})
	})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signTestToken(t, "EMP001", models.RoleEmployee))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "EMP001", body["matricola"])
	assert.Equal(t, "Dipendente", body["role"])
	assert.Equal(t, "ACME-01", body["company"])
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	auth := newTestAuthService()
	logger := security.NewLogger()

	app := fiber.New()
	app.Get("/secure", Protected(auth, logger), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/secure", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRejectsGarbageToken(t *testing.T) {
	auth := newTestAuthService()
	logger := security.NewLogger()

	app := fiber.New()
	app.Get("/secure", Protected(auth, logger), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	logger := security.NewLogger()

	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			c.Locals(LocalMatricola, "EMP001")
			c.Locals(LocalRole, models.RoleEmployee)
			return c.Next()
		},
		RequireRoles(logger, models.RoleMaintainer),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	logger := security.NewLogger()

	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			c.Locals(LocalMatricola, "MAN01")
			c.Locals(LocalRole, models.RoleMaintainer)
			return c.Next()
		},
		RequireRoles(logger, models.RoleMaintainer),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSecureHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecureHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestInputValidationBlocksInjectionPayloads(t *testing.T) {
	logger := security.NewLogger()

	app := fiber.New()
	app.Use(InputValidation(logger))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		name string
		body string
		want int
	}{
		{"clean body", `{"title":"Scala rotta"}`, fiber.StatusOK},
		{"sql injection", `{"title":"' OR '1'='1"}`, fiber.StatusBadRequest},
		{"xss", `{"title":"<script>alert(1)</script>"}`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := security.NewLogger()
	limiter := security.NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	app := fiber.New()
	app.Get("/", RateLimit(limiter, logger), func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

// The server installs recover.New() ahead of the rest of the pipeline; a
// panicking handler must surface as a 500 instead of unwinding into the
// serve loop, and the app must keep serving afterwards.
func TestPanickingHandlerIsRecovered(t *testing.T) {
	logger := security.NewLogger()

	app := fiber.New()
	app.Use(fiberrecover.New())
	app.Use(SecureHeaders())
	app.Use(RequestLogger(logger))
	app.Use(InputValidation(logger))
	app.Get("/boom", func(c *fiber.Ctx) error { panic("handler bug") })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
