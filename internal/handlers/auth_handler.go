package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/services"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	auth    *services.AuthService
	lockout *security.AccountLockout
	monitor *security.SecurityMonitor
	logger  *security.Logger
}

func NewAuthHandler(
	auth *services.AuthService,
	lockout *security.AccountLockout,
	monitor *security.SecurityMonitor,
	logger *security.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		lockout: lockout,
		monitor: monitor,
		logger:  logger,
	}
}

// RegisterCompany handles POST /api/auth/register/company.
func (h *AuthHandler) RegisterCompany(c *fiber.Ctx) error {
	var req models.RegisterCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	employer, err := h.auth.RegisterCompany(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(employer)
}

// RegisterEmployee handles POST /api/auth/register/employee.
func (h *AuthHandler) RegisterEmployee(c *fiber.Ctx) error {
	var req models.RegisterEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	employee, err := h.auth.RegisterEmployee(c.Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(employee)
}

// Login handles POST /api/auth/login. Failed attempts feed the per-account
// lockout and the per-IP monitor; a locked account is rejected before the
// password is checked.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	ip := c.IP()
	ua := c.Get(fiber.HeaderUserAgent)

	if req.Matricola != "" && h.lockout.IsLocked(req.Matricola) {
		h.logger.SecurityEvent(security.EventAccountLocked, &req.Matricola, ip, ua, map[string]interface{}{
			"remaining": h.lockout.LockoutTimeRemaining(req.Matricola).String(),
		})
		return fiber.NewError(fiber.StatusTooManyRequests, "account temporarily locked")
	}

	token, employee, err := h.auth.Login(c.Context(), req.Matricola, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.lockout.RecordFailedAttempt(req.Matricola)
			h.monitor.MonitorLoginFailure(ip)
			h.logger.SecurityEvent(security.EventLoginFailure, &req.Matricola, ip, ua, nil)
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return respondError(c, h.logger, err)
	}

	h.lockout.ResetAttempts(req.Matricola)
	h.monitor.ResetCounters()
	h.logger.SecurityEvent(security.EventLoginSuccess, &employee.Matricola, ip, ua, nil)

	return c.JSON(fiber.Map{
		"token":    token,
		"employee": employee,
	})
}
