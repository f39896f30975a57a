package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/middleware"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/services"
)

// EmployeeHandler serves profile reads and updates plus the employer-only
// role path.
type EmployeeHandler struct {
	employees *repository.EmployeeRepository
	audit     *repository.AuditRepository
	logger    *security.Logger
}

func NewEmployeeHandler(
	employees *repository.EmployeeRepository,
	audit *repository.AuditRepository,
	logger *security.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		audit:     audit,
		logger:    logger,
	}
}

// GetProfile handles GET /api/employees/:matricola. Owner or supervisor.
func (h *EmployeeHandler) GetProfile(c *fiber.Ctx) error {
	target := c.Params("matricola")
	requester := middleware.Requester(c)

	if err := services.AuthorizeOwnerOrSupervisor(requester.Matricola, requester.Role, target); err != nil {
		return respondError(c, h.logger, err)
	}

	employee, err := h.employees.FindByMatricola(c.Context(), target)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, h.logger, apperrors.NotFound("employee not found"))
		}
		return respondError(c, h.logger, err)
	}
	return c.JSON(employee)
}

// UpdateProfile handles PATCH /api/employees/:matricola. Owner or
// supervisor; only the display name is mutable here.
func (h *EmployeeHandler) UpdateProfile(c *fiber.Ctx) error {
	target := c.Params("matricola")
	requester := middleware.Requester(c)

	if err := services.AuthorizeOwnerOrSupervisor(requester.Matricola, requester.Role, target); err != nil {
		return respondError(c, h.logger, err)
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return respondError(c, h.logger, apperrors.MissingField("name"))
	}

	rows, err := h.employees.UpdateProfile(c.Context(), target, req.Name)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if rows == 0 {
		return respondError(c, h.logger, apperrors.NotFound("employee not found"))
	}

	return c.JSON(fiber.Map{"matricola": target, "name": req.Name})
}

// List handles GET /api/employees. Supervisor-only route guard.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.ListByCompany(c.Context(), middleware.CompanyCode(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(employees)
}

// UpdateRole handles PATCH /api/employees/:matricola/role. Employer-only
// route guard; the role must be in the closed set.
func (h *EmployeeHandler) UpdateRole(c *fiber.Ctx) error {
	target := c.Params("matricola")

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Role) == "" {
		return respondError(c, h.logger, apperrors.MissingField("role"))
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		return respondError(c, h.logger, apperrors.InvalidValue("role", fmt.Sprintf("unknown role %q", req.Role)))
	}

	rows, err := h.employees.UpdateRole(c.Context(), target, role)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if rows == 0 {
		return respondError(c, h.logger, apperrors.NotFound("employee not found"))
	}

	requester := middleware.Requester(c)
	h.logger.SecurityEvent(security.EventRoleChange, &requester.Matricola, c.IP(), c.Get(fiber.HeaderUserAgent), map[string]interface{}{
		"target": target,
		"role":   string(role),
	})

	if err := h.audit.Log(c.Context(), &models.AuditLog{
		ActorMatricola: &requester.Matricola,
		Action:         "role_change",
		ObjectType:     "employee",
		ObjectID:       &target,
		IPAddress:      c.IP(),
		UserAgent:      c.Get(fiber.HeaderUserAgent),
	}); err != nil {
		h.logger.Error("audit write failed", err)
	}

	return c.JSON(fiber.Map{"matricola": target, "role": role})
}
