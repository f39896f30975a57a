package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/middleware"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

// DashboardHandler serves the supervisor dashboard aggregates and the audit
// trail.
type DashboardHandler struct {
	stats   *repository.StatsRepository
	audit   *repository.AuditRepository
	monitor *security.SecurityMonitor
	logger  *security.Logger
}

func NewDashboardHandler(
	stats *repository.StatsRepository,
	audit *repository.AuditRepository,
	monitor *security.SecurityMonitor,
	logger *security.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		stats:   stats,
		audit:   audit,
		monitor: monitor,
		logger:  logger,
	}
}

// CompanyStats handles GET /api/dashboard/stats. Supervisor-only route
// guard.
func (h *DashboardHandler) CompanyStats(c *fiber.Ctx) error {
	stats, err := h.stats.CompanyStats(c.Context(), middleware.CompanyCode(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(stats)
}

// AuditTrail handles GET /api/dashboard/audit. Employer-only route guard.
func (h *DashboardHandler) AuditTrail(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	var (
		entries []models.AuditLog
		err     error
	)
	if actor := c.Query("actor"); actor != "" {
		entries, err = h.audit.ListByActor(c.Context(), actor, limit)
	} else {
		entries, err = h.audit.ListRecent(c.Context(), limit)
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.monitor.MonitorLargeExport(middleware.Requester(c).Matricola, len(entries), map[string]string{"export": "audit"})
	return c.JSON(entries)
}
