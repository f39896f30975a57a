package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/middleware"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

// AnnouncementHandler serves company-scoped announcements.
type AnnouncementHandler struct {
	announcements *repository.AnnouncementRepository
	validator     *security.ValidationService
	logger        *security.Logger
}

func NewAnnouncementHandler(
	announcements *repository.AnnouncementRepository,
	validator *security.ValidationService,
	logger *security.Logger,
) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcements: announcements,
		validator:     validator,
		logger:        logger,
	}
}

// Create handles POST /api/announcements. Supervisor-only route guard.
func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req models.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Title) == "" {
		return respondError(c, h.logger, apperrors.MissingField("title"))
	}
	if err := h.validator.ValidateTitle(req.Title); err != nil {
		return respondError(c, h.logger, apperrors.InvalidValue("title", err.Error()))
	}
	if err := h.validator.ValidateDescription(req.Body); err != nil {
		return respondError(c, h.logger, apperrors.InvalidValue("body", err.Error()))
	}

	announcement := models.Announcement{
		CompanyCode:     middleware.CompanyCode(c),
		AuthorMatricola: middleware.Requester(c).Matricola,
		Title:           req.Title,
		Body:            req.Body,
		Pinned:          req.Pinned,
	}
	if err := h.announcements.Create(c.Context(), &announcement); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(announcement)
}

// List handles GET /api/announcements.
func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	announcements, err := h.announcements.ListByCompany(c.Context(), middleware.CompanyCode(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(announcements)
}

// Delete handles DELETE /api/announcements/:id. Supervisor-only route
// guard; the delete is scoped to the caller's company.
func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	rows, err := h.announcements.Delete(c.Context(), id, middleware.CompanyCode(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if rows == 0 {
		return respondError(c, h.logger, apperrors.NotFound("announcement not found"))
	}

	return c.SendStatus(fiber.StatusNoContent)
}
