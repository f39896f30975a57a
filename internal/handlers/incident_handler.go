package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/middleware"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/services"
)

// IncidentHandler serves the incident report workflow and its attachments.
type IncidentHandler struct {
	incidents   *services.IncidentService
	attachments *repository.AttachmentRepository
	audit       *repository.AuditRepository
	validator   *security.ValidationService
	logger      *security.Logger
}

func NewIncidentHandler(
	incidents *services.IncidentService,
	attachments *repository.AttachmentRepository,
	audit *repository.AuditRepository,
	validator *security.ValidationService,
	logger *security.Logger,
) *IncidentHandler {
	return &IncidentHandler{
		incidents:   incidents,
		attachments: attachments,
		audit:       audit,
		validator:   validator,
		logger:      logger,
	}
}

// Create handles POST /api/incidents.
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	var req models.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	inc, err := h.incidents.CreateIncident(c.Context(), middleware.Requester(c), middleware.CompanyCode(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inc)
}

// Get handles GET /api/incidents/:id.
func (h *IncidentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	inc, err := h.incidents.GetIncident(c.Context(), middleware.Requester(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(inc)
}

// ListCompany handles GET /api/incidents with optional status, priority,
// reporter, and resource query filters. Supervisor-only.
func (h *IncidentHandler) ListCompany(c *fiber.Ctx) error {
	filter := repository.IncidentFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Reporter: c.Query("reporter"),
	}
	if raw := c.Query("resource"); raw != "" {
		resourceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respondError(c, h.logger, apperrors.InvalidValue("resource", "expected a decimal integer id"))
		}
		filter.Resource = &resourceID
	}

	incidents, err := h.incidents.ListCompanyIncidents(c.Context(), middleware.Requester(c), middleware.CompanyCode(c), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(incidents)
}

// ListMine handles GET /api/incidents/mine.
func (h *IncidentHandler) ListMine(c *fiber.Ctx) error {
	incidents, err := h.incidents.ListOwnIncidents(c.Context(), middleware.Requester(c).Matricola)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(incidents)
}

// UpdateStatus handles PATCH /api/incidents/:id/status. The route is behind
// the maintainer guard.
func (h *IncidentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	requester := middleware.Requester(c)
	view, err := h.incidents.UpdateIncidentStatus(c.Context(), requester, id, req.Status)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	objectID := strconv.FormatInt(id, 10)
	if err := h.audit.Log(c.Context(), &models.AuditLog{
		ActorMatricola: &requester.Matricola,
		Action:         "incident_status_change",
		ObjectType:     "incident",
		ObjectID:       &objectID,
		IPAddress:      c.IP(),
		UserAgent:      c.Get(fiber.HeaderUserAgent),
	}); err != nil {
		h.logger.Error("audit write failed", err)
	}

	return c.JSON(view)
}

// UploadAttachment handles POST /api/incidents/:id/attachments. The body is
// stored as-is; only its size is validated.
func (h *IncidentHandler) UploadAttachment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	// Confirm the incident exists and is readable by the caller before
	// accepting bytes for it.
	if _, err := h.incidents.GetIncident(c.Context(), middleware.Requester(c), id); err != nil {
		return respondError(c, h.logger, err)
	}

	body := c.Body()
	if err := h.validator.ValidateAttachmentSize(len(body)); err != nil {
		return respondError(c, h.logger, apperrors.InvalidValue("attachment", err.Error()))
	}

	filename := c.Get("X-Filename")
	if filename == "" {
		return respondError(c, h.logger, apperrors.MissingField("X-Filename"))
	}

	content := make([]byte, len(body))
	copy(content, body)

	attachment := models.Attachment{
		IncidentID:  &id,
		Filename:    filename,
		ContentType: c.Get(fiber.HeaderContentType, "application/octet-stream"),
		Content:     content,
		UploadedBy:  middleware.Requester(c).Matricola,
	}
	if err := h.attachments.Create(c.Context(), &attachment); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(attachment)
}

// ListAttachments handles GET /api/incidents/:id/attachments.
func (h *IncidentHandler) ListAttachments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if _, err := h.incidents.GetIncident(c.Context(), middleware.Requester(c), id); err != nil {
		return respondError(c, h.logger, err)
	}

	attachments, err := h.attachments.ListByIncident(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(attachments)
}

// DownloadAttachment handles GET /api/attachments/:id.
func (h *IncidentHandler) DownloadAttachment(c *fiber.Ctx) error {
	attachment, err := h.attachments.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return respondError(c, h.logger, apperrors.NotFound("attachment not found"))
		}
		return respondError(c, h.logger, err)
	}

	if attachment.IncidentID != nil {
		if _, err := h.incidents.GetIncident(c.Context(), middleware.Requester(c), *attachment.IncidentID); err != nil {
			return respondError(c, h.logger, err)
		}
	}

	c.Set(fiber.HeaderContentType, attachment.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+attachment.Filename+`"`)
	return c.Send(attachment.Content)
}
