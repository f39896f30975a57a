package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/middleware"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

// ResourceHandler serves equipment registration and the maintainer status
// path.
type ResourceHandler struct {
	resources   *repository.ResourceRepository
	attachments *repository.AttachmentRepository
	audit       *repository.AuditRepository
	validator   *security.ValidationService
	logger      *security.Logger
}

func NewResourceHandler(
	resources *repository.ResourceRepository,
	attachments *repository.AttachmentRepository,
	audit *repository.AuditRepository,
	validator *security.ValidationService,
	logger *security.Logger,
) *ResourceHandler {
	return &ResourceHandler{
		resources:   resources,
		attachments: attachments,
		audit:       audit,
		validator:   validator,
		logger:      logger,
	}
}

// Create handles POST /api/resources. The route is behind the safety
// officer guard. New resources start available.
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var req models.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" {
		return respondError(c, h.logger, apperrors.MissingField("name"))
	}
	if err := h.validator.ValidateTitle(req.Name); err != nil {
		return respondError(c, h.logger, apperrors.InvalidValue("name", err.Error()))
	}
	if err := h.validator.ValidateDescription(req.Description); err != nil {
		return respondError(c, h.logger, apperrors.InvalidValue("description", err.Error()))
	}

	res := models.Resource{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Status:      models.ResourceAvailable,
		CompanyCode: middleware.CompanyCode(c),
		CreatedBy:   middleware.Requester(c).Matricola,
	}
	if err := h.resources.Create(c.Context(), &res); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// List handles GET /api/resources.
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	resources, err := h.resources.ListByCompany(c.Context(), middleware.CompanyCode(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(resources)
}

// Get handles GET /api/resources/:id.
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.getOwnCompany(c, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(res)
}

// UpdateStatus handles PATCH /api/resources/:id/status. The route is behind
// the maintainer guard; the value must canonicalize into the closed
// resource status set.
func (h *ResourceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Status) == "" {
		return respondError(c, h.logger, apperrors.MissingField("status"))
	}
	status, ok := models.ParseResourceStatus(req.Status)
	if !ok {
		return respondError(c, h.logger, apperrors.InvalidValue("status", fmt.Sprintf("unknown resource status %q", req.Status)))
	}

	rows, err := h.resources.UpdateStatus(c.Context(), id, status)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if rows == 0 {
		return respondError(c, h.logger, apperrors.NotFound("resource not found"))
	}

	requester := middleware.Requester(c)
	h.logger.SecurityEvent(security.EventResourceStatusChange, &requester.Matricola, c.IP(), c.Get(fiber.HeaderUserAgent), map[string]interface{}{
		"resource_id": id,
		"status":      status,
	})

	objectID := strconv.FormatInt(id, 10)
	if err := h.audit.Log(c.Context(), &models.AuditLog{
		ActorMatricola: &requester.Matricola,
		Action:         "resource_status_change",
		ObjectType:     "resource",
		ObjectID:       &objectID,
		IPAddress:      c.IP(),
		UserAgent:      c.Get(fiber.HeaderUserAgent),
	}); err != nil {
		h.logger.Error("audit write failed", err)
	}

	return c.JSON(fiber.Map{
		"id":     strconv.FormatInt(id, 10),
		"status": status,
	})
}

// getOwnCompany loads a resource and hides rows from other companies behind
// NotFound.
func (h *ResourceHandler) getOwnCompany(c *fiber.Ctx, id int64) (*models.Resource, error) {
	res, err := h.resources.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("resource not found")
		}
		return nil, err
	}
	if res.CompanyCode != middleware.CompanyCode(c) {
		return nil, apperrors.NotFound("resource not found")
	}
	return res, nil
}

// UploadAttachment handles POST /api/resources/:id/attachments. Documents
// (manuals, certificates) are stored as-is; only size is validated.
func (h *ResourceHandler) UploadAttachment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if _, err := h.getOwnCompany(c, id); err != nil {
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
		ResourceID:  &id,
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

// ListAttachments handles GET /api/resources/:id/attachments.
func (h *ResourceHandler) ListAttachments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if _, err := h.getOwnCompany(c, id); err != nil {
		return respondError(c, h.logger, err)
	}

	attachments, err := h.attachments.ListByResource(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(attachments)
}
