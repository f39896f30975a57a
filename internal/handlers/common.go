// Package handlers exposes the WorkSafe HTTP API. Handlers decode requests,
// delegate to the service layer, and translate typed domain errors into
// transport status codes.
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

// statusForKind maps the closed error taxonomy onto HTTP status codes.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindMissingField:
		return fiber.StatusBadRequest
	case apperrors.KindInvalidValue:
		return fiber.StatusUnprocessableEntity
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the transport representation of err. Typed domain
// errors keep their message and kind; anything else is logged and masked as
// a generic internal failure.
func respondError(c *fiber.Ctx, logger *security.Logger, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr
	}

	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		body := fiber.Map{
			"error": domainErr.Message,
			"code":  domainErr.Kind.String(),
		}
		if domainErr.Field != "" {
			body["field"] = domainErr.Field
		}
		return c.Status(statusForKind(domainErr.Kind)).JSON(body)
	}

	logger.Error("unhandled error in request", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
		"code":  "INTERNAL",
	})
}

// paramID parses a decimal int64 route parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.InvalidValue(name, "expected a decimal integer id")
	}
	return id, nil
}
