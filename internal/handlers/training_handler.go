package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/middleware"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/services"
)

// TrainingHandler serves training progress, assignment, and quiz routes.
type TrainingHandler struct {
	training *services.TrainingService
	quizzes  *services.QuizService
	logger   *security.Logger
}

func NewTrainingHandler(
	training *services.TrainingService,
	quizzes *services.QuizService,
	logger *security.Logger,
) *TrainingHandler {
	return &TrainingHandler{
		training: training,
		quizzes:  quizzes,
		logger:   logger,
	}
}

// targetMatricola resolves the employee a training route operates on: the
// :matricola route parameter when present, the caller otherwise. Cross-
// employee access is policed by the service layer.
func targetMatricola(c *fiber.Ctx) string {
	if m := c.Params("matricola"); m != "" {
		return m
	}
	return middleware.Requester(c).Matricola
}

// ListTopics handles GET /api/training/topics.
func (h *TrainingHandler) ListTopics(c *fiber.Ctx) error {
	topics, err := h.training.ListTopics(c.Context(), middleware.CompanyCode(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(topics)
}

// GetProgress handles GET /api/training/progress/:matricola?.
func (h *TrainingHandler) GetProgress(c *fiber.Ctx) error {
	summary, err := h.training.GetProgress(c.Context(), middleware.Requester(c), targetMatricola(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(summary)
}

// ListAssigned handles GET /api/training/assignments/:matricola?.
func (h *TrainingHandler) ListAssigned(c *fiber.Ctx) error {
	views, err := h.training.ListAssignedCourses(c.Context(), middleware.Requester(c), targetMatricola(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(views)
}

// Complete handles POST /api/training/assignments/:id/complete.
func (h *TrainingHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	view, err := h.training.CompleteAssignment(c.Context(), middleware.Requester(c), id, targetMatricola(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(view)
}

// UpdateStatus handles PATCH /api/training/assignments/:id/status.
func (h *TrainingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	view, err := h.training.UpdateAssignmentStatus(c.Context(), middleware.Requester(c), id, targetMatricola(c), req.Status)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(view)
}

// SubmitQuiz handles POST /api/training/quizzes/:id/submit.
func (h *TrainingHandler) SubmitQuiz(c *fiber.Ctx) error {
	quizID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var sub models.QuizSubmission
	if err := c.BodyParser(&sub); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.quizzes.SubmitQuiz(c.Context(), middleware.Requester(c).Matricola, quizID, sub)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(result)
}
