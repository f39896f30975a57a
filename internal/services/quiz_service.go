package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/config"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

// QuizService grades quiz submissions and records passing attempts as
// training assignments.
type QuizService struct {
	training    *repository.TrainingRepository
	assignments *repository.AssignmentRepository
	passPolicy  config.QuizPassPolicy
	logger      *security.Logger
}

func NewQuizService(
	training *repository.TrainingRepository,
	assignments *repository.AssignmentRepository,
	passPolicy config.QuizPassPolicy,
	logger *security.Logger,
) *QuizService {
	return &QuizService{
		training:    training,
		assignments: assignments,
		passPolicy:  passPolicy,
		logger:      logger,
	}
}

// GradeQuiz scores a submission against the quiz's questions. The quiz is
// passed only when every question has a submitted answer equal to its
// correct answer; a missing answer fails the quiz. Answers for unknown
// question ids are ignored.
func GradeQuiz(questions []models.Question, answers map[string]bool) models.QuizResult {
	result := models.QuizResult{TotalQuestions: len(questions)}

	for _, q := range questions {
		answer, ok := answers[strconv.FormatInt(q.ID, 10)]
		if !ok || answer != q.CorrectAnswer {
			return result
		}
	}

	result.Passed = true
	return result
}

// SubmitQuiz grades the caller's submission and, on a pass that names a
// training topic, records a passed assignment row for the caller. The write
// follows the configured pass policy: append keeps one row per passing
// attempt, upsert keeps a single canonical row per (topic, employee, quiz).
// A failed submission writes nothing. The grading result is returned either
// way.
func (s *QuizService) SubmitQuiz(ctx context.Context, matricola string, quizID int64, sub models.QuizSubmission) (models.QuizResult, error) {
	if matricola == "" {
		return models.QuizResult{}, apperrors.MissingField("matricola")
	}

	if _, err := s.training.GetQuiz(ctx, quizID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.QuizResult{}, apperrors.NotFound("quiz not found")
		}
		return models.QuizResult{}, fmt.Errorf("load quiz %d: %w", quizID, err)
	}

	questions, err := s.training.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return models.QuizResult{}, fmt.Errorf("list questions for quiz %d: %w", quizID, err)
	}

	result := GradeQuiz(questions, sub.Answers)
	if !result.Passed || sub.TopicID == nil {
		return result, nil
	}

	assignment := models.TrainingAssignment{
		TopicID:   *sub.TopicID,
		Matricola: matricola,
		QuizID:    &quizID,
		Status:    models.TrainingPassed,
	}

	switch s.passPolicy {
	case config.PassPolicyUpsert:
		err = s.assignments.Upsert(ctx, &assignment)
	default:
		err = s.assignments.Create(ctx, &assignment)
	}
	if err != nil {
		return result, fmt.Errorf("record passed quiz %d: %w", quizID, err)
	}

	s.logger.SecurityEvent(security.EventQuizPassed, &matricola, "", "", map[string]interface{}{
		"quiz_id":  quizID,
		"topic_id": *sub.TopicID,
	})

	return result, nil
}
