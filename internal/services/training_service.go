package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

// Requester identifies the authenticated caller for policy checks.
type Requester struct {
	Matricola string
	Role      models.Role
}

// TrainingService implements assignment progress, completion, and listing.
type TrainingService struct {
	assignments *repository.AssignmentRepository
	training    *repository.TrainingRepository
	logger      *security.Logger
}

func NewTrainingService(
	assignments *repository.AssignmentRepository,
	training *repository.TrainingRepository,
	logger *security.Logger,
) *TrainingService {
	return &TrainingService{
		assignments: assignments,
		training:    training,
		logger:      logger,
	}
}

// ComputeTrainingProgress aggregates raw stored statuses into a progress
// summary. Each status is bucketed by ClassifyTrainingStatus; the percentage
// is the completed share rounded half-up to an integer, 0 for an empty
// input. The three bucket counts always sum to TotalCourses.
func ComputeTrainingProgress(statuses []string) models.ProgressSummary {
	var s models.ProgressSummary
	s.TotalCourses = len(statuses)

	for _, raw := range statuses {
		switch models.ClassifyTrainingStatus(raw) {
		case models.BucketCompleted:
			s.Completed++
		case models.BucketInProgress:
			s.InProgress++
		default:
			s.NotStarted++
		}
	}

	if s.TotalCourses > 0 {
		s.Percent = int(float64(s.Completed)/float64(s.TotalCourses)*100 + 0.5)
	}

	return s
}

// ListTopics returns the training topics published for a company.
func (s *TrainingService) ListTopics(ctx context.Context, companyCode string) ([]models.TrainingTopic, error) {
	topics, err := s.training.ListTopicsByCompany(ctx, companyCode)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// GetProgress returns the progress summary over all of the target employee's
// training assignments. The requester must be the target or a supervisor.
// Employees with no assignments get an all-zero summary, not an error.
func (s *TrainingService) GetProgress(ctx context.Context, req Requester, targetMatricola string) (models.ProgressSummary, error) {
	if targetMatricola == "" {
		return models.ProgressSummary{}, apperrors.MissingField("matricola")
	}
	if err := AuthorizeOwnerOrSupervisor(req.Matricola, req.Role, targetMatricola); err != nil {
		return models.ProgressSummary{}, err
	}

	statuses, err := s.assignments.ListStatusesByMatricola(ctx, targetMatricola)
	if err != nil {
		return models.ProgressSummary{}, fmt.Errorf("list assignment statuses: %w", err)
	}

	return ComputeTrainingProgress(statuses), nil
}

// ListAssignedCourses returns the target employee's training assignments
// joined with their topic and the topic's course material. The requester
// must be the target or a supervisor.
func (s *TrainingService) ListAssignedCourses(ctx context.Context, req Requester, targetMatricola string) ([]models.AssignmentView, error) {
	if targetMatricola == "" {
		return nil, apperrors.MissingField("matricola")
	}
	if err := AuthorizeOwnerOrSupervisor(req.Matricola, req.Role, targetMatricola); err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByMatricola(ctx, targetMatricola)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	views := make([]models.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		view, err := s.buildAssignmentView(ctx, a)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return views, nil
}

// CompleteAssignment marks one of the target employee's assignments as
// completed and returns the updated row joined with its course material.
// The update is a single conditional write keyed on both the assignment id
// and the target matricola, so a row owned by someone else is
// indistinguishable from a missing one. Completing an already completed
// assignment succeeds and leaves the row completed.
func (s *TrainingService) CompleteAssignment(ctx context.Context, req Requester, assignmentID int64, targetMatricola string) (*models.AssignmentView, error) {
	return s.setAssignmentStatus(ctx, req, assignmentID, targetMatricola, models.TrainingCompleted)
}

// UpdateAssignmentStatus sets one of the target employee's assignments to a
// caller-supplied status. The value must canonicalize into the closed
// training status set; anything else is rejected before the write.
func (s *TrainingService) UpdateAssignmentStatus(ctx context.Context, req Requester, assignmentID int64, targetMatricola, rawStatus string) (*models.AssignmentView, error) {
	if rawStatus == "" {
		return nil, apperrors.MissingField("status")
	}
	status, ok := models.ParseTrainingStatus(rawStatus)
	if !ok {
		return nil, apperrors.InvalidValue("status", fmt.Sprintf("unknown training status %q", rawStatus))
	}

	return s.setAssignmentStatus(ctx, req, assignmentID, targetMatricola, status)
}

func (s *TrainingService) setAssignmentStatus(ctx context.Context, req Requester, assignmentID int64, targetMatricola, status string) (*models.AssignmentView, error) {
	if targetMatricola == "" {
		return nil, apperrors.MissingField("matricola")
	}
	if err := AuthorizeOwnerOrSupervisor(req.Matricola, req.Role, targetMatricola); err != nil {
		return nil, err
	}

	rows, err := s.assignments.UpdateStatus(ctx, assignmentID, targetMatricola, status)
	if err != nil {
		return nil, fmt.Errorf("update assignment %d: %w", assignmentID, err)
	}
	if rows == 0 {
		return nil, apperrors.NotFound("training assignment not found")
	}

	s.logger.SecurityEvent(security.EventAssignmentComplete, &req.Matricola, "", "", map[string]interface{}{
		"assignment_id": assignmentID,
		"matricola":     targetMatricola,
		"status":        status,
	})

	// Reread outside the update statement. A concurrent writer may land
	// between the two; the response then reflects the newer row.
	updated, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("reload assignment %d: %w", assignmentID, err)
	}
	return s.buildAssignmentView(ctx, *updated)
}

func (s *TrainingService) buildAssignmentView(ctx context.Context, a models.TrainingAssignment) (*models.AssignmentView, error) {
	topic, err := s.training.GetTopic(ctx, a.TopicID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Orphaned assignment; surface it without course material
			// rather than hiding the row.
			return &models.AssignmentView{TrainingAssignment: a}, nil
		}
		return nil, fmt.Errorf("load topic %d: %w", a.TopicID, err)
	}

	videos, err := s.training.ListVideosByTopic(ctx, a.TopicID)
	if err != nil {
		return nil, fmt.Errorf("list videos for topic %d: %w", a.TopicID, err)
	}
	quizzes, err := s.training.ListQuizzesByTopic(ctx, a.TopicID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes for topic %d: %w", a.TopicID, err)
	}

	return &models.AssignmentView{
		TrainingAssignment: a,
		Topic:              *topic,
		Videos:             videos,
		Quizzes:            quizzes,
	}, nil
}
