package services

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/config"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

func TestGradeQuiz(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectAnswer: true},
		{ID: 2, CorrectAnswer: false},
		{ID: 3, CorrectAnswer: true},
	}

	tests := []struct {
		name    string
		answers map[string]bool
		passed  bool
	}{
		{
			name:    "all correct",
			answers: map[string]bool{"1": true, "2": false, "3": true},
			passed:  true,
		},
		{
			name:    "one wrong",
			answers: map[string]bool{"1": true, "2": true, "3": true},
			passed:  false,
		},
		{
			name:    "missing answer fails",
			answers: map[string]bool{"1": true, "2": false},
			passed:  false,
		},
		{
			name:    "no answers",
			answers: nil,
			passed:  false,
		},
		{
			name:    "extra answers for unknown questions are ignored",
			answers: map[string]bool{"1": true, "2": false, "3": true, "99": true},
			passed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GradeQuiz(questions, tt.answers)
			assert.Equal(t, tt.passed, result.Passed)
			assert.Equal(t, 3, result.TotalQuestions)
		})
	}
}

func newQuizServiceWithMock(t *testing.T, policy config.QuizPassPolicy) (*QuizService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := database.DB
	database.DB = mock
	t.Cleanup(func() {
		database.DB = prev
		mock.Close()
	})

	svc := NewQuizService(
		repository.NewTrainingRepository(),
		repository.NewAssignmentRepository(),
		policy,
		security.NewLogger(),
	)
	return svc, mock
}

func expectQuizLookup(mock pgxmock.PgxPoolIface, quizID, topicID int64) {
	mock.ExpectQuery("SELECT id, topic_id, name, duration_minutes, position").
		WithArgs(quizID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "topic_id", "name", "duration_minutes", "position"}).
			AddRow(quizID, topicID, "Quiz sicurezza", 15, 1))
}

func expectQuestions(mock pgxmock.PgxPoolIface, quizID int64) {
	mock.ExpectQuery("SELECT id, quiz_id, text, correct_answer, position").
		WithArgs(quizID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "quiz_id", "text", "correct_answer", "position"}).
			AddRow(int64(10), quizID, "Il DPI va indossato sempre?", true, 1).
			AddRow(int64(11), quizID, "Le scale sono una via di fuga?", false, 2))
}

func TestSubmitQuizPassRecordsAssignmentAppend(t *testing.T) {
	svc, mock := newQuizServiceWithMock(t, config.PassPolicyAppend)

	expectQuizLookup(mock, 7, 3)
	expectQuestions(mock, 7)
	mock.ExpectQuery("INSERT INTO training_assignments").
		WithArgs(int64(3), "EMP001", pgxmock.AnyArg(), models.TrainingPassed).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(100), time.Now(), time.Now()))

	topicID := int64(3)
	result, err := svc.SubmitQuiz(context.Background(), "EMP001", 7, models.QuizSubmission{
		TopicID: &topicID,
		Answers: map[string]bool{"10": true, "11": false},
	})
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, 2, result.TotalQuestions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitQuizFailWritesNothing(t *testing.T) {
	svc, mock := newQuizServiceWithMock(t, config.PassPolicyAppend)

	expectQuizLookup(mock, 7, 3)
	expectQuestions(mock, 7)

	topicID := int64(3)
	result, err := svc.SubmitQuiz(context.Background(), "EMP001", 7, models.QuizSubmission{
		TopicID: &topicID,
		Answers: map[string]bool{"10": false, "11": false},
	})
	require.NoError(t, err)
	assert.False(t, result.Passed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitQuizPassWithoutTopicWritesNothing(t *testing.T) {
	svc, mock := newQuizServiceWithMock(t, config.PassPolicyAppend)

	expectQuizLookup(mock, 7, 3)
	expectQuestions(mock, 7)

	result, err := svc.SubmitQuiz(context.Background(), "EMP001", 7, models.QuizSubmission{
		Answers: map[string]bool{"10": true, "11": false},
	})
	require.NoError(t, err)
	assert.True(t, result.Passed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitQuizUpsertRefreshesExistingRow(t *testing.T) {
	svc, mock := newQuizServiceWithMock(t, config.PassPolicyUpsert)

	expectQuizLookup(mock, 7, 3)
	expectQuestions(mock, 7)
	mock.ExpectQuery("UPDATE training_assignments").
		WithArgs(int64(3), "EMP001", pgxmock.AnyArg(), models.TrainingPassed).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(55), time.Now(), time.Now()))

	topicID := int64(3)
	result, err := svc.SubmitQuiz(context.Background(), "EMP001", 7, models.QuizSubmission{
		TopicID: &topicID,
		Answers: map[string]bool{"10": true, "11": false},
	})
	require.NoError(t, err)
	assert.True(t, result.Passed)
	require.NoError(t, mock.ExpectationsWereMet())
}
