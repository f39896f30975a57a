package repository

import (
	"context"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

// TrainingRepository reads training topics and their course material. Topics
// are authored out of band, so this repository is read-only.
type TrainingRepository struct{}

func NewTrainingRepository() *TrainingRepository {
	return &TrainingRepository{}
}

// GetTopic retrieves a training topic by id.
func (r *TrainingRepository) GetTopic(ctx context.Context, topicID int64) (*models.TrainingTopic, error) {
	query := `
		SELECT id, name, course_count, company_code
		FROM training_topics
		WHERE id = $1
	`

	var t models.TrainingTopic
	err := database.DB.QueryRow(ctx, query, topicID).Scan(
		&t.ID,
		&t.Name,
		&t.CourseCount,
		&t.CompanyCode,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// ListTopicsByCompany retrieves all topics available to a company.
func (r *TrainingRepository) ListTopicsByCompany(ctx context.Context, companyCode string) ([]models.TrainingTopic, error) {
	query := `
		SELECT id, name, course_count, company_code
		FROM training_topics
		WHERE company_code = $1
		ORDER BY id
	`

	rows, err := database.DB.Query(ctx, query, companyCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []models.TrainingTopic
	for rows.Next() {
		var t models.TrainingTopic
		if err := rows.Scan(&t.ID, &t.Name, &t.CourseCount, &t.CompanyCode); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}

	return topics, rows.Err()
}

// ListVideosByTopic retrieves a topic's video courses in display order.
func (r *TrainingRepository) ListVideosByTopic(ctx context.Context, topicID int64) ([]models.VideoCourse, error) {
	query := `
		SELECT id, topic_id, name, duration_minutes, position
		FROM video_courses
		WHERE topic_id = $1
		ORDER BY position, id
	`

	rows, err := database.DB.Query(ctx, query, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []models.VideoCourse
	for rows.Next() {
		var v models.VideoCourse
		if err := rows.Scan(&v.ID, &v.TopicID, &v.Name, &v.DurationMinutes, &v.Position); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}

	return videos, rows.Err()
}

// ListQuizzesByTopic retrieves a topic's quizzes in display order.
func (r *TrainingRepository) ListQuizzesByTopic(ctx context.Context, topicID int64) ([]models.Quiz, error) {
	query := `
		SELECT id, topic_id, name, duration_minutes, position
		FROM quizzes
		WHERE topic_id = $1
		ORDER BY position, id
	`

	rows, err := database.DB.Query(ctx, query, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var q models.Quiz
		if err := rows.Scan(&q.ID, &q.TopicID, &q.Name, &q.DurationMinutes, &q.Position); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}

	return quizzes, rows.Err()
}

// GetQuiz retrieves a quiz by id.
func (r *TrainingRepository) GetQuiz(ctx context.Context, quizID int64) (*models.Quiz, error) {
	query := `
		SELECT id, topic_id, name, duration_minutes, position
		FROM quizzes
		WHERE id = $1
	`

	var q models.Quiz
	err := database.DB.QueryRow(ctx, query, quizID).Scan(
		&q.ID,
		&q.TopicID,
		&q.Name,
		&q.DurationMinutes,
		&q.Position,
	)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

// ListQuestionsByQuiz retrieves a quiz's questions in order, including the
// correct answers. Grading strips the answers before anything reaches the
// client.
func (r *TrainingRepository) ListQuestionsByQuiz(ctx context.Context, quizID int64) ([]models.Question, error) {
	query := `
		SELECT id, quiz_id, text, correct_answer, position
		FROM questions
		WHERE quiz_id = $1
		ORDER BY position, id
	`

	rows, err := database.DB.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.CorrectAnswer, &q.Position); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}
