package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

type AssignmentRepository struct{}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{}
}

// Create inserts a new assignment row unconditionally. Used for topic
// assignment and for the append-history quiz pass policy, where repeated
// passes accumulate one row per attempt.
func (r *AssignmentRepository) Create(ctx context.Context, a *models.TrainingAssignment) error {
	query := `
		INSERT INTO training_assignments (topic_id, matricola, quiz_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return database.DB.QueryRow(ctx, query,
		a.TopicID, a.Matricola, a.QuizID, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// Upsert refreshes the canonical assignment row for
// (topic, matricola, quiz), inserting it on first pass. Used by the upsert
// quiz pass policy. The table has no unique constraint on the trio (the
// append policy accumulates duplicates there), so this is an update
// followed by an insert when nothing matched. Two passes racing can leave
// two rows; the refreshed status is the same either way.
func (r *AssignmentRepository) Upsert(ctx context.Context, a *models.TrainingAssignment) error {
	err := database.DB.QueryRow(ctx, `
		UPDATE training_assignments
		SET status = $4, updated_at = NOW()
		WHERE id = (
			SELECT id FROM training_assignments
			WHERE topic_id = $1 AND matricola = $2 AND quiz_id = $3
			ORDER BY id
			LIMIT 1
		)
		RETURNING id, created_at, updated_at
	`, a.TopicID, a.Matricola, a.QuizID, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return r.Create(ctx, a)
}

// GetByID retrieves a single assignment by id.
func (r *AssignmentRepository) GetByID(ctx context.Context, assignmentID int64) (*models.TrainingAssignment, error) {
	query := `
		SELECT id, topic_id, matricola, quiz_id, status, created_at, updated_at
		FROM training_assignments
		WHERE id = $1
	`

	var a models.TrainingAssignment
	err := database.DB.QueryRow(ctx, query, assignmentID).Scan(
		&a.ID,
		&a.TopicID,
		&a.Matricola,
		&a.QuizID,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// UpdateStatus sets the status of the assignment matching BOTH id and
// matricola in a single conditional statement, and returns the number of
// rows updated. The combined predicate is the ownership check: guessing
// another employee's assignment id cannot touch their row, it just yields
// zero rows.
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, assignmentID int64, matricola, status string) (int64, error) {
	tag, err := database.DB.Exec(ctx, `
		UPDATE training_assignments
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND matricola = $3
	`, status, assignmentID, matricola)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListByMatricola retrieves all assignments for one employee ordered by
// (topic id, assignment id).
func (r *AssignmentRepository) ListByMatricola(ctx context.Context, matricola string) ([]models.TrainingAssignment, error) {
	query := `
		SELECT id, topic_id, matricola, quiz_id, status, created_at, updated_at
		FROM training_assignments
		WHERE matricola = $1
		ORDER BY topic_id, id
	`

	rows, err := database.DB.Query(ctx, query, matricola)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.TrainingAssignment
	for rows.Next() {
		var a models.TrainingAssignment
		if err := rows.Scan(
			&a.ID,
			&a.TopicID,
			&a.Matricola,
			&a.QuizID,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// ListStatusesByMatricola retrieves only the status column for one
// employee's assignments. Progress aggregation needs nothing else.
func (r *AssignmentRepository) ListStatusesByMatricola(ctx context.Context, matricola string) ([]string, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT status FROM training_assignments WHERE matricola = $1
	`, matricola)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	return statuses, rows.Err()
}
