package repository

import (
	"context"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

type AuditRepository struct{}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Log records an audit trail entry. Audit failures are reported to the
// caller but must never abort the mutation that triggered them.
func (r *AuditRepository) Log(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_log (actor_matricola, action, object_type, object_id, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query,
		entry.ActorMatricola, entry.Action, entry.ObjectType, entry.ObjectID,
		entry.IPAddress, entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListRecent retrieves the most recent audit entries, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	query := `
		SELECT id, actor_matricola, action, object_type, object_id, ip_address, user_agent, created_at
		FROM audit_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := database.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(
			&e.ID,
			&e.ActorMatricola,
			&e.Action,
			&e.ObjectType,
			&e.ObjectID,
			&e.IPAddress,
			&e.UserAgent,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListByActor retrieves audit entries for one actor, newest first.
func (r *AuditRepository) ListByActor(ctx context.Context, matricola string, limit int) ([]models.AuditLog, error) {
	query := `
		SELECT id, actor_matricola, action, object_type, object_id, ip_address, user_agent, created_at
		FROM audit_log
		WHERE actor_matricola = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := database.DB.Query(ctx, query, matricola, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(
			&e.ID,
			&e.ActorMatricola,
			&e.Action,
			&e.ObjectType,
			&e.ObjectID,
			&e.IPAddress,
			&e.UserAgent,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
