package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

type IncidentRepository struct{}

func NewIncidentRepository() *IncidentRepository {
	return &IncidentRepository{}
}

// IncidentFilter narrows ListByCompany. Zero values mean "no filter".
type IncidentFilter struct {
	Status   string
	Priority string
	Reporter string
	Resource *int64
}

// Create inserts a new incident report. Status is set by the caller
// (creation always uses the open status).
func (r *IncidentRepository) Create(ctx context.Context, inc *models.IncidentReport) error {
	query := `
		INSERT INTO incident_reports
			(title, description, resource_id, reporter_matricola, company_code, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query,
		inc.Title, inc.Description, inc.ResourceID, inc.ReporterMatricola,
		inc.CompanyCode, inc.Status, inc.Priority,
	).Scan(&inc.ID, &inc.CreatedAt)
}

// GetByID retrieves an incident report by id.
func (r *IncidentRepository) GetByID(ctx context.Context, incidentID int64) (*models.IncidentReport, error) {
	query := `
		SELECT id, title, description, resource_id, reporter_matricola,
		       company_code, status, priority, created_at
		FROM incident_reports
		WHERE id = $1
	`

	var inc models.IncidentReport
	err := database.DB.QueryRow(ctx, query, incidentID).Scan(
		&inc.ID,
		&inc.Title,
		&inc.Description,
		&inc.ResourceID,
		&inc.ReporterMatricola,
		&inc.CompanyCode,
		&inc.Status,
		&inc.Priority,
		&inc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &inc, nil
}

// UpdateStatus persists a new (already validated) status and returns the
// number of rows updated so the caller can report a missing id.
func (r *IncidentRepository) UpdateStatus(ctx context.Context, incidentID int64, status string) (int64, error) {
	tag, err := database.DB.Exec(ctx, `
		UPDATE incident_reports SET status = $1 WHERE id = $2
	`, status, incidentID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListByCompany retrieves a company's incident reports, newest first,
// narrowed by the optional filter fields. The WHERE clause is assembled
// dynamically with squirrel.
func (r *IncidentRepository) ListByCompany(ctx context.Context, companyCode string, filter IncidentFilter) ([]models.IncidentReport, error) {
	builder := sq.Select(
		"id", "title", "description", "resource_id", "reporter_matricola",
		"company_code", "status", "priority", "created_at",
	).
		From("incident_reports").
		Where(sq.Eq{"company_code": companyCode}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Priority != "" {
		builder = builder.Where(sq.Eq{"priority": filter.Priority})
	}
	if filter.Reporter != "" {
		builder = builder.Where(sq.Eq{"reporter_matricola": filter.Reporter})
	}
	if filter.Resource != nil {
		builder = builder.Where(sq.Eq{"resource_id": *filter.Resource})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []models.IncidentReport
	for rows.Next() {
		var inc models.IncidentReport
		if err := rows.Scan(
			&inc.ID,
			&inc.Title,
			&inc.Description,
			&inc.ResourceID,
			&inc.ReporterMatricola,
			&inc.CompanyCode,
			&inc.Status,
			&inc.Priority,
			&inc.CreatedAt,
		); err != nil {
			return nil, err
		}
		incidents = append(incidents, inc)
	}

	return incidents, rows.Err()
}

// ListByReporter retrieves all reports filed by one employee, newest first.
// Anonymous reports are not attributable and never appear here.
func (r *IncidentRepository) ListByReporter(ctx context.Context, matricola string) ([]models.IncidentReport, error) {
	query := `
		SELECT id, title, description, resource_id, reporter_matricola,
		       company_code, status, priority, created_at
		FROM incident_reports
		WHERE reporter_matricola = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := database.DB.Query(ctx, query, matricola)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []models.IncidentReport
	for rows.Next() {
		var inc models.IncidentReport
		if err := rows.Scan(
			&inc.ID,
			&inc.Title,
			&inc.Description,
			&inc.ResourceID,
			&inc.ReporterMatricola,
			&inc.CompanyCode,
			&inc.Status,
			&inc.Priority,
			&inc.CreatedAt,
		); err != nil {
			return nil, err
		}
		incidents = append(incidents, inc)
	}

	return incidents, rows.Err()
}
