package repository

import (
	"context"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

type ResourceRepository struct{}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{}
}

// Create inserts a new resource row.
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) error {
	query := `
		INSERT INTO resources (name, type, description, status, company_code, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query,
		res.Name, res.Type, res.Description, res.Status, res.CompanyCode, res.CreatedBy,
	).Scan(&res.ID, &res.CreatedAt)
}

// GetByID retrieves a resource by id.
func (r *ResourceRepository) GetByID(ctx context.Context, resourceID int64) (*models.Resource, error) {
	query := `
		SELECT id, name, type, description, status, company_code, created_by, created_at
		FROM resources
		WHERE id = $1
	`

	var res models.Resource
	err := database.DB.QueryRow(ctx, query, resourceID).Scan(
		&res.ID,
		&res.Name,
		&res.Type,
		&res.Description,
		&res.Status,
		&res.CompanyCode,
		&res.CreatedBy,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// UpdateStatus persists a new (already validated) resource status and
// returns the number of rows updated.
func (r *ResourceRepository) UpdateStatus(ctx context.Context, resourceID int64, status string) (int64, error) {
	tag, err := database.DB.Exec(ctx, `
		UPDATE resources SET status = $1 WHERE id = $2
	`, status, resourceID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListByCompany retrieves a company's resources ordered by id.
func (r *ResourceRepository) ListByCompany(ctx context.Context, companyCode string) ([]models.Resource, error) {
	query := `
		SELECT id, name, type, description, status, company_code, created_by, created_at
		FROM resources
		WHERE company_code = $1
		ORDER BY id
	`

	rows, err := database.DB.Query(ctx, query, companyCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(
			&res.ID,
			&res.Name,
			&res.Type,
			&res.Description,
			&res.Status,
			&res.CompanyCode,
			&res.CreatedBy,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}

	return resources, rows.Err()
}
