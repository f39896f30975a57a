package repository

import (
	"context"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

type CompanyRepository struct{}

func NewCompanyRepository() *CompanyRepository {
	return &CompanyRepository{}
}

// Create inserts a new company row. Company rows are immutable afterwards.
func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	query := `
		INSERT INTO companies (company_code, legal_name, vat_number, address, contact)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return database.DB.QueryRow(ctx, query,
		c.CompanyCode, c.LegalName, c.VATNumber, c.Address, c.Contact,
	).Scan(&c.CreatedAt)
}

// GetByCode retrieves a company by its code. Returns pgx.ErrNoRows when the
// code is unknown.
func (r *CompanyRepository) GetByCode(ctx context.Context, companyCode string) (*models.Company, error) {
	query := `
		SELECT company_code, legal_name, vat_number, address, contact, created_at
		FROM companies
		WHERE company_code = $1
	`

	var c models.Company
	err := database.DB.QueryRow(ctx, query, companyCode).Scan(
		&c.CompanyCode,
		&c.LegalName,
		&c.VATNumber,
		&c.Address,
		&c.Contact,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Exists reports whether a company with the given code is registered.
func (r *CompanyRepository) Exists(ctx context.Context, companyCode string) (bool, error) {
	var exists bool
	err := database.DB.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM companies WHERE company_code = $1)
	`, companyCode).Scan(&exists)
	return exists, err
}
