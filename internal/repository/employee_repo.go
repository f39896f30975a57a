// Package repository implements the database access layer for WorkSafe.
// Repositories speak raw SQL through the shared pgx pool and return domain
// models; business rules live one layer up in services.
package repository

import (
	"context"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

type EmployeeRepository struct{}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{}
}

// Create inserts a new employee row.
func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO employees (matricola, name, role, company_code, hire_date, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return database.DB.QueryRow(ctx, query,
		e.Matricola, e.Name, string(e.Role), e.CompanyCode, e.HireDate, e.PasswordHash,
	).Scan(&e.CreatedAt)
}

// FindByMatricola retrieves an employee by id. Returns pgx.ErrNoRows when
// the matricola is unknown.
func (r *EmployeeRepository) FindByMatricola(ctx context.Context, matricola string) (*models.Employee, error) {
	query := `
		SELECT matricola, name, role, company_code, hire_date, password_hash, created_at
		FROM employees
		WHERE matricola = $1
	`

	var e models.Employee
	err := database.DB.QueryRow(ctx, query, matricola).Scan(
		&e.Matricola,
		&e.Name,
		&e.Role,
		&e.CompanyCode,
		&e.HireDate,
		&e.PasswordHash,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// ListByCompany retrieves all employees of a company ordered by matricola.
func (r *EmployeeRepository) ListByCompany(ctx context.Context, companyCode string) ([]models.Employee, error) {
	query := `
		SELECT matricola, name, role, company_code, hire_date, created_at
		FROM employees
		WHERE company_code = $1
		ORDER BY matricola
	`

	rows, err := database.DB.Query(ctx, query, companyCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(
			&e.Matricola,
			&e.Name,
			&e.Role,
			&e.CompanyCode,
			&e.HireDate,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// UpdateRole sets an employee's role. Returns the number of rows updated so
// the caller can distinguish a missing matricola.
func (r *EmployeeRepository) UpdateRole(ctx context.Context, matricola string, role models.Role) (int64, error) {
	tag, err := database.DB.Exec(ctx, `
		UPDATE employees SET role = $1 WHERE matricola = $2
	`, string(role), matricola)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpdateProfile updates mutable profile fields.
func (r *EmployeeRepository) UpdateProfile(ctx context.Context, matricola, name string) (int64, error) {
	tag, err := database.DB.Exec(ctx, `
		UPDATE employees SET name = $1 WHERE matricola = $2
	`, name, matricola)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
