package repository

import (
	"context"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

type AnnouncementRepository struct{}

func NewAnnouncementRepository() *AnnouncementRepository {
	return &AnnouncementRepository{}
}

// Create inserts a company announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	query := `
		INSERT INTO announcements (company_code, author_matricola, title, body, pinned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return database.DB.QueryRow(ctx, query,
		a.CompanyCode, a.AuthorMatricola, a.Title, a.Body, a.Pinned,
	).Scan(&a.ID, &a.CreatedAt)
}

// ListByCompany retrieves a company's announcements, pinned first, then
// newest first.
func (r *AnnouncementRepository) ListByCompany(ctx context.Context, companyCode string) ([]models.Announcement, error) {
	query := `
		SELECT id, company_code, author_matricola, title, body, pinned, created_at
		FROM announcements
		WHERE company_code = $1
		ORDER BY pinned DESC, created_at DESC, id DESC
	`

	rows, err := database.DB.Query(ctx, query, companyCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(
			&a.ID,
			&a.CompanyCode,
			&a.AuthorMatricola,
			&a.Title,
			&a.Body,
			&a.Pinned,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}

	return announcements, rows.Err()
}

// Delete removes an announcement scoped to its company and reports the
// number of rows deleted.
func (r *AnnouncementRepository) Delete(ctx context.Context, announcementID int64, companyCode string) (int64, error) {
	tag, err := database.DB.Exec(ctx, `
		DELETE FROM announcements WHERE id = $1 AND company_code = $2
	`, announcementID, companyCode)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
