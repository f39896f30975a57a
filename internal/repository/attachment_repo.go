package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

type AttachmentRepository struct{}

func NewAttachmentRepository() *AttachmentRepository {
	return &AttachmentRepository{}
}

// Create stores an attachment, generating its uuid if unset.
func (r *AttachmentRepository) Create(ctx context.Context, a *models.Attachment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attachments (id, incident_id, resource_id, filename, content_type, content, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return database.DB.QueryRow(ctx, query,
		a.ID, a.IncidentID, a.ResourceID, a.Filename, a.ContentType, a.Content, a.UploadedBy,
	).Scan(&a.CreatedAt)
}

// GetByID retrieves one attachment including its content.
func (r *AttachmentRepository) GetByID(ctx context.Context, id string) (*models.Attachment, error) {
	query := `
		SELECT id, incident_id, resource_id, filename, content_type, content, uploaded_by, created_at
		FROM attachments
		WHERE id = $1
	`

	var a models.Attachment
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.IncidentID,
		&a.ResourceID,
		&a.Filename,
		&a.ContentType,
		&a.Content,
		&a.UploadedBy,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// ListByIncident retrieves attachment metadata for an incident. Content is
// left out; callers fetch it per attachment via GetByID.
func (r *AttachmentRepository) ListByIncident(ctx context.Context, incidentID int64) ([]models.Attachment, error) {
	query := `
		SELECT id, incident_id, resource_id, filename, content_type, uploaded_by, created_at
		FROM attachments
		WHERE incident_id = $1
		ORDER BY created_at, id
	`

	rows, err := database.DB.Query(ctx, query, incidentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(
			&a.ID,
			&a.IncidentID,
			&a.ResourceID,
			&a.Filename,
			&a.ContentType,
			&a.UploadedBy,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}

	return attachments, rows.Err()
}

// ListByResource retrieves attachment metadata for a resource. Content is
// left out, same as ListByIncident.
func (r *AttachmentRepository) ListByResource(ctx context.Context, resourceID int64) ([]models.Attachment, error) {
	query := `
		SELECT id, incident_id, resource_id, filename, content_type, uploaded_by, created_at
		FROM attachments
		WHERE resource_id = $1
		ORDER BY created_at, id
	`

	rows, err := database.DB.Query(ctx, query, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(
			&a.ID,
			&a.IncidentID,
			&a.ResourceID,
			&a.Filename,
			&a.ContentType,
			&a.UploadedBy,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}

	return attachments, rows.Err()
}
