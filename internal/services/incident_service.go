package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

// IncidentService implements the incident report workflow: creation,
// per-employee and company-wide reads, and the maintainer status path.
type IncidentService struct {
	incidents *repository.IncidentRepository
	validator *security.ValidationService
	logger    *security.Logger
}

func NewIncidentService(
	incidents *repository.IncidentRepository,
	validator *security.ValidationService,
	logger *security.Logger,
) *IncidentService {
	return &IncidentService{
		incidents: incidents,
		validator: validator,
		logger:    logger,
	}
}

// ValidateIncidentStatus canonicalizes a raw incident status. A blank value
// is a missing field; a non-blank value outside the four-value set is an
// invalid one.
func ValidateIncidentStatus(raw string) (string, error) {
	status, ok := models.NormalizeIncidentStatus(raw)
	if status == "" {
		return "", apperrors.MissingField("status")
	}
	if !ok {
		return "", apperrors.InvalidValue("status", fmt.Sprintf("unknown incident status %q", raw))
	}
	return status, nil
}

// CreateIncident files a new incident report on behalf of the caller. When
// the request asks for anonymity the stored reporter is the anonymity
// sentinel instead of the caller's matricola. Priority defaults to MEDIA.
func (s *IncidentService) CreateIncident(ctx context.Context, req Requester, companyCode string, in models.CreateIncidentRequest) (*models.IncidentReport, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.MissingField("title")
	}
	if err := s.validator.ValidateTitle(in.Title); err != nil {
		return nil, apperrors.InvalidValue("title", err.Error())
	}
	if err := s.validator.ValidateDescription(in.Description); err != nil {
		return nil, apperrors.InvalidValue("description", err.Error())
	}

	priority := models.PriorityMedium
	if in.Priority != "" {
		p, ok := models.NormalizeIncidentPriority(in.Priority)
		if !ok {
			return nil, apperrors.InvalidValue("priority", fmt.Sprintf("unknown priority %q", in.Priority))
		}
		priority = p
	}

	reporter := req.Matricola
	if in.Anonymous {
		reporter = models.AnonymousReporter
	}

	inc := models.IncidentReport{
		Title:             in.Title,
		Description:       in.Description,
		ResourceID:        in.ResourceID,
		ReporterMatricola: reporter,
		CompanyCode:       companyCode,
		Status:            models.IncidentOpen,
		Priority:          priority,
	}
	if err := s.incidents.Create(ctx, &inc); err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	s.logger.SecurityEvent(security.EventIncidentSubmit, &req.Matricola, "", "", map[string]interface{}{
		"incident_id": inc.ID,
		"anonymous":   in.Anonymous,
		"priority":    priority,
	})

	return &inc, nil
}

// GetIncident retrieves one incident. Reads are restricted to the reporter
// or a supervisor; anonymous reports are supervisor-only since the reporter
// link is severed at filing time.
func (s *IncidentService) GetIncident(ctx context.Context, req Requester, incidentID int64) (*models.IncidentReport, error) {
	inc, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("incident not found")
		}
		return nil, fmt.Errorf("load incident %d: %w", incidentID, err)
	}

	if err := AuthorizeOwnerOrSupervisor(req.Matricola, req.Role, inc.ReporterMatricola); err != nil {
		return nil, err
	}
	return inc, nil
}

// ListCompanyIncidents lists a company's incidents with optional filters.
// Supervisor-only.
func (s *IncidentService) ListCompanyIncidents(ctx context.Context, req Requester, companyCode string, filter repository.IncidentFilter) ([]models.IncidentReport, error) {
	if !req.Role.IsSupervisor() {
		return nil, apperrors.Forbidden("incident listing is restricted to supervisors")
	}

	if filter.Status != "" {
		status, err := ValidateIncidentStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	if filter.Priority != "" {
		p, ok := models.NormalizeIncidentPriority(filter.Priority)
		if !ok {
			return nil, apperrors.InvalidValue("priority", fmt.Sprintf("unknown priority %q", filter.Priority))
		}
		filter.Priority = p
	}

	incidents, err := s.incidents.ListByCompany(ctx, companyCode, filter)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	return incidents, nil
}

// ListOwnIncidents lists the incidents the caller filed under their own
// matricola. Anonymous filings are excluded by construction.
func (s *IncidentService) ListOwnIncidents(ctx context.Context, matricola string) ([]models.IncidentReport, error) {
	incidents, err := s.incidents.ListByReporter(ctx, matricola)
	if err != nil {
		return nil, fmt.Errorf("list incidents for %s: %w", matricola, err)
	}
	return incidents, nil
}

// UpdateIncidentStatus validates and persists a new incident status. The
// maintainer role requirement is enforced at the route; this path validates
// the value, writes it, and reports NotFound when the incident does not
// exist. Setting the current value again succeeds. No transition ordering
// is enforced between the four statuses.
func (s *IncidentService) UpdateIncidentStatus(ctx context.Context, req Requester, incidentID int64, raw string) (*models.IncidentStatusView, error) {
	status, err := ValidateIncidentStatus(raw)
	if err != nil {
		return nil, err
	}

	rows, err := s.incidents.UpdateStatus(ctx, incidentID, status)
	if err != nil {
		return nil, fmt.Errorf("update incident %d: %w", incidentID, err)
	}
	if rows == 0 {
		return nil, apperrors.NotFound("incident not found")
	}

	s.logger.SecurityEvent(security.EventIncidentStatusChange, &req.Matricola, "", "", map[string]interface{}{
		"incident_id": incidentID,
		"status":      status,
	})

	return &models.IncidentStatusView{ID: incidentID, Status: status}, nil
}
