package services

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

func TestValidateIncidentStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		wantKind apperrors.Kind
	}{
		{"canonical", "APERTA", "APERTA", apperrors.KindUnknown},
		{"lowercase accepted", "aperta", "APERTA", apperrors.KindUnknown},
		{"surrounding whitespace accepted", "  in_corso ", "IN_CORSO", apperrors.KindUnknown},
		{"resolved", "risolta", "RISOLTA", apperrors.KindUnknown},
		{"closed", "chiusa", "CHIUSA", apperrors.KindUnknown},
		{"outside the set", "URGENTE", "", apperrors.KindInvalidValue},
		{"empty", "", "", apperrors.KindMissingField},
		{"blank", "   ", "", apperrors.KindMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateIncidentStatus(tt.raw)
			if tt.wantKind == apperrors.KindUnknown {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
			}
		})
	}
}

func newIncidentServiceWithMock(t *testing.T) (*IncidentService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := database.DB
	database.DB = mock
	t.Cleanup(func() {
		database.DB = prev
		mock.Close()
	})

	svc := NewIncidentService(
		repository.NewIncidentRepository(),
		security.NewValidationService(security.DefaultSecurityConfig()),
		security.NewLogger(),
	)
	return svc, mock
}

func TestUpdateIncidentStatusPersistsAndReturnsView(t *testing.T) {
	svc, mock := newIncidentServiceWithMock(t)

	mock.ExpectExec("UPDATE incident_reports").
		WithArgs("IN_CORSO", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	view, err := svc.UpdateIncidentStatus(context.Background(), Requester{Matricola: "MAN01", Role: models.RoleMaintainer}, 9, "in_corso")
	require.NoError(t, err)
	assert.Equal(t, &models.IncidentStatusView{ID: 9, Status: models.IncidentInProgress}, view)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateIncidentStatusSameValueSucceeds(t *testing.T) {
	svc, mock := newIncidentServiceWithMock(t)

	mock.ExpectExec("UPDATE incident_reports").
		WithArgs("APERTA", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	view, err := svc.UpdateIncidentStatus(context.Background(), Requester{Matricola: "MAN01", Role: models.RoleMaintainer}, 9, "APERTA")
	require.NoError(t, err)
	assert.Equal(t, models.IncidentOpen, view.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateIncidentStatusUnknownIncident(t *testing.T) {
	svc, mock := newIncidentServiceWithMock(t)

	mock.ExpectExec("UPDATE incident_reports").
		WithArgs("CHIUSA", int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := svc.UpdateIncidentStatus(context.Background(), Requester{Matricola: "MAN01", Role: models.RoleMaintainer}, 404, "chiusa")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateIncidentStatusRejectsBeforeWrite(t *testing.T) {
	svc, mock := newIncidentServiceWithMock(t)

	_, err := svc.UpdateIncidentStatus(context.Background(), Requester{Matricola: "MAN01", Role: models.RoleMaintainer}, 9, "URGENTE")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidValue, apperrors.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncidentAnonymousUsesSentinel(t *testing.T) {
	svc, mock := newIncidentServiceWithMock(t)

	mock.ExpectQuery("INSERT INTO incident_reports").
		WithArgs("Scala rotta", "Gradino instabile al secondo piano", pgxmock.AnyArg(),
			models.AnonymousReporter, "ACME-01", models.IncidentOpen, models.PriorityMedium).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	inc, err := svc.CreateIncident(context.Background(),
		Requester{Matricola: "EMP001", Role: models.RoleEmployee}, "ACME-01",
		models.CreateIncidentRequest{
			Title:       "Scala rotta",
			Description: "Gradino instabile al secondo piano",
			Anonymous:   true,
		})
	require.NoError(t, err)
	assert.Equal(t, models.AnonymousReporter, inc.ReporterMatricola)
	assert.Equal(t, models.IncidentOpen, inc.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncidentValidation(t *testing.T) {
	svc, _ := newIncidentServiceWithMock(t)
	req := Requester{Matricola: "EMP001", Role: models.RoleEmployee}

	_, err := svc.CreateIncident(context.Background(), req, "ACME-01", models.CreateIncidentRequest{})
	assert.Equal(t, apperrors.KindMissingField, apperrors.KindOf(err))

	_, err = svc.CreateIncident(context.Background(), req, "ACME-01", models.CreateIncidentRequest{
		Title:    "Scala rotta",
		Priority: "APOCALITTICA",
	})
	assert.Equal(t, apperrors.KindInvalidValue, apperrors.KindOf(err))
}

func TestListCompanyIncidentsSupervisorOnly(t *testing.T) {
	svc, _ := newIncidentServiceWithMock(t)

	_, err := svc.ListCompanyIncidents(context.Background(),
		Requester{Matricola: "EMP001", Role: models.RoleEmployee}, "ACME-01", repository.IncidentFilter{})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}
