package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

func newAuthServiceWithMock(t *testing.T) (*AuthService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := database.DB
	database.DB = mock
	t.Cleanup(func() {
		database.DB = prev
		mock.Close()
	})

	svc := NewAuthService(
		repository.NewEmployeeRepository(),
		repository.NewCompanyRepository(),
		security.NewValidationService(security.DefaultSecurityConfig()),
		security.NewLogger(),
		"test-secret",
		time.Hour,
		bcrypt.MinCost,
	)
	return svc, mock
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthServiceWithMock(t)

	token, err := svc.issueToken(&models.Employee{
		Matricola:   "EMP001",
		Role:        models.RoleEmployee,
		CompanyCode: "ACME-01",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", claims.Matricola)
	assert.Equal(t, string(models.RoleEmployee), claims.Role)
	assert.Equal(t, "ACME-01", claims.CompanyCode)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthServiceWithMock(t)

	token, err := svc.issueToken(&models.Employee{Matricola: "EMP001", Role: models.RoleEmployee})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestLoginUnknownMatricola(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	mock.ExpectQuery("SELECT matricola, name, role, company_code").
		WithArgs("GHOST").
		WillReturnError(pgx.ErrNoRows)

	_, _, err := svc.Login(context.Background(), "GHOST", "Password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT matricola, name, role, company_code").
		WithArgs("EMP001").
		WillReturnRows(pgxmock.NewRows([]string{
			"matricola", "name", "role", "company_code", "hire_date", "password_hash", "created_at",
		}).AddRow("EMP001", "Mario Rossi", "Dipendente", "ACME-01", time.Now(), string(hash), time.Now()))

	_, _, err = svc.Login(context.Background(), "EMP001", "WrongPassword1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSuccess(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT matricola, name, role, company_code").
		WithArgs("EMP001").
		WillReturnRows(pgxmock.NewRows([]string{
			"matricola", "name", "role", "company_code", "hire_date", "password_hash", "created_at",
		}).AddRow("EMP001", "Mario Rossi", "Dipendente", "ACME-01", time.Now(), string(hash), time.Now()))

	token, employee, err := svc.Login(context.Background(), "EMP001", "Password1")
	require.NoError(t, err)
	require.NotNil(t, employee)
	assert.Equal(t, "EMP001", employee.Matricola)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", claims.Matricola)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newAuthServiceWithMock(t)

	_, _, err := svc.Login(context.Background(), "", "Password1")
	assert.Equal(t, apperrors.KindMissingField, apperrors.KindOf(err))

	_, _, err = svc.Login(context.Background(), "EMP001", "")
	assert.Equal(t, apperrors.KindMissingField, apperrors.KindOf(err))
}

func TestRegisterEmployeeDefaultsRole(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ACME-01").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO employees").
		WithArgs("EMP002", "Luca Bianchi", "Dipendente", "ACME-01", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	employee, err := svc.RegisterEmployee(context.Background(), models.RegisterEmployeeRequest{
		Matricola:   "EMP002",
		Name:        "Luca Bianchi",
		CompanyCode: "ACME-01",
		Password:    "Password1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, employee.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterEmployeeRejectsUnknownRole(t *testing.T) {
	svc, _ := newAuthServiceWithMock(t)

	_, err := svc.RegisterEmployee(context.Background(), models.RegisterEmployeeRequest{
		Matricola:   "EMP002",
		Name:        "Luca Bianchi",
		CompanyCode: "ACME-01",
		Password:    "Password1",
		Role:        "Stagista",
	})
	assert.Equal(t, apperrors.KindInvalidValue, apperrors.KindOf(err))
}

func TestRegisterEmployeeAcceptsRSPPAlias(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ACME-01").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO employees").
		WithArgs("RSPP1", "Anna Verdi", "ResponsabileSicurezza", "ACME-01", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	employee, err := svc.RegisterEmployee(context.Background(), models.RegisterEmployeeRequest{
		Matricola:   "RSPP1",
		Name:        "Anna Verdi",
		CompanyCode: "ACME-01",
		Password:    "Password1",
		Role:        "RSPP",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSafetyOfficer, employee.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}
