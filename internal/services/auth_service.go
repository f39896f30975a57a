package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/repository"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/security"
)

// ErrInvalidCredentials is returned for any authentication failure. The
// message never reveals whether the matricola exists.
var ErrInvalidCredentials = apperrors.Forbidden("invalid credentials")

// Claims is the JWT payload issued on login.
type Claims struct {
	Matricola   string `json:"matricola"`
	Role        string `json:"role"`
	CompanyCode string `json:"companyCode"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login, and token issuance.
type AuthService struct {
	employees *repository.EmployeeRepository
	companies *repository.CompanyRepository
	validator *security.ValidationService
	logger    *security.Logger

	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(
	employees *repository.EmployeeRepository,
	companies *repository.CompanyRepository,
	validator *security.ValidationService,
	logger *security.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		employees:  employees,
		companies:  companies,
		validator:  validator,
		logger:     logger,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// HashPassword hashes a plaintext password at the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// RegisterCompany registers a company together with its first employer
// account. All inputs are validated before either row is written.
func (s *AuthService) RegisterCompany(ctx context.Context, req models.RegisterCompanyRequest) (*models.Employee, error) {
	if err := s.validator.ValidateCompanyCode(req.CompanyCode); err != nil {
		return nil, apperrors.InvalidValue("companyCode", err.Error())
	}
	if err := s.validator.ValidateVATNumber(req.VATNumber); err != nil {
		return nil, apperrors.InvalidValue("vatNumber", err.Error())
	}
	if req.LegalName == "" {
		return nil, apperrors.MissingField("legalName")
	}
	if err := s.validator.ValidateMatricola(req.EmployerMatricola); err != nil {
		return nil, apperrors.InvalidValue("employerMatricola", err.Error())
	}
	if err := s.validator.ValidatePassword(req.EmployerPassword); err != nil {
		return nil, apperrors.InvalidValue("employerPassword", err.Error())
	}

	exists, err := s.companies.Exists(ctx, req.CompanyCode)
	if err != nil {
		return nil, fmt.Errorf("check company %s: %w", req.CompanyCode, err)
	}
	if exists {
		return nil, apperrors.Conflict("company code already registered")
	}

	company := models.Company{
		CompanyCode: req.CompanyCode,
		LegalName:   req.LegalName,
		VATNumber:   req.VATNumber,
		Address:     req.Address,
		Contact:     req.Contact,
	}
	if err := s.companies.Create(ctx, &company); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	hash, err := s.HashPassword(req.EmployerPassword)
	if err != nil {
		return nil, err
	}

	employer := models.Employee{
		Matricola:    req.EmployerMatricola,
		Name:         req.EmployerName,
		Role:         models.RoleEmployer,
		CompanyCode:  req.CompanyCode,
		HireDate:     time.Now().UTC(),
		PasswordHash: hash,
	}
	if err := s.employees.Create(ctx, &employer); err != nil {
		return nil, fmt.Errorf("create employer account: %w", err)
	}

	s.logger.SecurityEvent(security.EventRegistration, &employer.Matricola, "", "", map[string]interface{}{
		"company_code": company.CompanyCode,
		"role":         string(employer.Role),
	})

	return &employer, nil
}

// RegisterEmployee registers an employee under an existing company. An
// omitted role defaults to Dipendente; an unrecognized one is rejected.
func (s *AuthService) RegisterEmployee(ctx context.Context, req models.RegisterEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.ValidateMatricola(req.Matricola); err != nil {
		return nil, apperrors.InvalidValue("matricola", err.Error())
	}
	if req.Name == "" {
		return nil, apperrors.MissingField("name")
	}
	if req.CompanyCode == "" {
		return nil, apperrors.MissingField("companyCode")
	}
	if err := s.validator.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.InvalidValue("password", err.Error())
	}

	role := models.RoleEmployee
	if req.Role != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok {
			return nil, apperrors.InvalidValue("role", fmt.Sprintf("unknown role %q", req.Role))
		}
		role = parsed
	}

	exists, err := s.companies.Exists(ctx, req.CompanyCode)
	if err != nil {
		return nil, fmt.Errorf("check company %s: %w", req.CompanyCode, err)
	}
	if !exists {
		return nil, apperrors.NotFound("company not found")
	}

	hireDate := time.Now().UTC()
	if req.HireDate != "" {
		hireDate, err = time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return nil, apperrors.InvalidValue("hireDate", "expected YYYY-MM-DD")
		}
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	employee := models.Employee{
		Matricola:    req.Matricola,
		Name:         req.Name,
		Role:         role,
		CompanyCode:  req.CompanyCode,
		HireDate:     hireDate,
		PasswordHash: hash,
	}
	if err := s.employees.Create(ctx, &employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.logger.SecurityEvent(security.EventRegistration, &employee.Matricola, "", "", map[string]interface{}{
		"company_code": employee.CompanyCode,
		"role":         string(employee.Role),
	})

	return &employee, nil
}

// Login verifies credentials and issues a signed access token. Unknown
// matricola and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, matricola, password string) (string, *models.Employee, error) {
	if matricola == "" {
		return "", nil, apperrors.MissingField("matricola")
	}
	if password == "" {
		return "", nil, apperrors.MissingField("password")
	}

	employee, err := s.employees.FindByMatricola(ctx, matricola)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(employee)
	if err != nil {
		return "", nil, err
	}
	return token, employee, nil
}

func (s *AuthService) issueToken(e *models.Employee) (string, error) {
	now := time.Now()
	claims := Claims{
		Matricola:   e.Matricola,
		Role:        string(e.Role),
		CompanyCode: e.CompanyCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   e.Matricola,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies an access token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
