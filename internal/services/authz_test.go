package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

func TestAuthorizeOwnerOrSupervisor(t *testing.T) {
	tests := []struct {
		name      string
		requester string
		role      models.Role
		target    string
		allowed   bool
	}{
		{"owner employee", "EMP001", models.RoleEmployee, "EMP001", true},
		{"other employee", "EMP001", models.RoleEmployee, "EMP002", false},
		{"employer on other", "BOSS1", models.RoleEmployer, "EMP002", true},
		{"safety officer on other", "RSPP1", models.RoleSafetyOfficer, "EMP002", true},
		{"maintainer on other", "MAN01", models.RoleMaintainer, "EMP002", false},
		{"maintainer on self", "MAN01", models.RoleMaintainer, "MAN01", true},
		{"employer on self", "BOSS1", models.RoleEmployer, "BOSS1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeOwnerOrSupervisor(tt.requester, tt.role, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
			}
		})
	}
}

func TestAuthorizeRole(t *testing.T) {
	assert.NoError(t, AuthorizeRole(models.RoleMaintainer, models.RoleMaintainer))
	assert.NoError(t, AuthorizeRole(models.RoleEmployer, models.RoleEmployer, models.RoleSafetyOfficer))

	err := AuthorizeRole(models.RoleEmployee, models.RoleMaintainer)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}
