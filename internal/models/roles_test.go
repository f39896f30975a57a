package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"Dipendente", RoleEmployee, true},
		{"dipendente", RoleEmployee, true},
		{"ResponsabileSicurezza", RoleSafetyOfficer, true},
		{"RSPP", RoleSafetyOfficer, true},
		{"rspp", RoleSafetyOfficer, true},
		{" DatoreDiLavoro ", RoleEmployer, true},
		{"Manutentore", RoleMaintainer, true},
		{"Stagista", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestIsSupervisor(t *testing.T) {
	assert.True(t, RoleEmployer.IsSupervisor())
	assert.True(t, RoleSafetyOfficer.IsSupervisor())
	assert.False(t, RoleEmployee.IsSupervisor())
	assert.False(t, RoleMaintainer.IsSupervisor())
}
