// Package models defines the domain entities and data transfer objects for
// WorkSafe. It includes database models mapped to PostgreSQL tables, request
// DTOs, and response view models.
package models

import "strings"

// Role is the closed set of employee roles. Roles are stored and compared in
// their canonical Italian form; free-form role strings are rejected at the
// boundary so typo-class bugs cannot reach authorization checks.
type Role string

const (
	// RoleEmployee is the default role assigned at registration.
	RoleEmployee Role = "Dipendente"

	// RoleSafetyOfficer can create resources and act on other employees'
	// training records.
	RoleSafetyOfficer Role = "ResponsabileSicurezza"

	// RoleEmployer can manage employees and act on their training records.
	RoleEmployer Role = "DatoreDiLavoro"

	// RoleMaintainer can change incident-report and resource statuses.
	RoleMaintainer Role = "Manutentore"
)

// roleAliases maps accepted input spellings (lower-cased) to canonical roles.
// "RSPP" is the customary abbreviation for the safety officer role and is
// treated as a synonym on input; only the canonical form is ever stored.
var roleAliases = map[string]Role{
	"dipendente":            RoleEmployee,
	"responsabilesicurezza": RoleSafetyOfficer,
	"rspp":                  RoleSafetyOfficer,
	"datoredilavoro":        RoleEmployer,
	"manutentore":           RoleMaintainer,
}

// ParseRole canonicalizes a raw role string. The second return value is
// false when the input is not a recognized role or alias.
func ParseRole(raw string) (Role, bool) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]
	return role, ok
}

// IsSupervisor reports whether the role may act on another employee's
// records. Only the employer and safety officer roles qualify; the
// maintainer role is deliberately excluded (it has its own, separate policy
// on the incident-status path).
func (r Role) IsSupervisor() bool {
	return r == RoleEmployer || r == RoleSafetyOfficer
}

func (r Role) String() string { return string(r) }
