// Package services holds the WorkSafe business rules: authorization,
// training progress, quiz grading, incident lifecycle, and authentication.
// Services validate inputs, enforce role and ownership policy, and return
// typed domain errors; they never talk HTTP.
package services

import (
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/apperrors"
	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/models"
)

// AuthorizeOwnerOrSupervisor grants access to an employee-scoped record when
// the requester is the record's owner, or holds a supervisory role
// (DatoreDiLavoro or ResponsabileSicurezza) regardless of ownership.
// Maintainers get no blanket read access through this path; their elevated
// rights are scoped to the incident and resource status workflows.
func AuthorizeOwnerOrSupervisor(requesterID string, requesterRole models.Role, targetID string) error {
	if requesterID == targetID {
		return nil
	}
	if requesterRole.IsSupervisor() {
		return nil
	}
	return apperrors.Forbidden("access restricted to the record owner or a supervisor")
}

// AuthorizeRole grants access when the requester holds one of the allowed
// roles.
func AuthorizeRole(requesterRole models.Role, allowed ...models.Role) error {
	for _, role := range allowed {
		if requesterRole == role {
			return nil
		}
	}
	return apperrors.Forbidden("role not permitted for this operation")
}
