package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestValidator() *ValidationService {
	return NewValidationService(DefaultSecurityConfig())
}

func TestValidateMatricola(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateMatricola("EMP001"))
	assert.NoError(t, v.ValidateMatricola("12345"))
	assert.NoError(t, v.ValidateMatricola("  EMP001  "), "surrounding whitespace is trimmed")

	assert.Error(t, v.ValidateMatricola(""))
	assert.Error(t, v.ValidateMatricola("ab"))
	assert.Error(t, v.ValidateMatricola("EMP 001"))
	assert.Error(t, v.ValidateMatricola("EMP-001"))
	assert.Error(t, v.ValidateMatricola(strings.Repeat("A", 21)))
}

func TestValidateCompanyCode(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateCompanyCode("ACME-01"))
	assert.Error(t, v.ValidateCompanyCode(""))
	assert.Error(t, v.ValidateCompanyCode("A B"))
}

func TestValidateVATNumber(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateVATNumber("12345678901"))
	assert.Error(t, v.ValidateVATNumber("1234567890"))
	assert.Error(t, v.ValidateVATNumber("1234567890a"))
	assert.Error(t, v.ValidateVATNumber(""))
}

func TestValidatePassword(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidatePassword("Password1"))

	assert.Error(t, v.ValidatePassword(""))
	assert.Error(t, v.ValidatePassword("Pass1"), "too short")
	assert.Error(t, v.ValidatePassword("password1"), "no uppercase")
	assert.Error(t, v.ValidatePassword("PASSWORD1"), "no lowercase")
	assert.Error(t, v.ValidatePassword("Passwords"), "no digit")
}

func TestValidateTitleAndDescriptionCaps(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateTitle("Scala rotta"))
	assert.Error(t, v.ValidateTitle(""))
	assert.Error(t, v.ValidateTitle(strings.Repeat("x", 201)))

	assert.NoError(t, v.ValidateDescription(""))
	assert.Error(t, v.ValidateDescription(strings.Repeat("x", 10001)))
}

func TestValidateAttachmentSize(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateAttachmentSize(1024))
	assert.Error(t, v.ValidateAttachmentSize(0))
	assert.Error(t, v.ValidateAttachmentSize(11*1024*1024))
}
