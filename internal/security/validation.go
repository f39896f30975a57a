package security

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationService provides centralized input validation. All methods
// return descriptive errors safe to show to users.
type ValidationService struct {
	config *SecurityConfig
}

// NewValidationService creates a validation service.
func NewValidationService(config *SecurityConfig) *ValidationService {
	return &ValidationService{config: config}
}

// matricolaPattern: alphanumeric employee ids, 3-20 characters, letters
// first by convention but digits-only ids from legacy imports are accepted.
var matricolaPattern = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)

// ValidateMatricola validates an employee identifier.
func (v *ValidationService) ValidateMatricola(matricola string) error {
	matricola = strings.TrimSpace(matricola)
	if matricola == "" {
		return fmt.Errorf("matricola is required")
	}
	if !matricolaPattern.MatchString(matricola) {
		return fmt.Errorf("matricola must be 3-20 alphanumeric characters")
	}
	return nil
}

var companyCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]{3,20}$`)

// ValidateCompanyCode validates a company code.
func (v *ValidationService) ValidateCompanyCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("company code is required")
	}
	if !companyCodePattern.MatchString(code) {
		return fmt.Errorf("company code must be 3-20 alphanumeric characters")
	}
	return nil
}

// ValidateVATNumber validates an Italian VAT identifier (11 digits).
func (v *ValidationService) ValidateVATNumber(vat string) error {
	vat = strings.TrimSpace(vat)
	if vat == "" {
		return fmt.Errorf("VAT number is required")
	}
	if matched, _ := regexp.MatchString(`^\d{11}$`, vat); !matched {
		return fmt.Errorf("VAT number must be 11 digits")
	}
	return nil
}

// ValidatePassword validates password strength: at least 8 characters with
// an uppercase letter, a lowercase letter, and a digit.
func (v *ValidationService) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must be less than 128 characters")
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}

// ValidateTitle validates incident/announcement/resource titles against the
// configured length cap.
func (v *ValidationService) ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > v.config.MaxTitleLength {
		return fmt.Errorf("title must be %d characters or less", v.config.MaxTitleLength)
	}
	return nil
}

// ValidateDescription validates free-text descriptions against the
// configured length cap. Empty descriptions are allowed.
func (v *ValidationService) ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > v.config.MaxDescriptionLength {
		return fmt.Errorf("description must be %d characters or less", v.config.MaxDescriptionLength)
	}
	return nil
}

// ValidateAttachmentSize validates an uploaded attachment's size.
func (v *ValidationService) ValidateAttachmentSize(size int) error {
	if size == 0 {
		return fmt.Errorf("attachment is empty")
	}
	if size > v.config.MaxAttachmentSize {
		return fmt.Errorf("attachment must be %d bytes or less", v.config.MaxAttachmentSize)
	}
	return nil
}
