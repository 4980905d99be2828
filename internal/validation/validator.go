package validation

import (
	"regexp"
	"roadmap-checkup/internal/domain"
	"strings"
	"time"
)

const (
	maxNameLength     = 100
	maxCommentsLength = 2000
	dateLayout        = "2006-01-02"
)

var (
	validULID        = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	validProgramCode = regexp.MustCompile(`^[FM][FR](20|30|40|50)$`)
	validEmail       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	validPhone       = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID checks the quiz session id path parameter.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}
	return errors
}

// ValidateProgramCode checks a 4-character program code such as FF30.
func (v *Validator) ValidateProgramCode(code string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(code) == "" {
		errors = append(errors, domain.NewMissingFieldError("code"))
	} else if !validProgramCode.MatchString(code) {
		errors = append(errors, domain.NewInvalidFormatError("code", code))
	}
	return errors
}

// ValidateProfile validates the first quiz step.
func (v *Validator) ValidateProfile(gender domain.Gender, age int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if gender == domain.GenderUnset {
		errors = append(errors, domain.NewMissingFieldError("gender"))
	} else if !gender.Valid() {
		errors = append(errors, domain.NewInvalidFormatError("gender", string(gender)))
	}
	if age < domain.MinAge || age > domain.MaxAge {
		errors = append(errors, domain.NewOutOfRangeError("age", age, domain.MinAge, domain.MaxAge))
	}
	return errors
}

// ValidateExamType validates the second quiz step.
func (v *Validator) ValidateExamType(examType domain.ExamType) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if examType == domain.ExamUnset {
		errors = append(errors, domain.NewMissingFieldError("exam_type"))
	} else if !examType.Valid() {
		errors = append(errors, domain.NewInvalidFormatError("exam_type", string(examType)))
	}
	return errors
}

// ValidateContact checks the shape of contact form values. Empty values are
// allowed here; completeness is checked on submission.
func (v *Validator) ValidateContact(a domain.QuizAnswers, now time.Time) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(a.Name) > maxNameLength {
		errors = append(errors, domain.NewOutOfRangeError("name", len(a.Name), 1, maxNameLength))
	}
	if a.Phone != "" && !validPhone.MatchString(a.Phone) {
		errors = append(errors, domain.NewInvalidFormatError("phone", a.Phone))
	}
	if a.Email != "" && !validEmail.MatchString(a.Email) {
		errors = append(errors, domain.NewInvalidFormatError("email", a.Email))
	}
	if !a.PreferredClinic.Valid() {
		errors = append(errors, domain.NewInvalidFormatError("preferred_clinic", string(a.PreferredClinic)))
	}
	if !a.RequestType.Valid() {
		errors = append(errors, domain.NewInvalidFormatError("request_type", string(a.RequestType)))
	}
	if len(a.Comments) > maxCommentsLength {
		errors = append(errors, domain.NewOutOfRangeError("comments", len(a.Comments), 0, maxCommentsLength))
	}
	errors = append(errors, validateDate("preferred_date1", a.PreferredDate1, now)...)
	errors = append(errors, validateDate("preferred_date2", a.PreferredDate2, now)...)

	return errors
}

// ValidateLeadSubmission checks that a lead can be sent: name and phone are
// required, and a clinic must be picked unless the consultation is individual.
func (v *Validator) ValidateLeadSubmission(a domain.QuizAnswers, now time.Time) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(a.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	}
	if strings.TrimSpace(a.Phone) == "" {
		errors = append(errors, domain.NewMissingFieldError("phone"))
	}
	if a.ExamType != domain.ExamIndividual && a.PreferredClinic == domain.ClinicUnset {
		errors = append(errors, domain.NewMissingFieldError("preferred_clinic"))
	}

	for _, e := range v.ValidateContact(a, now) {
		if !errors.HasField(e.Field) {
			errors = append(errors, e)
		}
	}
	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	return len(s) == 26 && validULID.MatchString(s)
}

// validateDate accepts an empty value or a YYYY-MM-DD date that is not in the past.
func validateDate(field, value string, now time.Time) domain.ValidationErrors {
	if value == "" {
		return nil
	}
	date, err := time.ParseInLocation(dateLayout, value, now.Location())
	if err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, value)}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return domain.ValidationErrors{{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: "date must not be in the past",
			Value:   value,
		}}
	}
	return nil
}
