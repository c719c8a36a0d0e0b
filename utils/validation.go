package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is the singleton validator instance
	validate *validator.Validate

	// emailRegex mirrors the loose check the sign-in form applies
	emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

	upperRegex       = regexp.MustCompile(`[A-Z]`)
	lowerRegex       = regexp.MustCompile(`[a-z]`)
	digitSymbolRegex = regexp.MustCompile(`[0-9_!@#$%^&*()\-+=]`)
)

// MinPasswordLength is the shortest accepted new password
const MinPasswordLength = 8

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("loginemail", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String()) == nil
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationError(validationErrors)
		}
		return err
	}
	return nil
}

// ValidationError wraps validation errors with structured details
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, msg := range e.Fields {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(msgs, "; "))
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		tag := err.Tag()

		switch tag {
		case "required", "notblank":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "email", "loginemail":
			fields[field] = fmt.Sprintf("%s must be a valid email", field)
		case "password":
			fields[field] = fmt.Sprintf("%s must be at least %d characters with an uppercase letter, a lowercase letter and a digit or symbol", field, MinPasswordLength)
		case "url":
			fields[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "len":
			fields[field] = fmt.Sprintf("%s must be exactly %s characters", field, err.Param())
		case "alpha":
			fields[field] = fmt.Sprintf("%s must contain letters only", field)
		case "min":
			fields[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "gt":
			fields[field] = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "gte":
			fields[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
		case "lte":
			fields[field] = fmt.Sprintf("%s must be less than or equal to %s", field, err.Param())
		case "oneof":
			fields[field] = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		default:
			fields[field] = fmt.Sprintf("%s validation failed on '%s' tag", field, tag)
		}
	}

	return &ValidationError{
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewFieldError creates a ValidationError for a single field
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{
		Message: "Validation failed",
		Fields:  map[string]string{field: message},
	}
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// GetValidationFields extracts field errors from a ValidationError
func GetValidationFields(err error) map[string]string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}

// ValidateEmail validates that a string looks like an email
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidatePassword checks the strength rule applied to new passwords
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	case !upperRegex.MatchString(password):
		return errors.New("password must contain an uppercase letter")
	case !lowerRegex.MatchString(password):
		return errors.New("password must contain a lowercase letter")
	case !digitSymbolRegex.MatchString(password):
		return errors.New("password must contain a digit or symbol")
	}
	return nil
}

// PasswordChecks reports each strength criterion separately, in display order
func PasswordChecks(password string) []PasswordCheck {
	return []PasswordCheck{
		{Label: fmt.Sprintf("At least %d characters", MinPasswordLength), OK: len(password) >= MinPasswordLength},
		{Label: "One uppercase letter", OK: upperRegex.MatchString(password)},
		{Label: "One lowercase letter", OK: lowerRegex.MatchString(password)},
		{Label: "One digit or symbol", OK: digitSymbolRegex.MatchString(password)},
	}
}

// PasswordCheck is one password strength criterion
type PasswordCheck struct {
	Label string
	OK    bool
}

// ValidateRequired validates that a string is not blank
func ValidateRequired(value string, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}
