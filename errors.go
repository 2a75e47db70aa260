package ferropb

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ConfigError reports one or more invalid Config fields.
type ConfigError struct {
	// Details maps each failing field to a human-readable description
	// of the problem.
	Details map[string]string

	message string
}

// Error returns the combined per-field messages.
func (e *ConfigError) Error() string {
	return e.message
}

// newConfigError converts validator errors into a ConfigError.
func newConfigError(verrs validator.ValidationErrors) *ConfigError {
	details := make(map[string]string)
	var messages []string
	for _, ve := range verrs {
		msg := formatValidationError(ve)
		details[ve.Field()] = msg
		messages = append(messages, ve.Field()+": "+msg)
	}
	return &ConfigError{
		Details: details,
		message: "invalid config: " + strings.Join(messages, "; "),
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "required_without":
		return fmt.Sprintf("required when %s is not set", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
