package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateNewLead(input entity.NewLead) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Status != "" && !input.Status.Valid() {
		errors = append(errors, ValidationError{"status", "is not a known status"})
	}

	if input.Source != "" && !input.Source.Valid() {
		errors = append(errors, ValidationError{"source", "is not a known source"})
	}

	if input.Value != nil && *input.Value < 0 {
		errors = append(errors, ValidationError{"value", "must not be negative"})
	}

	return errors
}
