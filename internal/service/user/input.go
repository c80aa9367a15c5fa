package user

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/pudiya/internal/domain"
)

const maxNameLength = 100

// UpdateProfileInput holds parameters for profile update operation.
type UpdateProfileInput struct {
	Name string
}

func (i UpdateProfileInput) normalize() UpdateProfileInput {
	i.Name = strings.TrimSpace(i.Name)
	return i
}

// Validate validates the update profile input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(i.Name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
