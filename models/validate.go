package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports input that cannot be turned into a consistent request
type ValidationError struct {
	Field  string
	Reason string
}

func (s *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", s.Field, s.Reason)
}

var validate = validator.New()

// Validate checks the struct tags of data and reports the first failing field
func Validate(data interface{}) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fieldErr := validationErrs[0]
			return &ValidationError{
				Field:  fieldErr.Field(),
				Reason: strings.TrimSpace(fmt.Sprintf("must satisfy %s %s", fieldErr.Tag(), fieldErr.Param())),
			}
		}
		return &ValidationError{Field: fmt.Sprintf("%T", data), Reason: err.Error()}
	}
	return nil
}
