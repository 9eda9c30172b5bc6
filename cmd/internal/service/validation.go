package service

import (
	"net/http"

	"providerrisk/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const nullNotAllowed = "This field cannot be null"

// validateStruct wraps Validate.Struct, nil means the value is valid.
func validateStruct(validate *validator.Validate, v any) *apierror.StructuredError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	if structured := apierror.FromValidationError(err); structured != nil {
		return structured
	}

	// Only reachable with a programming error (e.g. a nil pointer).
	log.Errorf("unexpected validation failure for %T: %v", v, err)
	problems := apierror.NewStructured(http.StatusBadRequest)
	problems.Add("body", "Invalid value provided")
	return problems
}

// merge adds the problems of other into s, allocating s when needed.
func merge(s, other *apierror.StructuredError) *apierror.StructuredError {
	if other == nil || other.Empty() {
		return s
	}

	if s == nil {
		s = apierror.NewStructured(http.StatusBadRequest)
	}

	for field, problems := range other.Errors {
		for _, problem := range problems {
			s.Add(field, problem)
		}
	}
	return s
}

func isValidID(id string) bool {
	return uuid.Validate(id) == nil
}
