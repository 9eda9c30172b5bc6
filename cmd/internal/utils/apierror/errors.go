package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// Empty reports whether no problem was added.
func (s *StructuredError) Empty() bool {
	return len(s.Errors) == 0
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	InvalidIDError = NewSimple(400, "The provided ID is invalid, IDs are UUIDs")

	DuplicateCompanyNameError = NewSimple(400, "A company with this name already exists")
	CompanyNotFoundError      = NewSimple(404, "Company not found")
	RequestNotFoundError      = NewSimple(404, "Request not found")

	/*
	 * Used for authentications
	 */
	UnauthorizedError        = NewSimple(401, "Not authenticated")
	EmailRegisteredError     = NewSimple(400, "Email already registered")
	CredentialsMismatchError = NewSimple(401, "Incorrect email or password")
)

// FromValidationError maps validator errors to a 400 keyed by the json path
// of each offending field (e.g. "risk_inputs.late_payments").
func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := fieldPath(fe)

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], minMessage(fe))
		case "max":
			problems[field] = append(problems[field], maxMessage(fe))
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "uuid":
			problems[field] = append(problems[field], "Value must be a valid UUID")
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+strings.Join(strings.Fields(fe.Param()), ", "))
		case "countrycode":
			problems[field] = append(problems[field], "Value must be a two letter country code")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}

	if ns == "" {
		ns = fe.Field()
	}
	return strings.ToLower(ns)
}

func minMessage(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return "Value is too short, min: " + fe.Param()
	}
	return "Value is too small, min: " + fe.Param()
}

func maxMessage(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return "Value is too long, max: " + fe.Param()
	}
	return "Value is too big, max: " + fe.Param()
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}
