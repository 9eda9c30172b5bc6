package validators

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	PasswordMinLength = 8
	// PasswordMaxLength is bcrypt's input limit, in bytes.
	PasswordMaxLength = 72
)

// New returns a validator that reports fields by their json name and knows
// the custom tags used by the contracts.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	mustRegister(validate, "countrycode", CountryCode)
	mustRegister(validate, "password", PasswordValidator)
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validators: failed to register " + tag + ": " + err.Error())
	}
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// CountryCode accepts ISO 3166-1 alpha-2 shaped codes: two ASCII letters, any case.
func CountryCode(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	code := field.String()
	if len(code) != 2 {
		return false
	}

	for i := 0; i < len(code); i++ {
		ch := code[i]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return true
}

// PasswordValidator bounds the length to what bcrypt accepts and rejects blank passwords.
func PasswordValidator(fl validator.FieldLevel) bool {
	password, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	length := len(password)
	if length < PasswordMinLength || length > PasswordMaxLength {
		return false
	}
	return strings.TrimFunc(password, unicode.IsSpace) != ""
}
