package validators

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Country  string `json:"country" validate:"omitempty,countrycode"`
	Password string `json:"password,omitempty" validate:"omitempty,password"`
	Plain    string `validate:"omitempty,max=1"`
}

func TestCountryCode(t *testing.T) {
	validate := New()

	for _, code := range []string{"CL", "us", "Ar"} {
		assert.NoError(t, validate.Struct(&sample{Country: code}), code)
	}

	for _, code := range []string{"C", "CHL", "C1", "ñа", "  "} {
		assert.Error(t, validate.Struct(&sample{Country: code}), code)
	}
}

func TestPasswordValidator(t *testing.T) {
	validate := New()

	assert.NoError(t, validate.Struct(&sample{Password: "admin123"}))
	assert.NoError(t, validate.Struct(&sample{Password: "password"}))

	for _, pwd := range []string{"short1", "        ", string(make([]byte, 73))} {
		assert.Error(t, validate.Struct(&sample{Password: pwd}))
	}
}

func TestFieldNamesFollowJSON(t *testing.T) {
	validate := New()

	err := validate.Struct(&sample{Country: "CHL", Plain: "yy"})
	require.Error(t, err)

	var ve validator.ValidationErrors
	require.True(t, errors.As(err, &ve))

	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"country", "Plain"}, fields)
}
