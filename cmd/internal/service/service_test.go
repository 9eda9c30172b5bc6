package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"providerrisk/cmd/internal/contract"
	"providerrisk/cmd/internal/domain/database/repository"
	"providerrisk/cmd/internal/infrastructure/credentials"
	"providerrisk/cmd/internal/service"
	"providerrisk/cmd/internal/testutil"
	"providerrisk/cmd/internal/utils/apierror"
	"providerrisk/cmd/internal/validators"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockScores struct {
	mock.Mock
}

func (m *mockScores) ObserveRiskScore(score int) {
	m.Called(score)
}

type services struct {
	db        *gorm.DB
	companies *service.DefaultCompanyService
	requests  *service.DefaultRequestService
	users     *service.DefaultUserService
	scores    *mockScores
}

func setup(t *testing.T) *services {
	t.Helper()

	db := testutil.SetupTestDB(t)
	validate := validators.New()
	companyRepo := repository.NewCompanyRepository(db)

	tokens, err := credentials.NewTokenService(credentials.TokenConfig{
		Secret: "test-secret",
		Issuer: "providerrisk-test",
		TTL:    time.Minute,
	})
	require.NoError(t, err)

	scores := &mockScores{}
	return &services{
		db:        db,
		companies: service.NewCompanyService(companyRepo, validate),
		requests:  service.NewRequestService(repository.NewRequestRepository(db), companyRepo, scores, validate),
		users: service.NewUserService(
			repository.NewUserRepository(db),
			credentials.NewPasswordHasher(bcrypt.MinCost),
			tokens,
			validate,
		),
		scores: scores,
	}
}

func (s *services) company(t *testing.T, name string) *contract.CompanyResponse {
	t.Helper()

	company, apierr := s.companies.CreateCompany(context.Background(), &contract.CreateCompanyRequest{Name: name})
	require.Nil(t, apierr)
	return company
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// problems extracts the field errors of a validation failure.
func problems(t *testing.T, apierr apierror.ErrorResponse) map[string][]string {
	t.Helper()

	require.NotNil(t, apierr)
	require.Equal(t, http.StatusBadRequest, apierr.Code())

	structured, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok, "expected a structured error, got %T", apierr)
	return structured.Errors
}
