package router_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"providerrisk/cmd/internal/domain/database/repository"
	"providerrisk/cmd/internal/http/handler"
	"providerrisk/cmd/internal/http/router"
	"providerrisk/cmd/internal/infrastructure/credentials"
	"providerrisk/cmd/internal/infrastructure/metrics"
	"providerrisk/cmd/internal/service"
	"providerrisk/cmd/internal/testutil"
	"providerrisk/cmd/internal/validators"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupServer(t *testing.T) *echo.Echo {
	t.Helper()

	db := testutil.SetupTestDB(t)
	validate := validators.New()
	m := metrics.New()

	tokens, err := credentials.NewTokenService(credentials.TokenConfig{
		Secret: "test-secret",
		Issuer: "providerrisk-test",
		TTL:    time.Minute,
	})
	require.NoError(t, err)

	companyRepo := repository.NewCompanyRepository(db)
	users := service.NewUserService(
		repository.NewUserRepository(db),
		credentials.NewPasswordHasher(bcrypt.MinCost),
		tokens,
		validate,
	)
	companies := service.NewCompanyService(companyRepo, validate)
	requests := service.NewRequestService(repository.NewRequestRepository(db), companyRepo, m, validate)

	e := router.New(router.Config{
		Companies:     handler.NewCompanyDefault(companies),
		Requests:      handler.NewRequestDefault(requests),
		Auth:          handler.NewAuthDefault(users),
		Authenticator: users,
		Metrics:       m,
	})
	return e
}

// login registers a user and signs in through the OAuth2 password form.
func login(t *testing.T, e *echo.Echo) string {
	t.Helper()

	rec := testutil.DoRequest(e, http.MethodPost, "/auth/register", map[string]any{
		"email":    "requests_test@example.com",
		"password": "password",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, testutil.StatusText(rec))

	form := url.Values{"username": {"requests_test@example.com"}, "password": {"password"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, testutil.StatusText(rec))

	body := testutil.ParseResponse(t, rec)
	assert.Equal(t, "bearer", body["token_type"])
	return body["access_token"].(string)
}

func createCompany(t *testing.T, e *echo.Echo, token, name string) string {
	t.Helper()

	rec := testutil.DoRequest(e, http.MethodPost, "/companies/", map[string]any{"name": name}, token)
	require.Equal(t, http.StatusCreated, rec.Code, testutil.StatusText(rec))
	return testutil.ParseResponse(t, rec)["id"].(string)
}

func TestPublicRoutes(t *testing.T) {
	e := setupServer(t)

	rec := testutil.DoRequest(e, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, testutil.ParseResponse(t, rec)["message"])

	rec = testutil.DoRequest(e, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := setupServer(t)

	for _, path := range []string{"/companies", "/companies/", "/requests"} {
		rec := testutil.DoRequest(e, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := testutil.DoRequest(e, http.MethodGet, "/companies", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth(t *testing.T) {
	e := setupServer(t)
	login(t, e)

	rec := testutil.DoRequest(e, http.MethodPost, "/auth/register", map[string]any{
		"email":    "requests_test@example.com",
		"password": "password",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.DoRequest(e, http.MethodPost, "/auth/login", map[string]any{
		"username": "requests_test@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = testutil.DoRequest(e, http.MethodPost, "/auth/login", map[string]any{
		"username": "requests_test@example.com",
		"password": "password",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := testutil.ParseResponse(t, rec)["access_token"].(string)

	rec = testutil.DoRequest(e, http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, testutil.StatusText(rec))
	me := testutil.ParseResponse(t, rec)
	assert.Equal(t, "requests_test@example.com", me["email"])
	assert.Equal(t, "analyst", me["role"])
	assert.NotContains(t, me, "password_hash")

	rec = testutil.DoRequest(e, http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCompanyLifecycle(t *testing.T) {
	e := setupServer(t)
	token := login(t, e)
	id := createCompany(t, e, token, "Test Co")

	rec := testutil.DoRequest(e, http.MethodPost, "/companies", map[string]any{"name": "Test Co"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.DoRequest(e, http.MethodGet, "/companies?page=1&page_size=5&q=test", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	page := testutil.ParseResponse(t, rec)
	assert.EqualValues(t, 1, page["total"])
	assert.EqualValues(t, 1, page["page"])
	assert.EqualValues(t, 5, page["page_size"])
	assert.Len(t, page["items"], 1)

	rec = testutil.DoRequest(e, http.MethodPatch, "/companies/"+id, map[string]any{"country": "us", "tax_id": "12-3456789"}, token)
	require.Equal(t, http.StatusOK, rec.Code, testutil.StatusText(rec))
	body := testutil.ParseResponse(t, rec)
	assert.Equal(t, "US", body["country"])
	assert.Equal(t, "12-3456789", body["tax_id"])
	assert.Equal(t, "Test Co", body["name"])

	rec = testutil.DoRequest(e, http.MethodDelete, "/companies/"+id, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = testutil.DoRequest(e, http.MethodGet, "/companies/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testutil.DoRequest(e, http.MethodDelete, "/companies/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompanyBadInput(t *testing.T) {
	e := setupServer(t)
	token := login(t, e)

	rec := testutil.DoRequest(e, http.MethodGet, "/companies?page=abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.DoRequest(e, http.MethodGet, "/companies?page_size=1000", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.DoRequest(e, http.MethodGet, "/companies?page=9223372036854775807&page_size=100", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.DoRequest(e, http.MethodGet, "/requests?page=9223372036854775807", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.DoRequest(e, http.MethodGet, "/companies?page=1000000&page_size=100", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, testutil.ParseResponse(t, rec)["items"])

	rec = testutil.DoRequest(e, http.MethodGet, "/companies/123", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestLifecycle(t *testing.T) {
	e := setupServer(t)
	token := login(t, e)
	companyID := createCompany(t, e, token, "Test Co for Requests")

	rec := testutil.DoRequest(e, http.MethodPost, "/requests/", map[string]any{
		"company_id":  companyID,
		"risk_inputs": map[string]any{"pep_flag": true, "sanction_list": false, "late_payments": 1},
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, testutil.StatusText(rec))
	created := testutil.ParseResponse(t, rec)
	assert.EqualValues(t, 70, created["risk_score"])
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, companyID, created["company"].(map[string]any)["id"])
	id := created["id"].(string)

	rec = testutil.DoRequest(e, http.MethodGet, "/requests", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	page := testutil.ParseResponse(t, rec)
	assert.EqualValues(t, 1, page["total"])
	item := page["items"].([]any)[0].(map[string]any)
	assert.Equal(t, companyID, item["company"].(map[string]any)["id"])

	rec = testutil.DoRequest(e, http.MethodGet, "/requests?q=requests&status=pending&risk_min=70&risk_max=70", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, testutil.ParseResponse(t, rec)["total"])

	rec = testutil.DoRequest(e, http.MethodGet, "/requests?risk_min=71", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, testutil.ParseResponse(t, rec)["total"])

	rec = testutil.DoRequest(e, http.MethodGet, "/requests?risk_max=high", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.DoRequest(e, http.MethodPut, "/requests/"+id, map[string]any{
		"status":      "approved",
		"risk_inputs": map[string]any{"sanction_list": true},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, testutil.StatusText(rec))
	updated := testutil.ParseResponse(t, rec)
	assert.Equal(t, "approved", updated["status"])
	assert.EqualValues(t, 40, updated["risk_score"])

	rec = testutil.DoRequest(e, http.MethodGet, "/requests/"+id, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 40, testutil.ParseResponse(t, rec)["risk_score"])

	rec = testutil.DoRequest(e, http.MethodDelete, "/requests/"+id, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = testutil.DoRequest(e, http.MethodGet, "/requests/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testutil.DoRequest(e, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "providerrisk_risk_score_count 2")
	assert.Contains(t, rec.Body.String(), `route="/requests/:id"`)
}

func TestRequestForUnknownCompany(t *testing.T) {
	e := setupServer(t)
	token := login(t, e)

	rec := testutil.DoRequest(e, http.MethodPost, "/requests", map[string]any{
		"company_id":  "8c8a8e5e-0000-4000-8000-000000000000",
		"risk_inputs": map[string]any{},
	}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
