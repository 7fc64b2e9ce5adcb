package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ijpettengill/jobly/internal/api/http/handlers"
	"github.com/ijpettengill/jobly/internal/auth"
	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/internal/observability"
	"github.com/ijpettengill/jobly/internal/repository"
	"github.com/ijpettengill/jobly/internal/service"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

const testSecret = "secret-test"

type stubAuth struct {
	tokens *auth.TokenManager
}

func (s *stubAuth) Register(_ context.Context, input service.RegisterInput) (string, error) {
	if input.Username == "taken" {
		return "", apperrors.NewConflict("user already exists", map[string]any{"username": input.Username})
	}
	return s.tokens.Issue(input.Username, false)
}

func (s *stubAuth) Login(_ context.Context, username, password string) (string, error) {
	if username != "u1" || password != "password1" {
		return "", apperrors.NewUnauthorized("invalid username/password")
	}
	return s.tokens.Issue(username, false)
}

type stubCompanies struct {
	lastFilter repository.CompanyFilter
	lastFields []sqlutil.Field
}

func (s *stubCompanies) Create(_ context.Context, company *domain.Company) error { return nil }

func (s *stubCompanies) FindAll(_ context.Context, filter repository.CompanyFilter) ([]domain.Company, error) {
	s.lastFilter = filter
	return []domain.Company{{Handle: "c1", Name: "C1"}}, nil
}

func (s *stubCompanies) Get(_ context.Context, handle string) (*domain.Company, error) {
	if handle != "c1" {
		return nil, apperrors.NewNotFound("company", map[string]any{"handle": handle})
	}
	return &domain.Company{Handle: "c1", Name: "C1", Jobs: []domain.Job{{ID: 1, Title: "J1", CompanyHandle: "c1"}}}, nil
}

func (s *stubCompanies) Update(_ context.Context, handle string, fields []sqlutil.Field) (*domain.Company, error) {
	s.lastFields = fields
	if _, err := sqlutil.PartialUpdate(fields, nil); err != nil {
		return nil, err
	}
	return &domain.Company{Handle: handle, Name: "New"}, nil
}

func (s *stubCompanies) Remove(_ context.Context, handle string) error { return nil }

type stubJobs struct {
	lastFilter repository.JobFilter
	lastActor  string
}

func (s *stubJobs) Create(_ context.Context, job *domain.Job, actor string) error {
	s.lastActor = actor
	job.ID = 42
	return nil
}

func (s *stubJobs) List(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	s.lastFilter = filter
	return nil, nil
}

func (s *stubJobs) Get(_ context.Context, id int) (*domain.Job, error) {
	if id != 1 {
		return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
	}
	return &domain.Job{ID: 1, Title: "J1", CompanyHandle: "c1"}, nil
}

func (s *stubJobs) Update(_ context.Context, id int, fields []sqlutil.Field) (*domain.Job, error) {
	return &domain.Job{ID: id, Title: "J1"}, nil
}

func (s *stubJobs) Remove(_ context.Context, id int, actor string) error {
	s.lastActor = actor
	return nil
}

type stubUsers struct {
	applied map[string][]int
}

func (s *stubUsers) Create(_ context.Context, input service.RegisterInput, isAdmin bool) (*domain.User, string, error) {
	return &domain.User{Username: input.Username, IsAdmin: isAdmin}, "tok", nil
}

func (s *stubUsers) FindAll(_ context.Context) ([]domain.User, error) {
	return []domain.User{{Username: "u1"}, {Username: "u2"}}, nil
}

func (s *stubUsers) Get(_ context.Context, username string) (*domain.User, error) {
	return &domain.User{Username: username, Jobs: s.applied[username]}, nil
}

func (s *stubUsers) Update(_ context.Context, username string, fields []sqlutil.Field) (*domain.User, error) {
	return &domain.User{Username: username}, nil
}

func (s *stubUsers) Remove(_ context.Context, username string) error { return nil }

func (s *stubUsers) Apply(_ context.Context, username string, jobID int) error {
	s.applied[username] = append(s.applied[username], jobID)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app       *fiber.App
	tokens    *auth.TokenManager
	companies *stubCompanies
	jobs      *stubJobs
	users     *stubUsers
}

func newTestServer(t *testing.T, deps map[string]handlers.Pinger) *testServer {
	t.Helper()
	logger := zap.NewNop()
	tokens := auth.NewTokenManager(testSecret, 0)
	s := &testServer{
		app:       fiber.New(),
		tokens:    tokens,
		companies: &stubCompanies{},
		jobs:      &stubJobs{},
		users:     &stubUsers{applied: map[string][]int{}},
	}
	metrics := observability.NewMetrics()
	RegisterMiddlewares(s.app, logger, metrics, 0)
	RegisterRoutes(s.app, RouteConfig{
		Health:         handlers.NewHealthHandler("jobly", "test", deps),
		Auth:           handlers.NewAuthHandler(&stubAuth{tokens: tokens}),
		Companies:      handlers.NewCompaniesHandler(s.companies),
		Jobs:           handlers.NewJobsHandler(s.jobs),
		Users:          handlers.NewUsersHandler(s.users),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		Metrics:        metrics,
	})
	return s
}

func (s *testServer) token(t *testing.T, username string, isAdmin bool) string {
	t.Helper()
	token, err := s.tokens.Issue(username, isAdmin)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, map[string]handlers.Pinger{"postgres": fakePinger{}, "redis": fakePinger{err: errors.New("dial tcp: refused")}})

	resp, body := s.do(t, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])

	resp, body = s.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", errorCode(body))
}

func TestRequestIDAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	resp, _ := s.do(t, http.MethodGet, "/jobs/1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/jobs/1", nil)
	req.Header.Set(HeaderRequestID, "abc")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Header.Get(HeaderRequestID))

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `jobly_http_requests_total{method="GET",route="/jobs/:id",status="200"} 2`)
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, apperrors.CodeNotFound, errorCode(body))
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodPost, "/auth/token", "", `{"username":"u1","password":"password1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	identity, err := s.tokens.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.Username)

	resp, body = s.do(t, http.MethodPost, "/auth/token", "", `{"username":"u1","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeUnauthorized, errorCode(body))

	resp, body = s.do(t, http.MethodPost, "/auth/token", "", `{"username":"u1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperrors.CodeValidation, errorCode(body))

	register := `{"username":"new","password":"password","firstName":"f","lastName":"l","email":"new@email.com"}`
	resp, body = s.do(t, http.MethodPost, "/auth/register", "", register)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	taken := strings.Replace(register, `"new"`, `"taken"`, 1)
	resp, body = s.do(t, http.MethodPost, "/auth/register", "", taken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, apperrors.CodeConflict, errorCode(body))
}

func TestCompanyRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.token(t, "admin", true)
	user := s.token(t, "u1", false)

	resp, body := s.do(t, http.MethodGet, "/companies?name=c&minEmployees=2", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["companies"], 1)
	require.NotNil(t, s.companies.lastFilter.NameLike)
	assert.Equal(t, "c", *s.companies.lastFilter.NameLike)
	assert.Equal(t, 2, *s.companies.lastFilter.MinEmployees)
	assert.Nil(t, s.companies.lastFilter.MaxEmployees)

	resp, body = s.do(t, http.MethodGet, "/companies?nope=1", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperrors.CodeValidation, errorCode(body))

	resp, body = s.do(t, http.MethodGet, "/companies/c1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	company := body["company"].(map[string]any)
	assert.Equal(t, "c1", company["handle"])
	assert.Len(t, company["jobs"], 1)

	resp, _ = s.do(t, http.MethodGet, "/companies/nope", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	newCompany := `{"handle":"new","name":"New","description":"DescNew","numEmployees":10,"logoUrl":"http://new.img"}`
	resp, _ = s.do(t, http.MethodPost, "/companies", user, newCompany)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = s.do(t, http.MethodPost, "/companies", "", newCompany)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, body = s.do(t, http.MethodPost, "/companies", admin, newCompany)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "new", body["company"].(map[string]any)["handle"])

	resp, body = s.do(t, http.MethodPatch, "/companies/c1", admin, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperrors.CodeValidation, errorCode(body))

	resp, _ = s.do(t, http.MethodPatch, "/companies/c1", admin, `{"name":"New","numEmployees":5}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []sqlutil.Field{{Name: "name", Value: "New"}, {Name: "numEmployees", Value: 5}}, s.companies.lastFields)

	resp, body = s.do(t, http.MethodDelete, "/companies/c1", admin, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "c1", body["deleted"])
}

func TestJobRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.token(t, "admin", true)

	resp, body := s.do(t, http.MethodGet, "/jobs?title=j&minSalary=100&hasEquity=true", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, body["jobs"])
	assert.Equal(t, "j", *s.jobs.lastFilter.Title)
	assert.Equal(t, 100, *s.jobs.lastFilter.MinSalary)
	assert.True(t, *s.jobs.lastFilter.HasEquity)

	resp, _ = s.do(t, http.MethodGet, "/jobs?minSalary=lots", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/jobs/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/jobs/2", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, "/jobs", admin, `{"title":"J","salary":10,"equity":0.2,"companyHandle":"c1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(42), body["job"].(map[string]any)["id"])
	assert.Equal(t, "admin", s.jobs.lastActor)

	resp, _ = s.do(t, http.MethodPost, "/jobs", admin, `{"title":"J","equity":2,"companyHandle":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(t, http.MethodDelete, "/jobs/1", admin, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", body["deleted"])
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.token(t, "admin", true)
	u1 := s.token(t, "u1", false)

	resp, _ := s.do(t, http.MethodGet, "/users", u1, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := s.do(t, http.MethodGet, "/users", admin, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["users"], 2)

	newUser := `{"username":"u-new","password":"password","firstName":"f","lastName":"l","email":"new@email.com","isAdmin":true}`
	resp, body = s.do(t, http.MethodPost, "/users", admin, newUser)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["user"].(map[string]any)["isAdmin"])
	assert.Equal(t, "tok", body["token"])

	resp, _ = s.do(t, http.MethodGet, "/users/u1", u1, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, "/users/u2", u1, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, "/users/u1/jobs/7", u1, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(7), body["applied"])
	assert.Equal(t, []int{7}, s.users.applied["u1"])

	resp, _ = s.do(t, http.MethodPatch, "/users/u1", u1, `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(t, http.MethodDelete, "/users/u1", admin, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", body["deleted"])
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	s := newTestServer(t, nil)

	resp, _ := s.do(t, http.MethodGet, "/jobs/1", "not-a-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "public routes ignore bad tokens")

	resp, body := s.do(t, http.MethodGet, "/users", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeUnauthorized, errorCode(body))
}
