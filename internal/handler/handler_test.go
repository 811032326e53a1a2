package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduspark-api/internal/dto"
	"github.com/noah-isme/eduspark-api/internal/middleware"
	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/internal/service"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func withCaller(c *gin.Context, email string) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Identity: models.Identity{Email: email, Name: "Caller"}})
}

type userServiceMock struct {
	createRes  models.InsertResult
	lastFilter models.UserFilter
	roles      map[string]models.UserRole
	promoteErr error
}

func (m *userServiceMock) Create(ctx context.Context, req service.CreateUserRequest) (models.InsertResult, error) {
	return m.createRes, nil
}

func (m *userServiceMock) Get(ctx context.Context, email string) (*models.User, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

func (m *userServiceMock) Role(ctx context.Context, email string) (models.UserRole, error) {
	if role, ok := m.roles[email]; ok {
		return role, nil
	}
	return models.RoleUnknown, nil
}

func (m *userServiceMock) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	m.lastFilter = filter
	return []models.User{}, nil
}

func (m *userServiceMock) Count(ctx context.Context, search string) (models.CountResult, error) {
	return models.CountResult{Count: 3}, nil
}

func (m *userServiceMock) PromoteToAdmin(ctx context.Context, email string) (models.UpdateResult, error) {
	return models.UpdateResult{}, m.promoteErr
}

func TestUserHandlerCreateExisting(t *testing.T) {
	h := NewUserHandler(&userServiceMock{createRes: models.InsertResult{Message: "user already exists"}})
	c, w := newGinContext(http.MethodPost, "/users", []byte(`{"email":"a@x.com"}`))

	h.Create(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"user already exists","insertedId":null}`, w.Body.String())
}

func TestUserHandlerCreateRejectsMalformedJSON(t *testing.T) {
	h := NewUserHandler(&userServiceMock{})
	c, w := newGinContext(http.MethodPost, "/users", []byte(`{"email":`))

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandlerListParsesPagination(t *testing.T) {
	svc := &userServiceMock{}
	h := NewUserHandler(svc)
	c, w := newGinContext(http.MethodGet, "/users?search=%20ali%20&page=2&size=5", nil)

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ali", svc.lastFilter.Search)
	assert.Equal(t, models.Page{Number: 2, Size: 5}, svc.lastFilter.Page)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUserHandlerListIgnoresBadPagination(t *testing.T) {
	svc := &userServiceMock{}
	h := NewUserHandler(svc)
	c, _ := newGinContext(http.MethodGet, "/users?page=-1&size=abc", nil)

	h.List(c)
	assert.Equal(t, models.Page{}, svc.lastFilter.Page)
}

func TestUserHandlerRole(t *testing.T) {
	h := NewUserHandler(&userServiceMock{roles: map[string]models.UserRole{"t@x.com": models.RoleTeacher}})

	c, w := newGinContext(http.MethodGet, "/users/role/t@x.com", nil)
	c.Params = gin.Params{{Key: "email", Value: "t@x.com"}}
	h.Role(c)
	assert.JSONEq(t, `{"role":"teacher"}`, w.Body.String())

	c, w = newGinContext(http.MethodGet, "/users/role/n@x.com", nil)
	c.Params = gin.Params{{Key: "email", Value: "n@x.com"}}
	h.Role(c)
	assert.JSONEq(t, `{"role":"unknown"}`, w.Body.String())
}

func TestUserHandlerGetNotFound(t *testing.T) {
	h := NewUserHandler(&userServiceMock{})
	c, w := newGinContext(http.MethodGet, "/users/a@x.com", nil)
	c.Params = gin.Params{{Key: "email", Value: "a@x.com"}}

	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"user not found"}`, w.Body.String())
}

type reportServiceMock struct {
	hit bool
}

func (m *reportServiceMock) SiteTotals(ctx context.Context) (dto.SiteTotals, bool, error) {
	return dto.SiteTotals{TotalUsers: 2, TotalClasses: 1, TotalEnrollment: 4}, m.hit, nil
}

func (m *reportServiceMock) PopularClasses(ctx context.Context) ([]models.Class, bool, error) {
	return []models.Class{}, m.hit, nil
}

func (m *reportServiceMock) SubmissionsToday(ctx context.Context, rawClassID string) (dto.SubmissionCount, error) {
	return dto.SubmissionCount{Count: 2}, nil
}

func (m *reportServiceMock) ClassTotals(ctx context.Context, rawClassID string) (dto.ClassTotals, error) {
	return dto.ClassTotals{}, appErrors.Clone(appErrors.ErrValidation, "invalid id")
}

type exportServiceMock struct{}

func (exportServiceMock) PopularClasses(ctx context.Context, format dto.ExportFormat) (*dto.ExportFile, error) {
	if format != dto.ExportFormatCSV {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	return &dto.ExportFile{Filename: "popular_classes_20260101_000000.csv", ContentType: "text/csv", Body: []byte("rank\n")}, nil
}

func TestReportHandlerCacheHeader(t *testing.T) {
	h := NewReportHandler(&reportServiceMock{hit: true}, exportServiceMock{})
	c, w := newGinContext(http.MethodGet, "/site_totals", nil)

	h.SiteTotals(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))
	assert.JSONEq(t, `{"totalUsers":2,"totalClasses":1,"totalEnrollment":4}`, w.Body.String())

	h = NewReportHandler(&reportServiceMock{}, exportServiceMock{})
	c, w = newGinContext(http.MethodGet, "/popular_classes", nil)
	h.PopularClasses(c)
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
}

func TestReportHandlerClassTotalsInvalidID(t *testing.T) {
	h := NewReportHandler(&reportServiceMock{}, exportServiceMock{})
	c, w := newGinContext(http.MethodGet, "/total_classes_data/zzz", nil)
	c.Params = gin.Params{{Key: "id", Value: "zzz"}}

	h.ClassTotals(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerExport(t *testing.T) {
	h := NewReportHandler(&reportServiceMock{}, exportServiceMock{})
	c, w := newGinContext(http.MethodGet, "/reports/popular_classes/export", nil)

	h.ExportPopularClasses(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="popular_classes_20260101_000000.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "rank\n", w.Body.String())

	c, w = newGinContext(http.MethodGet, "/reports/popular_classes/export?format=xlsx", nil)
	h.ExportPopularClasses(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type issuerStub struct{}

func (issuerStub) Issue(identity models.Identity) (*models.TokenResponse, error) {
	if identity.Email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid identity")
	}
	return &models.TokenResponse{Token: "signed"}, nil
}

func TestAuthHandlerIssueToken(t *testing.T) {
	h := NewAuthHandler(issuerStub{})

	c, w := newGinContext(http.MethodPost, "/jwt", []byte(`{"email":"a@x.com"}`))
	h.IssueToken(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"signed"}`, w.Body.String())

	c, w = newGinContext(http.MethodPost, "/jwt", []byte(`{}`))
	h.IssueToken(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type intentStub struct {
	caller models.Identity
	err    error
}

func (s *intentStub) CreateIntent(ctx context.Context, caller models.Identity, req service.PaymentIntentRequest) (*service.PaymentIntentResponse, error) {
	s.caller = caller
	if s.err != nil {
		return nil, s.err
	}
	return &service.PaymentIntentResponse{ClientSecret: "pi_secret"}, nil
}

func TestPaymentHandler(t *testing.T) {
	stub := &intentStub{}
	h := NewPaymentHandler(stub)

	c, w := newGinContext(http.MethodPost, "/create-payment-intent", []byte(`{"price":12.5}`))
	h.CreateIntent(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = newGinContext(http.MethodPost, "/create-payment-intent", []byte(`{"price":12.5}`))
	withCaller(c, "buyer@x.com")
	h.CreateIntent(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"clientSecret":"pi_secret"}`, w.Body.String())
	assert.Equal(t, "buyer@x.com", stub.caller.Email)

	stub.err = appErrors.Wrap(errors.New("card declined"), appErrors.ErrPayment.Code, appErrors.ErrPayment.Status, appErrors.ErrPayment.Message)
	c, w = newGinContext(http.MethodPost, "/create-payment-intent", []byte(`{"price":12.5}`))
	withCaller(c, "buyer@x.com")
	h.CreateIntent(c)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

type pingStub struct{ err error }

func (p pingStub) Ping(ctx context.Context) error { return p.err }

func TestMetricsHandlerProbes(t *testing.T) {
	h := NewMetricsHandler(nil, pingStub{}, nil)

	c, w := newGinContext(http.MethodGet, "/", nil)
	h.Root(c)
	assert.Equal(t, RootMessage, w.Body.String())

	c, w = newGinContext(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusOK, w.Code)

	h = NewMetricsHandler(nil, pingStub{err: errors.New("no primary")}, nil)
	c, w = newGinContext(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
