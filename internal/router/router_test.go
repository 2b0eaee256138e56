package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rfpflow/internal/domain"
	"rfpflow/internal/handler"
	"rfpflow/internal/router"
	"rfpflow/internal/service"
	"rfpflow/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routerFixture struct {
	auth    *mocks.MockAuthService
	stats   *mocks.MockStatsService
	catalog *mocks.MockCatalogService
	engine  *gin.Engine
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		auth:    new(mocks.MockAuthService),
		stats:   new(mocks.MockStatsService),
		catalog: new(mocks.MockCatalogService),
	}
	f.engine = router.Setup(f.auth, router.Handlers{
		Auth:    handler.NewAuthHandler(f.auth),
		RFP:     handler.NewRFPHandler(new(mocks.MockPipelineService)),
		Run:     handler.NewRunHandler(new(mocks.MockRunService)),
		Product: handler.NewProductHandler(f.catalog),
		Stats:   handler.NewStatsHandler(f.stats),
		Health:  handler.NewHealthHandler(nil),
	}, []string{"http://localhost:3000"})
	return f
}

func (f *routerFixture) do(method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	f.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_AdminStatsRequiresToken(t *testing.T) {
	f := newRouterFixture()

	w := f.do(http.MethodGet, "/api/v1/admin/stats", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	f.stats.AssertNotCalled(t, "GetDashboardStats", mock.Anything)
}

func TestRouter_AdminStatsRejectsInvalidToken(t *testing.T) {
	f := newRouterFixture()
	f.auth.On("ValidateToken", "forged").Return(nil, errors.New("signature is invalid"))

	w := f.do(http.MethodGet, "/api/v1/admin/stats", "forged")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminStatsWithAdminToken(t *testing.T) {
	f := newRouterFixture()
	f.auth.On("ValidateToken", "good").Return(&service.Claims{Role: domain.RoleAdmin}, nil)
	f.stats.On("GetDashboardStats", mock.Anything).Return(&domain.DashboardStats{RecentActivity: []domain.RecentRun{}}, nil)

	w := f.do(http.MethodGet, "/api/v1/admin/stats", "good")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_PublicProductsNeedNoToken(t *testing.T) {
	f := newRouterFixture()
	f.catalog.On("List", mock.Anything).Return([]domain.Product{}, nil)

	w := f.do(http.MethodGet, "/api/v1/products", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Healthz(t *testing.T) {
	f := newRouterFixture()

	w := f.do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
}
