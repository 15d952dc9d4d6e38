package internal

import (
	"activitybot/internal/controllers"
	"activitybot/internal/providers"
	"activitybot/internal/services"
	"activitybot/internal/structures"
	"activitybot/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appTestScheduler struct {
	restored, inited, stopped, persisted bool
}

func (s *appTestScheduler) Init()                          { s.inited = true }
func (s *appTestScheduler) Stop()                          { s.stopped = true }
func (s *appTestScheduler) Restore() error                 { s.restored = true; return nil }
func (s *appTestScheduler) Persist() error                 { s.persisted = true; return nil }
func (s *appTestScheduler) LastRuns() map[string]time.Time { return nil }

func newTestApp(t *testing.T) (*App, *appTestScheduler, *testutil.MockMetrics) {
	app, scheduler, metrics, _ := newTestAppWithCompressor(t)
	return app, scheduler, metrics
}

func newTestAppWithCompressor(t *testing.T) (*App, *appTestScheduler, *testutil.MockMetrics, *testutil.MockCompressor) {
	t.Helper()
	conf := &structures.Config{
		AppName:   "ActivityBot",
		WebServer: structures.Server{Host: "127.0.0.1", Port: 8090},
		Tracking:  structures.TrackingConfig{Enabled: true},
		Admin:     structures.AdminConfig{Token: "secret"},
	}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	cache := testutil.NewMockCache()
	svc := services.NewActivityService(conf, &testutil.MockStorage{}, logger)
	scheduler := &appTestScheduler{}

	ac := controllers.NewApiController(logger, svc, cache, metrics)
	admin := controllers.NewAdminController(logger, svc, &routeTestArchiver{}, cache)
	hc := controllers.NewHealthController(svc, scheduler)
	router := InitRoutes(ac, admin, conf, logger)

	compressor := &testutil.MockCompressor{}
	app := NewApp(ac, admin, hc, scheduler, &testutil.MockNotifier{Disabled: true}, compressor, conf, logger, router, metrics)
	require.NotNil(t, app.WebServer)
	return app, scheduler, metrics, compressor
}

func TestNewApp_ServerAddress(t *testing.T) {
	app, _, _ := newTestApp(t)
	assert.Equal(t, "127.0.0.1:8090", app.WebServer.Addr)
}

func TestNewApp_RoutesThroughMetricsMiddleware(t *testing.T) {
	app, _, metrics := newTestApp(t)

	rr := httptest.NewRecorder()
	body := strings.NewReader(`{"type":"message","userId":"U1"}`)
	app.WebServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/events", body))
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, 2, metrics.Requests)
}

func TestNewApp_HealthBypassesMetrics(t *testing.T) {
	app, _, metrics := newTestApp(t)

	rr := httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, metrics.Requests)
}

func TestNewApp_MetricsEndpointDisabled(t *testing.T) {
	app, _, _ := newTestApp(t)

	rr := httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNewApp_AdminRoutesGuarded(t *testing.T) {
	app, _, _ := newTestApp(t)

	rr := httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set(providers.AdminTokenHeader, "secret")
	rr = httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestApp_ShutdownPersists(t *testing.T) {
	app, scheduler, _ := newTestApp(t)

	require.NoError(t, app.shutdown(nil))
	assert.True(t, scheduler.stopped)
	assert.True(t, scheduler.persisted)
}

func TestApp_ShutdownReleasesCompressor(t *testing.T) {
	app, _, _, compressor := newTestAppWithCompressor(t)

	require.NoError(t, app.shutdown(nil))
	assert.True(t, compressor.Closed)
}
