package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminTokenMiddleware_Accepts(t *testing.T) {
	h := AdminTokenMiddleware("s3cret", &cacheTestLogger{})(dummyHandler())

	req := httptest.NewRequest(http.MethodPost, "/admin/backup", nil)
	req.Header.Set(AdminTokenHeader, "s3cret")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminTokenMiddleware_RejectsWrongToken(t *testing.T) {
	h := AdminTokenMiddleware("s3cret", &cacheTestLogger{})(dummyHandler())

	req := httptest.NewRequest(http.MethodPost, "/admin/backup", nil)
	req.Header.Set(AdminTokenHeader, "guess")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminTokenMiddleware_RejectsMissingToken(t *testing.T) {
	h := AdminTokenMiddleware("s3cret", &cacheTestLogger{})(dummyHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminTokenMiddleware_DisabledWhenUnconfigured(t *testing.T) {
	h := AdminTokenMiddleware("", &cacheTestLogger{})(dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set(AdminTokenHeader, "")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
