package controllers

import (
	"activitybot/internal/models"
	"activitybot/internal/services"
	"activitybot/internal/testutil"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchiver struct {
	backups []string
	formats []string
	err     error
}

func (f *fakeArchiver) Backup() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := "backups/backup-2024-01-10T12-00-00-000Z.json"
	f.backups = append(f.backups, path)
	return path, nil
}

func (f *fakeArchiver) Export(format string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if format != "json" && format != "csv" && format != "" {
		return "", fmt.Errorf("%w: %q", services.ErrUnsupportedFormat, format)
	}
	f.formats = append(f.formats, format)
	return "exports/export-2024-01-10T12-00-00-000Z." + format, nil
}

func (f *fakeArchiver) Backups() ([]string, error) { return f.backups, nil }

func (f *fakeArchiver) ReadBackup(_ string) (*models.Document, error) {
	return models.NewDocument(time.Now()), nil
}

func newTestAdmin(svc services.ActivityServiceInterface) (*AdminController, *fakeArchiver, *testutil.MockCache) {
	archiver := &fakeArchiver{}
	cache := testutil.NewMockCache()
	return NewAdminController(&testutil.MockLogger{}, svc, archiver, cache), archiver, cache
}

func TestAdminBackup(t *testing.T) {
	admin, archiver, _ := newTestAdmin(newTestService())

	rr := httptest.NewRecorder()
	admin.Backup(rr, httptest.NewRequest(http.MethodPost, "/admin/backup", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Len(t, archiver.backups, 1)

	var resp fileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "backup-2024-01-10T12-00-00-000Z.json", resp.File)
}

func TestAdminBackup_Failure(t *testing.T) {
	admin, archiver, _ := newTestAdmin(newTestService())
	archiver.err = errors.New("permission denied")

	rr := httptest.NewRecorder()
	admin.Backup(rr, httptest.NewRequest(http.MethodPost, "/admin/backup", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "permission denied")
}

func TestAdminCleanup_DefaultDays(t *testing.T) {
	svc := newTestService()
	old := time.Now().UTC().AddDate(0, 0, -45).Format(models.DateLayout)
	require.NoError(t, svc.RecordMessage("U1", old))
	require.NoError(t, svc.TrackMessage("U1"))

	admin, _, cache := newTestAdmin(svc)
	cache.Set("stats", []byte("{}"))

	rr := httptest.NewRecorder()
	admin.Cleanup(rr, httptest.NewRequest(http.MethodPost, "/admin/cleanup", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp cleanupResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Days)
	assert.Equal(t, 2, resp.Removed)
	assert.Empty(t, cache.Data)
}

func TestAdminCleanup_ExplicitDays(t *testing.T) {
	svc := newTestService()
	old := time.Now().UTC().AddDate(0, 0, -45).Format(models.DateLayout)
	require.NoError(t, svc.RecordMessage("U1", old))

	admin, _, _ := newTestAdmin(svc)
	rr := httptest.NewRecorder()
	admin.Cleanup(rr, httptest.NewRequest(http.MethodPost, "/admin/cleanup?days=60", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp cleanupResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 60, resp.Days)
	assert.Equal(t, 0, resp.Removed)
}

func TestAdminCleanup_InvalidDays(t *testing.T) {
	admin, _, _ := newTestAdmin(newTestService())

	for _, q := range []string{"0", "366", "-5", "soon"} {
		rr := httptest.NewRecorder()
		admin.Cleanup(rr, httptest.NewRequest(http.MethodPost, "/admin/cleanup?days="+q, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestAdminStats(t *testing.T) {
	svc := newTestService()
	require.NoError(t, svc.RecordMessage("U1", "2024-01-01"))
	require.NoError(t, svc.RecordMessage("U2", "2024-01-02"))
	admin, _, _ := newTestAdmin(svc)

	rr := httptest.NewRecorder()
	admin.Stats(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp models.DataStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalUsers)
	assert.Equal(t, 2, resp.TotalMessages)
	assert.True(t, resp.Validation.IsValid)
}

func TestAdminExport(t *testing.T) {
	admin, archiver, _ := newTestAdmin(newTestService())

	rr := httptest.NewRecorder()
	admin.Export(rr, httptest.NewRequest(http.MethodPost, "/admin/export?format=csv", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, []string{"csv"}, archiver.formats)
	assert.Contains(t, rr.Body.String(), "export-2024-01-10T12-00-00-000Z.csv")
}

func TestAdminExport_UnsupportedFormat(t *testing.T) {
	admin, _, _ := newTestAdmin(newTestService())

	rr := httptest.NewRecorder()
	admin.Export(rr, httptest.NewRequest(http.MethodPost, "/admin/export?format=xml", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unsupported export format")
}

func TestAdminTracking(t *testing.T) {
	svc := newTestService()
	admin, _, _ := newTestAdmin(svc)

	rr := httptest.NewRecorder()
	admin.Tracking(rr, httptest.NewRequest(http.MethodPost, "/admin/tracking?enabled=false", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"enabled":false}`, rr.Body.String())
	assert.False(t, svc.TrackingEnabled())

	rr = httptest.NewRecorder()
	admin.Tracking(rr, httptest.NewRequest(http.MethodPost, "/admin/tracking", nil))
	assert.JSONEq(t, `{"enabled":false}`, rr.Body.String())

	rr = httptest.NewRecorder()
	admin.Tracking(rr, httptest.NewRequest(http.MethodPost, "/admin/tracking?enabled=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
