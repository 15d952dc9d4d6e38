package controllers

import (
	"activitybot/internal/providers"
	"activitybot/internal/services"
	"activitybot/internal/statistic/interfaces"
	"fmt"
	"github.com/spf13/cast"
	"net/http"
	"path/filepath"
)

const (
	defaultCleanupDays = 30
	maxCleanupDays     = 365
)

type AdminController struct {
	logger   providers.Logger
	service  services.ActivityServiceInterface
	archiver interfaces.ArchiverInterface
	cache    providers.CacheProviderInterface
}

type fileResponse struct {
	File string `json:"file"`
	Path string `json:"path"`
}

type cleanupResponse struct {
	Days    int `json:"days"`
	Removed int `json:"removed"`
}

type trackingResponse struct {
	Enabled bool `json:"enabled"`
}

func NewAdminController(logger providers.Logger, service services.ActivityServiceInterface, archiver interfaces.ArchiverInterface, cache providers.CacheProviderInterface) *AdminController {
	return &AdminController{
		logger:   logger,
		service:  service,
		archiver: archiver,
		cache:    cache,
	}
}

func (a *AdminController) Backup(w http.ResponseWriter, r *http.Request) {
	path, err := a.archiver.Backup()
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Backup failed: %s", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fileResponse{File: filepath.Base(path), Path: path})
}

// Cleanup removes data older than ?days= (1-365, default 30).
func (a *AdminController) Cleanup(w http.ResponseWriter, r *http.Request) {
	days := defaultCleanupDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 1 || n > maxCleanupDays {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("days must be between 1 and %d", maxCleanupDays)})
			return
		}
		days = n
	}

	removed, err := a.service.Cleanup(days)
	if err != nil {
		writeError(w, err)
		return
	}
	a.cache.Purge()
	writeJSON(w, http.StatusOK, cleanupResponse{Days: days, Removed: removed})
}

func (a *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.service.DataStats()
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Unable to compute data stats: %s", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *AdminController) Export(w http.ResponseWriter, r *http.Request) {
	path, err := a.archiver.Export(r.URL.Query().Get("format"))
	if err != nil {
		if !isBadInput(err) {
			a.logger.Errorf(providers.TypeApp, "Export failed: %s", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fileResponse{File: filepath.Base(path), Path: path})
}

// Tracking switches event recording with ?enabled=true|false and reports
// the current state.
func (a *AdminController) Tracking(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("enabled"); raw != "" {
		enabled, err := cast.ToBoolE(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "enabled must be a boolean"})
			return
		}
		a.service.SetTrackingEnabled(enabled)
	}
	writeJSON(w, http.StatusOK, trackingResponse{Enabled: a.service.TrackingEnabled()})
}
