package controllers

import (
	"activitybot/internal/services"
	"activitybot/internal/statistic/interfaces"
	"fmt"
	"net/http"
	"time"
)

type HealthController struct {
	service   services.ActivityServiceInterface
	scheduler interfaces.SchedulerInterface
	startTime time.Time
}

type healthResponse struct {
	Status          string               `json:"status"`
	Uptime          string               `json:"uptime"`
	UptimeSeconds   float64              `json:"uptime_seconds"`
	TrackedUsers    int                  `json:"tracked_users"`
	TrackingEnabled bool                 `json:"tracking_enabled"`
	LastRuns        map[string]time.Time `json:"last_runs"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Uptime:          formatDuration(uptime),
		UptimeSeconds:   uptime.Seconds(),
		TrackedUsers:    hc.service.TrackedUsers(),
		TrackingEnabled: hc.service.TrackingEnabled(),
		LastRuns:        hc.scheduler.LastRuns(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.ActivityServiceInterface, scheduler interfaces.SchedulerInterface) *HealthController {
	return &HealthController{
		service:   service,
		scheduler: scheduler,
		startTime: time.Now(),
	}
}
