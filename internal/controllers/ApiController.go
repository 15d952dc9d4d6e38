package controllers

import (
	"activitybot/internal/models"
	"activitybot/internal/providers"
	"activitybot/internal/services"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"net/http"
	"strconv"
	"strings"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.ActivityServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.ActivityServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// ReceiveEvent ingests one chat event posted by the dispatcher.
func (ac *ApiController) ReceiveEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.InputEvent
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	switch payload.Type {
	case models.EventMessage:
		if payload.Date == "" {
			err = ac.service.TrackMessage(payload.UserID)
		} else {
			err = ac.service.RecordMessage(payload.UserID, payload.Date)
		}
	case models.EventJoin:
		if payload.Date == "" {
			err = ac.service.TrackJoin(payload.UserID, payload.Username)
		} else {
			err = ac.service.RecordJoin(payload.UserID, payload.Username, payload.Date)
		}
	case models.EventLeave:
		if payload.Date == "" {
			err = ac.service.TrackLeave(payload.UserID, payload.Username)
		} else {
			err = ac.service.RecordLeave(payload.UserID, payload.Username, payload.Date)
		}
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown event type %q", payload.Type)})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	if !ac.service.TrackingEnabled() {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	ac.metrics.IncEventsTotal(string(payload.Type))
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "stats", func() (any, error) {
		return ac.service.TodayStats(), nil
	})
}

func (ac *ApiController) GetActivity(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	ac.serveFromCacheOrCompute(w, "activity:"+user, func() (any, error) {
		return ac.service.UserActivity(user)
	})
}

func (ac *ApiController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := services.ClampLeaderboardLimit(cast.ToInt(r.URL.Query().Get("limit")))
	ac.serveFromCacheOrCompute(w, "leaderboard:"+strconv.Itoa(limit), func() (any, error) {
		return ac.service.Leaderboard(limit), nil
	})
}

func (ac *ApiController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	ac.serveFromCacheOrCompute(w, "profile:"+user, func() (any, error) {
		return ac.service.UserProfile(user)
	})
}
