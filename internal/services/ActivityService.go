package services

import (
	"activitybot/internal/models"
	"activitybot/internal/providers"
	"activitybot/internal/statistic/interfaces"
	"activitybot/internal/structures"
	"fmt"
	"go.uber.org/atomic"
	"io"
	"strings"
	"sync"
	"time"
)

type ActivityServiceInterface interface {
	TrackMessage(userID string) error
	RecordMessage(userID, date string) error
	TrackJoin(userID, username string) error
	RecordJoin(userID, username, date string) error
	TrackLeave(userID, username string) error
	RecordLeave(userID, username, date string) error

	Restore(doc *models.Document)
	Snapshot() *models.Document
	Persist() error
	TrackingEnabled() bool
	SetTrackingEnabled(enabled bool)
	TrackedUsers() int

	Leaderboard(limit int) []models.LeaderboardEntry
	UserProfile(userID string) (*models.UserProfile, error)
	UserActivity(userID string) (*models.UserActivity, error)
	TodayStats() *models.DayStats
	DailyReport(date string) (*models.DayStats, error)
	WeeklyReport(weekKey string, top int) (*models.WeeklyReport, error)

	Validate() models.ValidationResult
	Cleanup(daysToKeep int) (int, error)
	DataStats() (*models.DataStats, error)
	ExportCSV(w io.Writer) error
}

// ActivityService owns the activity document. Every access goes through
// its lock, and every mutation is flushed to storage before the lock is
// released, so the backing file has exactly one writer.
type ActivityService struct {
	mu       sync.RWMutex
	doc      *models.Document
	storage  interfaces.StorageInterface
	logger   providers.Logger
	tracking *atomic.Bool
	now      func() time.Time
}

func (s *ActivityService) TrackMessage(userID string) error {
	return s.RecordMessage(userID, models.DateKey(s.now()))
}

func (s *ActivityService) RecordMessage(userID, date string) error {
	if !s.tracking.Load() {
		return nil
	}
	day, err := s.checkInput(userID, date)
	if err != nil {
		s.logger.Warnf(providers.TypeEvent, "Rejected message event for %q: %s", userID, err)
		return err
	}
	week, _ := models.WeekKey(day)

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.doc
	if doc.Messages == nil {
		doc.Messages = make(map[string]map[string]int)
	}
	if doc.DailyStats == nil {
		doc.DailyStats = make(map[string]*models.DailyStat)
	}
	if doc.WeeklyStats == nil {
		doc.WeeklyStats = make(map[string]*models.WeeklyStat)
	}

	days, ok := doc.Messages[userID]
	if !ok {
		days = make(map[string]int)
		doc.Messages[userID] = days
	}
	days[day]++

	ds := doc.DailyStats[day]
	if ds == nil {
		ds = models.NewDailyStat()
		doc.DailyStats[day] = ds
	}
	if ds.ActiveUsers == nil {
		ds.ActiveUsers = models.NewUserSet()
	}
	ds.TotalMessages++
	ds.ActiveUsers.Add(userID)

	ws := doc.WeeklyStats[week]
	if ws == nil {
		ws = models.NewWeeklyStat()
		doc.WeeklyStats[week] = ws
	}
	if ws.ActiveUsers == nil {
		ws.ActiveUsers = models.NewUserSet()
	}
	if ws.UserMessages == nil {
		ws.UserMessages = make(map[string]int)
	}
	ws.TotalMessages++
	ws.ActiveUsers.Add(userID)
	ws.UserMessages[userID]++

	s.touchLocked()
	s.logger.Debugf(providers.TypeEvent, "Message tracked for %s on %s", userID, day)
	return nil
}

func (s *ActivityService) TrackJoin(userID, username string) error {
	return s.RecordJoin(userID, username, models.DateKey(s.now()))
}

func (s *ActivityService) RecordJoin(userID, username, date string) error {
	return s.recordMember(models.EventJoin, userID, username, date)
}

func (s *ActivityService) TrackLeave(userID, username string) error {
	return s.RecordLeave(userID, username, models.DateKey(s.now()))
}

func (s *ActivityService) RecordLeave(userID, username, date string) error {
	return s.recordMember(models.EventLeave, userID, username, date)
}

func (s *ActivityService) recordMember(kind models.EventType, userID, username, date string) error {
	if !s.tracking.Load() {
		return nil
	}
	day, err := s.checkInput(userID, date)
	if err != nil {
		s.logger.Warnf(providers.TypeEvent, "Rejected %s event for %q: %s", kind, userID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.MemberEvents == nil {
		s.doc.MemberEvents = make(map[string]*models.DayEvents)
	}
	events := s.doc.MemberEvents[day]
	if events == nil {
		events = &models.DayEvents{}
		s.doc.MemberEvents[day] = events
	}

	ev := models.MemberEvent{UserID: userID, Username: username, Timestamp: s.now().UTC()}
	if kind == models.EventJoin {
		events.Joins = append(events.Joins, ev)
	} else {
		events.Leaves = append(events.Leaves, ev)
	}

	s.touchLocked()
	s.logger.Infof(providers.TypeEvent, "Member %s (%s) %s on %s", username, userID, kind, day)
	return nil
}

// checkInput returns the canonical date key for a valid event.
func (s *ActivityService) checkInput(userID, date string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrInvalidUser
	}
	t, err := models.ParseDate(date)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDate, err)
	}
	return t.Format(models.DateLayout), nil
}

// touchLocked stamps the document and flushes it. A failed save is only
// logged; the in-memory state is kept.
func (s *ActivityService) touchLocked() {
	s.doc.LastUpdate = s.now().UTC()
	if err := s.storage.Save(s.doc); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
	}
}

func (s *ActivityService) Restore(doc *models.Document) {
	if doc == nil {
		doc = models.NewDocument(s.now().UTC())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

// Snapshot returns a deep copy of the document.
func (s *ActivityService) Snapshot() *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

func (s *ActivityService) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Save(s.doc)
}

func (s *ActivityService) TrackingEnabled() bool {
	return s.tracking.Load()
}

func (s *ActivityService) SetTrackingEnabled(enabled bool) {
	s.tracking.Store(enabled)
	s.logger.Infof(providers.TypeApp, "Activity tracking enabled: %t", enabled)
}

func (s *ActivityService) TrackedUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Messages)
}

func NewActivityService(conf *structures.Config, storage interfaces.StorageInterface, logger providers.Logger) ActivityServiceInterface {
	return &ActivityService{
		doc:      models.NewDocument(time.Now().UTC()),
		storage:  storage,
		logger:   logger,
		tracking: atomic.NewBool(conf.Tracking.Enabled),
		now:      time.Now,
	}
}
