package services

import (
	"activitybot/internal/models"
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 25
	DefaultWeeklyTop        = 5
)

// ClampLeaderboardLimit maps a requested limit onto 1..25, 10 when unset.
func ClampLeaderboardLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLeaderboardLimit
	case limit > MaxLeaderboardLimit:
		return MaxLeaderboardLimit
	default:
		return limit
	}
}

// rankTotals orders users by count descending, ties by user id ascending.
func rankTotals(totals map[string]int) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(totals))
	for user, n := range totals {
		entries = append(entries, models.LeaderboardEntry{UserID: user, Messages: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Messages != entries[j].Messages {
			return entries[i].Messages > entries[j].Messages
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (s *ActivityService) userTotalsLocked() map[string]int {
	totals := make(map[string]int, len(s.doc.Messages))
	for user, days := range s.doc.Messages {
		sum := 0
		for _, n := range days {
			sum += n
		}
		totals[user] = sum
	}
	return totals
}

func (s *ActivityService) Leaderboard(limit int) []models.LeaderboardEntry {
	limit = ClampLeaderboardLimit(limit)

	s.mu.RLock()
	ranking := rankTotals(s.userTotalsLocked())
	s.mu.RUnlock()

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

func (s *ActivityService) UserProfile(userID string) (*models.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}
	today := models.DateKey(s.now())
	week, _ := models.WeekKey(today)

	s.mu.RLock()
	defer s.mu.RUnlock()

	profile := &models.UserProfile{UserID: userID}

	var active []string
	for day, n := range s.doc.Messages[userID] {
		profile.TotalMessages += n
		if n > 0 {
			active = append(active, day)
		}
	}
	sort.Strings(active)
	profile.ActiveDays = len(active)
	if len(active) > 0 {
		profile.FirstMessageDate = active[0]
		profile.LastMessageDate = active[len(active)-1]
		profile.AveragePerDay = math.Round(float64(profile.TotalMessages)/float64(len(active))*10) / 10
	}

	profile.TodayMessages = s.doc.Messages[userID][today]
	if ws := s.doc.WeeklyStats[week]; ws != nil {
		profile.WeeklyMessages = ws.UserMessages[userID]
	}
	profile.JoinDate = s.joinDateLocked(userID)

	ranking := rankTotals(s.userTotalsLocked())
	profile.Rank = len(ranking) + 1
	for _, e := range ranking {
		if e.UserID == userID {
			profile.Rank = e.Rank
			break
		}
	}
	profile.Level = models.ActivityLevelFor(profile.TotalMessages)

	return profile, nil
}

// joinDateLocked returns the earliest date holding a join by the user.
func (s *ActivityService) joinDateLocked(userID string) string {
	days := make([]string, 0, len(s.doc.MemberEvents))
	for day := range s.doc.MemberEvents {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		events := s.doc.MemberEvents[day]
		if events == nil {
			continue
		}
		for _, ev := range events.Joins {
			if ev.UserID == userID {
				return day
			}
		}
	}
	return ""
}

func (s *ActivityService) UserActivity(userID string) (*models.UserActivity, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}
	today := models.DateKey(s.now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	activity := &models.UserActivity{UserID: userID}
	for day, n := range s.doc.Messages[userID] {
		activity.TotalMessages += n
		if day == today {
			activity.TodayMessages = n
		}
	}
	return activity, nil
}

func (s *ActivityService) TodayStats() *models.DayStats {
	stats, _ := s.DailyReport(models.DateKey(s.now()))
	return stats
}

func (s *ActivityService) DailyReport(date string) (*models.DayStats, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, err)
	}
	key := day.Format(models.DateLayout)

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.DayStats{Date: key}
	if ds := s.doc.DailyStats[key]; ds != nil {
		stats.TotalMessages = ds.TotalMessages
		stats.ActiveUsers = ds.ActiveUsers.Len()
	}
	if events := s.doc.MemberEvents[key]; events != nil {
		stats.Joins = len(events.Joins)
		stats.Leaves = len(events.Leaves)
	}
	return stats, nil
}

// WeeklyReport summarizes the week containing weekKey. top ≤ 0 means the
// default of five contributors.
func (s *ActivityService) WeeklyReport(weekKey string, top int) (*models.WeeklyReport, error) {
	week, err := models.WeekKey(weekKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, err)
	}
	if top <= 0 {
		top = DefaultWeeklyTop
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	report := &models.WeeklyReport{WeekStart: week, TopUsers: []models.LeaderboardEntry{}}
	ws := s.doc.WeeklyStats[week]
	if ws == nil {
		return report, nil
	}
	report.TotalMessages = ws.TotalMessages
	report.ActiveUsers = ws.ActiveUsers.Len()

	ranking := rankTotals(ws.UserMessages)
	if len(ranking) > top {
		ranking = ranking[:top]
	}
	report.TopUsers = ranking
	return report, nil
}
