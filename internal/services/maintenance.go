package services

import (
	"activitybot/internal/models"
	"activitybot/internal/providers"
	"encoding/csv"
	"fmt"
	json "github.com/goccy/go-json"
	"io"
	"sort"
	"strconv"
)

var csvHeader = []string{"Date", "UserId", "Messages"}

// Validate reports structural problems of the document. It never mutates.
func (s *ActivityService) Validate() models.ValidationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return validateDocument(s.doc)
}

func validateDocument(doc *models.Document) models.ValidationResult {
	issues := make([]string, 0)
	if doc.Messages == nil {
		issues = append(issues, "Missing or invalid messages data")
	}
	if doc.DailyStats == nil {
		issues = append(issues, "Missing or invalid dailyStats data")
	}
	if doc.MemberEvents == nil {
		issues = append(issues, "Missing or invalid memberEvents data")
	}

	days := make([]string, 0, len(doc.DailyStats))
	for day := range doc.DailyStats {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		if ds := doc.DailyStats[day]; ds == nil || ds.ActiveUsers == nil {
			issues = append(issues, "Invalid activeUsers Set for date: "+day)
		}
	}

	return models.ValidationResult{IsValid: len(issues) == 0, Issues: issues}
}

// Cleanup drops every date-keyed entry older than today minus daysToKeep
// and returns how many were removed. Weekly stats are kept.
func (s *ActivityService) Cleanup(daysToKeep int) (int, error) {
	if daysToKeep < 0 {
		return 0, ErrInvalidDays
	}
	cutoff := models.DateKey(s.now().UTC().AddDate(0, 0, -daysToKeep))

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for user, days := range s.doc.Messages {
		for day := range days {
			if day < cutoff {
				delete(days, day)
				removed++
			}
		}
		if len(days) == 0 {
			delete(s.doc.Messages, user)
		}
	}
	for day := range s.doc.DailyStats {
		if day < cutoff {
			delete(s.doc.DailyStats, day)
			removed++
		}
	}
	for day := range s.doc.MemberEvents {
		if day < cutoff {
			delete(s.doc.MemberEvents, day)
			removed++
		}
	}

	if removed > 0 {
		s.touchLocked()
	}
	s.logger.Infof(providers.TypeApp, "Cleanup before %s removed %d entries", cutoff, removed)
	return removed, nil
}

func (s *ActivityService) DataStats() (*models.DataStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	encoded, err := json.Marshal(models.ToStorage(s.doc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	stats := &models.DataStats{
		TotalUsers: len(s.doc.Messages),
		TotalDays:  len(s.doc.DailyStats),
		TotalWeeks: len(s.doc.WeeklyStats),
		DataSize:   len(encoded),
		LastUpdate: s.doc.LastUpdate,
		Validation: validateDocument(s.doc),
	}
	for _, days := range s.doc.Messages {
		for _, n := range days {
			stats.TotalMessages += n
		}
	}
	return stats, nil
}

// ExportCSV writes one row per user and date, ordered by user then date.
func (s *ActivityService) ExportCSV(w io.Writer) error {
	s.mu.RLock()
	rows := make([][]string, 0, len(s.doc.Messages))
	for user, days := range s.doc.Messages {
		for day, n := range days {
			rows = append(rows, []string{day, user, strconv.Itoa(n)})
		}
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i][1] != rows[j][1] {
			return rows[i][1] < rows[j][1]
		}
		return rows[i][0] < rows[j][0]
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
