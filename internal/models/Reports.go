package models

import "time"

type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	Rank     int    `json:"rank"`
	Messages int    `json:"messages"`
}

type UserProfile struct {
	UserID           string        `json:"userId"`
	TotalMessages    int           `json:"totalMessages"`
	ActiveDays       int           `json:"activeDays"`
	AveragePerDay    float64       `json:"averagePerDay"`
	TodayMessages    int           `json:"todayMessages"`
	WeeklyMessages   int           `json:"weeklyMessages"`
	FirstMessageDate string        `json:"firstMessageDate,omitempty"`
	LastMessageDate  string        `json:"lastMessageDate,omitempty"`
	JoinDate         string        `json:"joinDate,omitempty"`
	Rank             int           `json:"rank"`
	Level            ActivityLevel `json:"level"`
}

type UserActivity struct {
	UserID        string `json:"userId"`
	TodayMessages int    `json:"todayMessages"`
	TotalMessages int    `json:"totalMessages"`
}

// DayStats is the summary of one date, used by the stats query and the
// daily report.
type DayStats struct {
	Date          string `json:"date"`
	TotalMessages int    `json:"totalMessages"`
	ActiveUsers   int    `json:"activeUsers"`
	Joins         int    `json:"joins"`
	Leaves        int    `json:"leaves"`
}

type WeeklyReport struct {
	WeekStart     string             `json:"weekStart"`
	TotalMessages int                `json:"totalMessages"`
	ActiveUsers   int                `json:"activeUsers"`
	TopUsers      []LeaderboardEntry `json:"topUsers"`
}

type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
}

type DataStats struct {
	TotalUsers    int              `json:"totalUsers"`
	TotalDays     int              `json:"totalDays"`
	TotalWeeks    int              `json:"totalWeeks"`
	TotalMessages int              `json:"totalMessages"`
	DataSize      int              `json:"dataSize"`
	LastUpdate    time.Time        `json:"lastUpdate"`
	Validation    ValidationResult `json:"validation"`
}
