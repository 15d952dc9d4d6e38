package services

import (
	"activitybot/internal/models"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, ss *ActivityService, user, date string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, ss.RecordMessage(user, date))
	}
}

func TestClampLeaderboardLimit(t *testing.T) {
	cases := map[int]int{-3: 10, 0: 10, 1: 1, 10: 10, 25: 25, 26: 25, 1000: 25}
	for in, want := range cases {
		assert.Equal(t, want, ClampLeaderboardLimit(in), "limit %d", in)
	}
}

func TestLeaderboard_SortedAndLimited(t *testing.T) {
	ss, _, _ := newService()
	record(t, ss, "a", "2024-01-01", 2)
	record(t, ss, "b", "2024-01-01", 5)
	record(t, ss, "c", "2024-01-02", 2)
	record(t, ss, "a", "2024-01-03", 4)
	record(t, ss, "d", "2024-01-03", 1)

	board := ss.Leaderboard(3)
	require.Len(t, board, 3)
	assert.Equal(t, []models.LeaderboardEntry{
		{UserID: "a", Rank: 1, Messages: 6},
		{UserID: "b", Rank: 2, Messages: 5},
		{UserID: "c", Rank: 3, Messages: 2},
	}, board)

	all := ss.Leaderboard(0)
	assert.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Messages, all[i].Messages)
	}
}

func TestLeaderboard_TiesByUserID(t *testing.T) {
	ss, _, _ := newService()
	record(t, ss, "zed", "2024-01-01", 3)
	record(t, ss, "amy", "2024-01-01", 3)
	record(t, ss, "kim", "2024-01-01", 3)

	board := ss.Leaderboard(10)
	require.Len(t, board, 3)
	assert.Equal(t, "amy", board[0].UserID)
	assert.Equal(t, "kim", board[1].UserID)
	assert.Equal(t, "zed", board[2].UserID)
}

func TestLeaderboard_NeverExceedsMax(t *testing.T) {
	ss, _, _ := newService()
	for i := 0; i < 30; i++ {
		record(t, ss, fmt.Sprintf("user-%02d", i), "2024-01-01", 1)
	}
	assert.Len(t, ss.Leaderboard(100), MaxLeaderboardLimit)
	assert.Len(t, ss.Leaderboard(-1), DefaultLeaderboardLimit)
}

func TestLeaderboard_Empty(t *testing.T) {
	ss, _, _ := newService()
	assert.Empty(t, ss.Leaderboard(5))
}

func TestUserProfile_Scenario(t *testing.T) {
	ss, _, _ := newService()
	record(t, ss, "U1", "2024-01-01", 4)
	record(t, ss, "U1", "2024-01-03", 2)

	p, err := ss.UserProfile("U1")
	require.NoError(t, err)
	assert.Equal(t, 6, p.TotalMessages)
	assert.Equal(t, 2, p.ActiveDays)
	assert.Equal(t, 3.0, p.AveragePerDay)
	assert.Equal(t, "2024-01-01", p.FirstMessageDate)
	assert.Equal(t, "2024-01-03", p.LastMessageDate)
	assert.Equal(t, 1, p.Rank)
	assert.Equal(t, "Beginner", p.Level.Name)
}

func TestUserProfile_TodayAndWeek(t *testing.T) {
	ss, _, _ := newService()
	record(t, ss, "U1", "2024-01-10", 2)
	record(t, ss, "U1", "2024-01-08", 1)
	record(t, ss, "U1", "2024-01-05", 7)
	record(t, ss, "U2", "2024-01-10", 20)

	p, err := ss.UserProfile("U1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.TodayMessages)
	assert.Equal(t, 3, p.WeeklyMessages)
	assert.Equal(t, 10, p.TotalMessages)
	assert.Equal(t, 3.3, p.AveragePerDay)
	assert.Equal(t, 2, p.Rank)
	assert.Equal(t, "Newcomer", p.Level.Name)
}

func TestUserProfile_UnrankedUser(t *testing.T) {
	ss, _, _ := newService()
	record(t, ss, "U1", "2024-01-01", 1)
	record(t, ss, "U2", "2024-01-01", 1)

	p, err := ss.UserProfile("nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalMessages)
	assert.Equal(t, 0, p.ActiveDays)
	assert.Equal(t, 0.0, p.AveragePerDay)
	assert.Equal(t, 3, p.Rank)
	assert.Empty(t, p.FirstMessageDate)
	assert.Empty(t, p.JoinDate)
}

func TestUserProfile_JoinDateIsEarliest(t *testing.T) {
	ss, _, _ := newService()
	require.NoError(t, ss.RecordJoin("U1", "alice", "2024-01-05"))
	require.NoError(t, ss.RecordJoin("U2", "bob", "2024-01-01"))
	require.NoError(t, ss.RecordLeave("U1", "alice", "2024-01-03"))
	require.NoError(t, ss.RecordJoin("U1", "alice", "2024-01-02"))

	p, err := ss.UserProfile("U1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", p.JoinDate)
}

func TestUserProfile_InvalidUser(t *testing.T) {
	ss, _, _ := newService()
	_, err := ss.UserProfile(" ")
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestUserActivity(t *testing.T) {
	ss, _, _ := newService()
	record(t, ss, "U1", "2024-01-10", 3)
	record(t, ss, "U1", "2023-12-25", 4)

	a, err := ss.UserActivity("U1")
	require.NoError(t, err)
	assert.Equal(t, &models.UserActivity{UserID: "U1", TodayMessages: 3, TotalMessages: 7}, a)

	_, err = ss.UserActivity("")
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestTodayStats(t *testing.T) {
	ss, _, _ := newService()
	record(t, ss, "U1", "2024-01-10", 2)
	record(t, ss, "U2", "2024-01-10", 1)
	record(t, ss, "U3", "2024-01-09", 5)
	require.NoError(t, ss.TrackJoin("U4", "dan"))
	require.NoError(t, ss.TrackLeave("U5", "eve"))
	require.NoError(t, ss.TrackLeave("U6", "fay"))

	assert.Equal(t, &models.DayStats{
		Date:          "2024-01-10",
		TotalMessages: 3,
		ActiveUsers:   2,
		Joins:         1,
		Leaves:        2,
	}, ss.TodayStats())
}

func TestDailyReport_EmptyAndInvalid(t *testing.T) {
	ss, _, _ := newService()

	stats, err := ss.DailyReport("2024-01-09")
	require.NoError(t, err)
	assert.Equal(t, &models.DayStats{Date: "2024-01-09"}, stats)

	_, err = ss.DailyReport("2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWeeklyReport_TopUsers(t *testing.T) {
	ss, _, _ := newService()
	counts := map[string]int{"a": 1, "b": 7, "c": 3, "d": 3, "e": 9, "f": 2, "g": 5}
	for user, n := range counts {
		record(t, ss, user, "2024-01-02", n)
	}
	record(t, ss, "late", "2024-01-08", 50)

	report, err := ss.WeeklyReport("2023-12-31", 5)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", report.WeekStart)
	assert.Equal(t, 30, report.TotalMessages)
	assert.Equal(t, 7, report.ActiveUsers)
	assert.Equal(t, []models.LeaderboardEntry{
		{UserID: "e", Rank: 1, Messages: 9},
		{UserID: "b", Rank: 2, Messages: 7},
		{UserID: "g", Rank: 3, Messages: 5},
		{UserID: "c", Rank: 4, Messages: 3},
		{UserID: "d", Rank: 5, Messages: 3},
	}, report.TopUsers)
}

func TestWeeklyReport_NormalizesToSunday(t *testing.T) {
	ss, _, _ := newService()
	record(t, ss, "a", "2024-01-10", 2)

	report, err := ss.WeeklyReport("2024-01-12", 0)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", report.WeekStart)
	assert.Equal(t, 2, report.TotalMessages)
}

func TestWeeklyReport_EmptyWeek(t *testing.T) {
	ss, _, _ := newService()

	report, err := ss.WeeklyReport("2024-01-07", 5)
	require.NoError(t, err)
	assert.NotNil(t, report.TopUsers)
	assert.Empty(t, report.TopUsers)
	assert.Equal(t, 0, report.ActiveUsers)

	_, err = ss.WeeklyReport("last week", 5)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
