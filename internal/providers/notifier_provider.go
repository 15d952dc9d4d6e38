package providers

import (
	"activitybot/internal/models"
	"activitybot/internal/structures"
	"context"
	"fmt"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"strings"
	"time"
)

const (
	dailyReportColor  = 0x9932CC
	weeklyReportColor = 0xFFD700
)

var medals = []string{"🥇", "🥈", "🥉"}

// NotifierInterface delivers scheduled reports to the report channel.
type NotifierInterface interface {
	// Enabled reports whether a destination is configured. Scheduled jobs
	// skip their tick when it is not.
	Enabled() bool
	SendDailyReport(ctx context.Context, report *models.DayStats) error
	SendWeeklyReport(ctx context.Context, report *models.WeeklyReport) error
	Close(ctx context.Context)
}

type messageSender interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

type DiscordNotifier struct {
	client    rest.Client
	sender    messageSender
	channelID snowflake.ID
	logger    Logger
}

func NewNotifierProvider(conf *structures.Config, logger Logger) (NotifierInterface, error) {
	if conf.Report.ChannelID == "" {
		logger.Infof(TypeReport, "Report channel not configured, scheduled reports disabled")
		return &noopNotifier{}, nil
	}

	channelID, err := snowflake.Parse(conf.Report.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("invalid report channel id %q: %w", conf.Report.ChannelID, err)
	}

	client := rest.NewClient(conf.Discord.Token)
	logger.Infof(TypeReport, "Reports will be delivered to channel %s", channelID)
	return &DiscordNotifier{
		client:    client,
		sender:    rest.New(client),
		channelID: channelID,
		logger:    logger,
	}, nil
}

func (n *DiscordNotifier) Enabled() bool {
	return true
}

func (n *DiscordNotifier) SendDailyReport(ctx context.Context, report *models.DayStats) error {
	return n.send(ctx, DailyReportEmbed(report, time.Now()))
}

func (n *DiscordNotifier) SendWeeklyReport(ctx context.Context, report *models.WeeklyReport) error {
	return n.send(ctx, WeeklyReportEmbed(report, time.Now()))
}

func (n *DiscordNotifier) Close(ctx context.Context) {
	if n.client != nil {
		n.client.Close(ctx)
	}
}

func (n *DiscordNotifier) send(ctx context.Context, embed discord.Embed) error {
	msg := discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		Build()
	if _, err := n.sender.CreateMessage(n.channelID, msg, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to deliver %q to channel %s: %w", embed.Title, n.channelID, err)
	}
	return nil
}

func DailyReportEmbed(report *models.DayStats, now time.Time) discord.Embed {
	title := "📊 Daily Activity Report - " + report.Date
	if day, err := models.ParseDate(report.Date); err == nil {
		title = "📊 Daily Activity Report - " + day.Format("Mon Jan 02 2006")
	}
	return discord.NewEmbedBuilder().
		SetTitle(title).
		SetColor(dailyReportColor).
		AddField("💬 Total Messages", fmt.Sprint(report.TotalMessages), true).
		AddField("👥 Active Users", fmt.Sprint(report.ActiveUsers), true).
		AddField("➕ New Members", fmt.Sprint(report.Joins), true).
		AddField("➖ Members Left", fmt.Sprint(report.Leaves), true).
		SetFooterText("Daily activity summary").
		SetTimestamp(now).
		Build()
}

func WeeklyReportEmbed(report *models.WeeklyReport, now time.Time) discord.Embed {
	embed := discord.NewEmbedBuilder().
		SetTitle("🏆 Weekly Activity Report - week of "+report.WeekStart).
		SetColor(weeklyReportColor).
		AddField("💬 Total Messages", fmt.Sprint(report.TotalMessages), true).
		AddField("👥 Active Users", fmt.Sprint(report.ActiveUsers), true).
		SetFooterText("Weekly activity summary").
		SetTimestamp(now)

	if len(report.TopUsers) == 0 {
		embed.AddField("Top Contributors", "No activity recorded this week.", false)
	} else {
		embed.AddField("Top Contributors", RankingLines(report.TopUsers), false)
	}
	return embed.Build()
}

// RankingLines renders leaderboard entries one per line, medals for the
// first three places.
func RankingLines(entries []models.LeaderboardEntry) string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		prefix := fmt.Sprintf("%d.", e.Rank)
		if i < len(medals) {
			prefix = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s <@%s> - %d messages", prefix, e.UserID, e.Messages))
	}
	return strings.Join(lines, "\n")
}

type noopNotifier struct{}

func (n *noopNotifier) Enabled() bool { return false }
func (n *noopNotifier) SendDailyReport(_ context.Context, _ *models.DayStats) error {
	return nil
}
func (n *noopNotifier) SendWeeklyReport(_ context.Context, _ *models.WeeklyReport) error {
	return nil
}
func (n *noopNotifier) Close(_ context.Context) {}
