package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1|max:65535"`
}

type Persistence struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type StatisticConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

type DiscordConfig struct {
	Token   string `yaml:"token"`
	GuildID string `yaml:"guildId" validate:"snowflake"`
}

type ReportConfig struct {
	ChannelID     string `yaml:"channelId" validate:"snowflake"`
	DailyEnabled  bool   `yaml:"dailyEnabled"`
	WeeklyEnabled bool   `yaml:"weeklyEnabled"`
	DailyTime     string `yaml:"dailyTime" validate:"required|clock"`
	WeeklyTime    string `yaml:"weeklyTime" validate:"required|clock"`
	Timezone      string `yaml:"timezone"`
}

type TrackingConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CleanupConfig struct {
	MaxDataAgeDays int    `yaml:"maxDataAgeDays" validate:"required|int|min:1|max:365"`
	Auto           bool   `yaml:"auto"`
	Time           string `yaml:"time" validate:"required|clock"`
}

type BackupConfig struct {
	Dir      string `yaml:"dir" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
	// Level is the zstd encoder level for compressed backups.
	Level string `yaml:"level" validate:"in:fastest,default,better,best"`
}

type ExportConfig struct {
	Dir string `yaml:"dir" validate:"required|unixPath"`
}

type AdminConfig struct {
	Token string `yaml:"token"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Statistic   StatisticConfig `yaml:"statistic"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Discord     DiscordConfig   `yaml:"discord"`
	Report      ReportConfig    `yaml:"report"`
	Tracking    TrackingConfig  `yaml:"tracking"`
	Cleanup     CleanupConfig   `yaml:"cleanup"`
	Backup      BackupConfig    `yaml:"backup"`
	Export      ExportConfig    `yaml:"export"`
	Admin       AdminConfig     `yaml:"admin"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Method  string
	Handler http.Handler
}
