package providers

import (
	"activitybot/internal/structures"
	"fmt"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// millisecondsHook decodes bare integers into durations as milliseconds,
// the unit ACTIVITY_CHECK_INTERVAL has always been given in. Values with a
// unit ("60s") are parsed as Go durations.
func millisecondsHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case time.Duration:
		return v, nil
	case string:
		if ms, err := cast.ToInt64E(strings.TrimSpace(v)); err == nil {
			return time.Duration(ms) * time.Millisecond, nil
		}
		return cast.ToDurationE(v)
	default:
		ms, err := cast.ToInt64E(v)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %v: %w", data, err)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("persistence.filePath", "/var/lib/activitybot/activity_data.json")
	v.SetDefault("statistic.interval", 60*time.Second)
	v.SetDefault("tracking.enabled", true)
	v.SetDefault("report.dailyTime", "18:00")
	v.SetDefault("report.weeklyTime", "18:00")
	v.SetDefault("cleanup.maxDataAgeDays", 90)
	v.SetDefault("cleanup.time", "03:00")
	v.SetDefault("backup.dir", "/var/lib/activitybot/backups")
	v.SetDefault("backup.level", "better")
	v.SetDefault("export.dir", "/var/lib/activitybot/exports")
}

func bindConfigEnv(v *viper.Viper) {
	_ = v.BindEnv("discord.token", "DISCORD_BOT_TOKEN")
	_ = v.BindEnv("discord.guildId", "GUILD_ID")
	_ = v.BindEnv("report.channelId", "REPORT_CHANNEL_ID")
	_ = v.BindEnv("report.dailyEnabled", "DAILY_REPORTS_ENABLED")
	_ = v.BindEnv("report.weeklyEnabled", "WEEKLY_REPORTS_ENABLED")
	_ = v.BindEnv("report.timezone", "REPORT_TIMEZONE")
	_ = v.BindEnv("statistic.interval", "ACTIVITY_CHECK_INTERVAL")
	_ = v.BindEnv("tracking.enabled", "TRACKING_ENABLED")
	_ = v.BindEnv("cleanup.maxDataAgeDays", "MAX_DATA_AGE_DAYS")
	_ = v.BindEnv("persistence.filePath", "ACTIVITY_DATA_FILE")
	_ = v.BindEnv("logger.level", "ACTIVITY_LOG_LEVEL")
	_ = v.BindEnv("admin.token", "ADMIN_TOKEN")
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setConfigDefaults(v)
	bindConfigEnv(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		millisecondsHook,
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ActivityBot"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
