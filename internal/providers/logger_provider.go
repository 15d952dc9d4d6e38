package providers

import (
	"activitybot/internal/structures"
	"fmt"
	"github.com/rs/zerolog"
	"io"
	"os"
	"path/filepath"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeEvent
	TypeQuery
	TypeReport
)

var logFiles = map[TypeEnum]string{
	TypeApp:    "app.log",
	TypeEvent:  "events.log",
	TypeQuery:  "query.log",
	TypeReport: "report.log",
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

// GetLogTypeByRequestType maps an HTTP method to the log stream handling it:
// writes are tracked events, everything else is a query.
func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypeEvent
	}
	return TypeQuery
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

func (l *LogProvider) get(t TypeEnum) *zerolog.Logger {
	lg, ok := l.loggers[t]
	if !ok {
		lg = l.loggers[TypeApp]
	}
	return &lg
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Error().Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Warn().Msgf(format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Debug().Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Info().Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.get(t).Fatal().Msgf(format, args...)
}

func (l *LogProvider) Close() {
	for _, f := range l.files {
		_ = f.Close()
	}
	l.files = nil
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	if err = os.MkdirAll(conf.Logger.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create log dir: %w", err)
	}

	provider := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(logFiles))}
	for t, name := range logFiles {
		file, err := os.OpenFile(filepath.Join(conf.Logger.Dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, os.FileMode(conf.Logger.Mode))
		if err != nil {
			provider.Close()
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		provider.files = append(provider.files, file)

		var out io.Writer = file
		if conf.Debug {
			out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
		}
		provider.loggers[t] = zerolog.New(out).Level(level).With().Timestamp().Str("log", name).Logger()
	}

	return provider, nil
}
