package config

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/rmorlok/bitsclient/internal/bslog"
)

// DefaultTintTimeFormat keeps milliseconds so request and response lines can be lined up.
const DefaultTintTimeFormat = "15:04:05.000"

// LoggingConfigSlog writes through the text or json handler of log/slog.
type LoggingConfigSlog struct {
	Type   LoggingConfigType   `json:"type" yaml:"type"`
	To     LoggingConfigOutput `json:"to,omitempty" yaml:"to,omitempty"`
	Level  LoggingConfigLevel  `json:"level,omitempty" yaml:"level,omitempty"`
	Source bool                `json:"source,omitempty" yaml:"source,omitempty"`
}

func (l *LoggingConfigSlog) GetType() LoggingConfigType {
	return l.Type
}

func (l *LoggingConfigSlog) GetRootLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     l.Level.Level(),
		AddSource: l.Source,
	}

	if l.Type == LoggingConfigTypeJson {
		return slog.New(slog.NewJSONHandler(l.To.Writer(), opts))
	}
	return slog.New(slog.NewTextHandler(l.To.Writer(), opts))
}

// LoggingConfigTint is colorized human output for interactive use.
type LoggingConfigTint struct {
	Type       LoggingConfigType   `json:"type" yaml:"type"`
	To         LoggingConfigOutput `json:"to,omitempty" yaml:"to,omitempty"`
	Level      LoggingConfigLevel  `json:"level,omitempty" yaml:"level,omitempty"`
	Source     bool                `json:"source,omitempty" yaml:"source,omitempty"`
	NoColor    *bool               `json:"no_color,omitempty" yaml:"no_color,omitempty"`
	TimeFormat string              `json:"time_format,omitempty" yaml:"time_format,omitempty"`
}

func (l *LoggingConfigTint) GetType() LoggingConfigType {
	return LoggingConfigTypeTint
}

func (l *LoggingConfigTint) GetRootLogger() *slog.Logger {
	noColor := color.NoColor
	if l.NoColor != nil {
		noColor = *l.NoColor
	}

	timeFormat := l.TimeFormat
	if timeFormat == "" {
		timeFormat = DefaultTintTimeFormat
	}

	return slog.New(tint.NewHandler(l.To.Writer(), &tint.Options{
		Level:      l.Level.Level(),
		AddSource:  l.Source,
		NoColor:    noColor,
		TimeFormat: timeFormat,
	}))
}

type LoggingConfigNone struct {
	Type LoggingConfigType `json:"type" yaml:"type"`
}

func (l *LoggingConfigNone) GetType() LoggingConfigType {
	return LoggingConfigTypeNone
}

func (l *LoggingConfigNone) GetRootLogger() *slog.Logger {
	return bslog.NewNoopLogger()
}
