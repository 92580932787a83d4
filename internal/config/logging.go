package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
)

type LoggingConfigType string

const (
	LoggingConfigTypeText LoggingConfigType = "text"
	LoggingConfigTypeJson LoggingConfigType = "json"
	LoggingConfigTypeTint LoggingConfigType = "tint"
	LoggingConfigTypeNone LoggingConfigType = "none"
)

// LoggingConfigLevel is any level slog understands, including offsets such as "debug+2". Empty means info.
type LoggingConfigLevel string

const (
	LevelDebug LoggingConfigLevel = "debug"
	LevelInfo  LoggingConfigLevel = "info"
	LevelWarn  LoggingConfigLevel = "warn"
	LevelError LoggingConfigLevel = "error"
)

func (l LoggingConfigLevel) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(string(l)))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

type LoggingConfigOutput string

const (
	OutputStdout LoggingConfigOutput = "stdout"
	OutputStderr LoggingConfigOutput = "stderr"
)

// Writer is stderr unless stdout is asked for, so command output stays clean.
func (o LoggingConfigOutput) Writer() io.Writer {
	if o == OutputStdout {
		return os.Stdout
	}
	return os.Stderr
}

// LoggingImpl is implemented by each logging type.
type LoggingImpl interface {
	GetRootLogger() *slog.Logger
	GetType() LoggingConfigType
}

// LoggingConfig holds the logging type selected by the type key.
type LoggingConfig struct {
	InnerVal LoggingImpl `json:"-" yaml:"-"`
}

func (l *LoggingConfig) GetRootLogger() *slog.Logger {
	if l == nil || l.InnerVal == nil {
		return (&LoggingConfigNone{}).GetRootLogger()
	}
	return l.InnerVal.GetRootLogger()
}

func (l *LoggingConfig) GetType() LoggingConfigType {
	if l == nil || l.InnerVal == nil {
		return LoggingConfigTypeNone
	}
	return l.InnerVal.GetType()
}

var _ LoggingImpl = (*LoggingConfig)(nil)

func (LoggingConfig) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{
		Type: "string",
		Enum: []any{LoggingConfigTypeText, LoggingConfigTypeJson, LoggingConfigTypeTint, LoggingConfigTypeNone},
	})
	props.Set("to", &jsonschema.Schema{Type: "string", Enum: []any{OutputStdout, OutputStderr}})
	props.Set("level", &jsonschema.Schema{
		Type:        "string",
		Description: "debug, info, warn or error, optionally with an offset such as debug+2",
	})
	props.Set("source", &jsonschema.Schema{Type: "boolean"})
	props.Set("no_color", &jsonschema.Schema{Type: "boolean", Description: "tint only; defaults to off when stdout is not a terminal"})
	props.Set("time_format", &jsonschema.Schema{Type: "string", Description: "tint only"})

	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{"type"},
	}
}
