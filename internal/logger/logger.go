package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Every entry carries the service name so the
// API server and resumectl can share one log sink. Outside debug mode repeated
// messages are sampled, which keeps upload floods from drowning the log.
func New(service string, json bool, debug bool) (*zap.Logger, error) {
	return newConfig(service, json, debug).Build()
}

func newConfig(service string, json bool, debug bool) zap.Config {
	level := zapcore.InfoLevel
	encoding := "console"
	if json {
		encoding = "json"
	}

	var sampling *zap.SamplingConfig
	if debug {
		level = zapcore.DebugLevel
	} else {
		sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}

	cfg := zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		Development:       debug,
		DisableStacktrace: !debug,
		Sampling:          sampling,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:    "msg",
			NameKey:       "component",
			StacktraceKey: "stacktrace",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	if service != "" {
		cfg.InitialFields = map[string]any{"service": service}
	}
	return cfg
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
