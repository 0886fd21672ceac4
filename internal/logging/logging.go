package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format names.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config selects the level and encoding of the logger.
type Config struct {
	Level  string
	Format string
}

// DefaultConfig logs warnings and errors in console format.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: FormatConsole}
}

// Validate reports whether cfg names a known level and format.
func (cfg Config) Validate() error {
	if _, err := zapcore.ParseLevel(levelOrDefault(cfg.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: must be debug, info, warn, or error", cfg.Level)
	}
	switch cfg.Format {
	case "", FormatJSON, FormatConsole:
		return nil
	default:
		return fmt.Errorf("invalid log format %q: must be %q or %q", cfg.Format, FormatJSON, FormatConsole)
	}
}

// New creates a zap logger writing to standard error.
func New(cfg Config) (*zap.Logger, error) {
	config, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}
	return config.Build()
}

// NewWithWriter creates a zap logger writing to w.
func NewWithWriter(cfg Config, w io.Writer) (*zap.Logger, error) {
	config, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}
	var enc zapcore.Encoder
	if config.Encoding == FormatConsole {
		enc = zapcore.NewConsoleEncoder(config.EncoderConfig)
	} else {
		enc = zapcore.NewJSONEncoder(config.EncoderConfig)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), config.Level)
	return zap.New(core), nil
}

func buildConfig(cfg Config) (zap.Config, error) {
	if err := cfg.Validate(); err != nil {
		return zap.Config{}, err
	}
	level, _ := zapcore.ParseLevel(levelOrDefault(cfg.Level))

	var config zap.Config
	if level == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == FormatJSON {
		config.Encoding = FormatJSON
	} else {
		config.Encoding = FormatConsole
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config, nil
}

func levelOrDefault(level string) string {
	if level == "" {
		return "warn"
	}
	return level
}
