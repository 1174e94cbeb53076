package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a logger writing JSON lines to a rotating file. The
// terminal belongs to the TUI, so nothing is written to stdout. The returned
// closer flushes and closes the file.
func NewLogger(c Config) (zerolog.Logger, io.Closer) {
	if dir := filepath.Dir(c.LogPath); dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	lj := &lumberjack.Logger{
		Filename:   c.LogPath,
		MaxSize:    c.LogMaxSizeMB, // megabytes
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAgeDays, // days
		Compress:   true,
	}
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(lj).Level(ParseLevel(c.LogLevel)).With().
		Str("service", "upfocus").
		Timestamp().
		Logger()
	return logger, lj
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
