// Package logger wraps logrus with file rotation. Init configures the
// process-wide logger; Named hands out component-scoped entries.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu   sync.RWMutex
	root = newDefault()
)

// Config controls level, format and optional file output with rotation.
type Config struct {
	// Level is one of debug, info, warn, error. Invalid values fall back
	// to info.
	Level string
	// OutputFile, when set, duplicates output into a rotated file.
	OutputFile string
	// MaxSize is the rotation threshold in megabytes.
	MaxSize    int
	MaxBackups int
	// MaxAge is the retention of rotated files in days.
	MaxAge   int
	Compress bool
}

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05",
	})
	return l
}

// Init configures the process-wide logger. Safe to call more than once;
// the last call wins. Entries handed out by Named before Init keep
// logging through the reconfigured backend.
func Init(cfg Config) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	writers := []io.Writer{os.Stderr}
	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0o755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.OutputFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}

	mu.Lock()
	defer mu.Unlock()
	root.SetLevel(level)
	root.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Named returns an entry tagged with a component name.
func Named(name string) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return root.WithField("component", name)
}

// SetLevel adjusts the level at runtime.
func SetLevel(level logrus.Level) {
	mu.RLock()
	defer mu.RUnlock()
	root.SetLevel(level)
}
