package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/navcore/config"
	"github.com/grovetools/navcore/pkg/paths"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	stderrIsTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	entry := newLogger(component, logCfg, os.Stderr, stderrIsTTY)
	loggers[component] = entry
	return entry
}

// Reset drops every cached logger so the next NewLogger re-reads the
// configuration.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
}

// newLogger builds a logger from logCfg. stderr is written to in "always"
// mode, and in "auto" mode when debugging or when it is not a terminal.
func newLogger(component string, logCfg Config, stderr io.Writer, stderrIsTTY bool) *logrus.Entry {
	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("NAVCORE_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("NAVCORE_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer
	if path := logFilePath(component, logCfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				writers = append(writers, file)
			} else if logCfg.File.Path != "" {
				logger.Warnf("Failed to open log file %s: %v", path, err)
			}
		} else if logCfg.File.Path != "" {
			logger.Warnf("Failed to create log directory %s: %v", filepath.Dir(path), err)
		}
	}

	shouldLogToStderr := false
	switch logCfg.Format.StructuredToStderr {
	case "always":
		shouldLogToStderr = true
	case "never":
	default:
		isDebug := os.Getenv("NAVCORE_DEBUG") == "1" || logger.GetLevel() >= logrus.DebugLevel
		shouldLogToStderr = isDebug || !stderrIsTTY
	}
	if shouldLogToStderr && stderr != nil {
		writers = append(writers, stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger.WithField("component", component)
}

// logFilePath resolves the file sink path, or "" when it is disabled.
func logFilePath(component string, sink FileSinkConfig) string {
	if sink.Disabled {
		return ""
	}
	if sink.Path != "" {
		return expandPath(sink.Path)
	}
	dir := paths.LogDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", component, time.Now().Format("2006-01-02")))
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
