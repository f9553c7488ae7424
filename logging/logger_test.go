package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "Channel removed",
		Data: logrus.Fields{
			"component": "channels",
			"channel":   "me/fork",
			"category":  "ui",
		},
	}

	out, err := (&TextFormatter{Config: FormatConfig{DisableComponent: true}}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 12:30:00 [WARN] Channel removed category=ui channel=me/fork\n", string(out))

	out, err = (&TextFormatter{Config: FormatConfig{DisableTimestamp: true}}).Format(entry)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "[WARN] ["))
	assert.Contains(t, string(out), "channels")
}

func TestNewLoggerLevelAndStderr(t *testing.T) {
	t.Setenv("NAVCORE_HOME", t.TempDir())
	t.Setenv("NAVCORE_LOG_LEVEL", "")
	t.Setenv("NAVCORE_DEBUG", "")

	t.Run("interactive info stays off stderr", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger("nav", Config{File: FileSinkConfig{Disabled: true}}, &buf, true)
		log.Info("hello")
		assert.Empty(t, buf.String())
		assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())
	})

	t.Run("non-interactive goes to stderr", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger("nav", Config{File: FileSinkConfig{Disabled: true}}, &buf, false)
		log.Info("hello")
		assert.Contains(t, buf.String(), "hello")
	})

	t.Run("env level wins over config", func(t *testing.T) {
		t.Setenv("NAVCORE_LOG_LEVEL", "error")
		log := newLogger("nav", Config{Level: "debug", File: FileSinkConfig{Disabled: true}}, nil, true)
		assert.Equal(t, logrus.ErrorLevel, log.Logger.GetLevel())
	})

	t.Run("json preset always to stderr", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := Config{
			File:   FileSinkConfig{Disabled: true},
			Format: FormatConfig{Preset: "json", StructuredToStderr: "always"},
		}
		newLogger("prefs", cfg, &buf, true).WithField("key", "ui_channel").Info("saved")

		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "prefs", rec["component"])
		assert.Equal(t, "ui_channel", rec["key"])
	})
}

func TestNewLoggerFileSink(t *testing.T) {
	home := t.TempDir()
	t.Setenv("NAVCORE_HOME", home)
	t.Setenv("NAVCORE_LOG_LEVEL", "")

	newLogger("store", Config{Format: FormatConfig{StructuredToStderr: "never"}}, nil, true).Info("to file")

	matches, err := filepath.Glob(filepath.Join(home, "state", "logs", "store-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	custom := filepath.Join(t.TempDir(), "nested", "navcore.log")
	newLogger("store", Config{File: FileSinkConfig{Path: custom}, Format: FormatConfig{StructuredToStderr: "never"}}, nil, true).Info("custom")
	data, err = os.ReadFile(custom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "custom")
}

func TestNewLoggerCachesPerComponent(t *testing.T) {
	t.Setenv("NAVCORE_HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	Reset()
	t.Cleanup(Reset)

	a := NewLogger("cache-test")
	assert.Same(t, a, NewLogger("cache-test"))
	assert.NotSame(t, a, NewLogger("other"))
	assert.Equal(t, "cache-test", a.Data["component"])
}
