package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.Same(t, l, logger)

	Warn(Fields{"frame": 7}, "ball not detected")
	assert.Contains(t, buf.String(), "ball not detected")
	assert.Contains(t, buf.String(), "frame:7")
}

func TestNewLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewLogger(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	Info(nil, "hidden")
	Debug(nil, "hidden too")
	Error(nil, "visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := NewLogger(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLoggerFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "analyzer.log")
	var buf bytes.Buffer
	_, err := NewLogger(Options{Level: "info", File: file, MaxSizeMB: 1, Output: &buf})
	require.NoError(t, err)

	Info(Fields{"video": "shot.mp4"}, "analysis started")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "analysis started")
}
