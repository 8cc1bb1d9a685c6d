package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRejectsBadArguments(t *testing.T) {
	for name, args := range map[string][]string{
		"no mode":       {"--video", "shot.mp4"},
		"unknown mode":  {"--mode", "conjunto", "--video", "shot.mp4"},
		"missing video": {"--mode", "excel"},
		"unknown flag":  {"--frames", "3"},
		"bad log level": {"--mode", "excel", "--video", "shot.mp4", "--log.level", "loud"},
	} {
		assert.Equal(t, 1, run(args), name)
	}
}

func TestRunUnreadableVideoWritesNothing(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "shot.xlsx")

	code := run([]string{"--mode", "excel", "--video", filepath.Join(dir, "missing.mp4"), "--output", output})
	assert.Equal(t, 1, code)

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}
