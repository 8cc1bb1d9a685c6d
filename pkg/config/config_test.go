package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{"--mode", "excel", "--video", "shot.mp4"})
	require.NoError(t, err)

	assert.Equal(t, "excel", cfg.Mode)
	assert.Equal(t, "shot.mp4", cfg.Video)
	assert.Equal(t, "onnx", cfg.Detector.Backend)
	assert.Equal(t, "best.onnx", cfg.Detector.Model)
	assert.Equal(t, 640, cfg.Detector.InputSize)
	assert.InDelta(t, 0.25, cfg.Detector.Confidence, 1e-9)
	assert.Equal(t, []string{"basketball", "rim", "sports ball"}, cfg.Detector.Classes)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "shot_metrics.xlsx", cfg.OutputFor(utils.ModeExcel))
	assert.Equal(t, "shot_trajectory_table.png", cfg.OutputFor(utils.ModeCombined))
	assert.Equal(t, "", cfg.OutputFor("serve"))
}

func TestLoadConfigFileAndFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "analyzer.yaml")
	content := `
mode: visualizer
detector:
  backend: script
  script: ./yolo/detect.py
  confidence: 0.4
outputs:
  visualizer: out/trajectory.png
log:
  level: debug
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	cfg, err := Load([]string{"--config", file, "--mode", "chart"})
	require.NoError(t, err)

	assert.Equal(t, "chart", cfg.Mode, "explicit flag wins over the file")
	assert.Equal(t, "script", cfg.Detector.Backend)
	assert.Equal(t, "./yolo/detect.py", cfg.Detector.Script)
	assert.InDelta(t, 0.4, cfg.Detector.Confidence, 1e-9)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "out/trajectory.png", cfg.OutputFor(utils.ModeVisualizer))
	assert.Equal(t, "best.onnx", cfg.Detector.Model, "keys absent from the file keep defaults")
}

func TestLoadOutputOverride(t *testing.T) {
	cfg, err := Load([]string{"--mode", "excel", "--output", "custom.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "custom.xlsx", cfg.OutputFor(utils.ModeExcel))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoadUnknownFlag(t *testing.T) {
	_, err := Load([]string{"--frames", "10"})
	assert.Error(t, err)
}
