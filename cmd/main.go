package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/chenBenjamin97/shot-analyzer/pkg/api"
	"github.com/chenBenjamin97/shot-analyzer/pkg/config"
	log "github.com/chenBenjamin97/shot-analyzer/pkg/log"
	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
	"github.com/chenBenjamin97/shot-analyzer/pkg/video"
)

const modeServe = "serve"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := log.NewLogger(log.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSize,
		MaxAgeDays: cfg.Log.MaxAge,
		MaxBackups: cfg.Log.MaxBackups,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	pipeline := video.NewPipeline(cfg.Detector)

	if cfg.Mode == modeServe {
		return serve(cfg, pipeline)
	}

	if _, err := video.NewRenderer(cfg.Mode); err != nil {
		log.Error(log.Fields{"mode": cfg.Mode, "modes": video.Modes}, "Error: --mode must be one of the listed modes or 'serve'")
		return 1
	}

	if cfg.Video == "" {
		log.Error(nil, "Error: --video is required")
		return 1
	}

	output := cfg.OutputFor(cfg.Mode)
	metrics, err := pipeline.Run(cfg.Video, cfg.Mode, output)
	if err != nil {
		fields := log.Fields{"video": cfg.Video, "mode": cfg.Mode, "error": err}
		switch {
		case errors.Is(err, shot.ErrSourceUnavailable):
			log.Error(fields, "Could not open the video")
		case errors.Is(err, shot.ErrInsufficientTrajectory):
			log.Error(fields, "Not enough ball detections to build a trajectory")
		case errors.Is(err, shot.ErrNoCalibration):
			log.Error(fields, "Rim was never detected, can not calibrate distances")
		default:
			log.Error(fields, "Analysis failed")
		}
		return 1
	}

	log.Info(log.Fields{
		"output":   output,
		"angle":    utils.FormatRounded(metrics.AngleDegrees, 2),
		"velocity": utils.FormatRounded(metrics.VelocityX, 3),
	}, "Report generated")

	return 0
}

//serve runs the HTTP surface until the server stops
func serve(cfg *config.Config, pipeline *video.Pipeline) int {
	for _, dir := range []string{cfg.Directory.Source, cfg.Directory.Ready} {
		if err := utils.EnsureDir(dir); err != nil {
			log.Error(log.Fields{"dir": dir, "error": err}, "Error creating directory")
			return 1
		}
	}

	r := api.SetRouter(cfg, pipeline)
	if err := r.Run(":" + cfg.HTTP.Port); err != nil {
		log.Error(log.Fields{"error": err}, "Error: HTTP server stopped")
		return 1
	}

	return 0
}
