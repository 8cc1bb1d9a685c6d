package video

import (
	"fmt"

	"github.com/chenBenjamin97/shot-analyzer/pkg/config"
	log "github.com/chenBenjamin97/shot-analyzer/pkg/log"
	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"gocv.io/x/gocv"
)

//Extract runs the single sequential pass over src: one detector call per frame, ball centers appended in
//frame order, widest rim kept for calibration. It does not close src or det.
func Extract(src FrameSource, det Detector, videoName string) (*Analysis, error) {
	frame := gocv.NewMat()
	defer frame.Close()

	lastBallFrame := gocv.NewMat()
	collector := shot.NewCollector()

	for src.Read(&frame) {
		detections, err := det.Detect(frame)
		if err != nil {
			lastBallFrame.Close()
			return nil, fmt.Errorf("Extract: Detector failed on frame %d, got '%w'", collector.Frames()+1, err)
		}

		added := collector.Observe(detections)
		if added == 0 {
			log.Warn(log.Fields{"video": videoName, "frame": collector.Frames()}, "ball not detected")
			continue
		}

		if added > 1 {
			log.Debug(log.Fields{"video": videoName, "frame": collector.Frames(), "balls": added}, "several balls detected, all of them are kept")
		}

		frame.CopyTo(&lastBallFrame)
	}

	fps := src.FPS()

	trajectory, calibration, err := collector.Freeze()
	if err != nil {
		lastBallFrame.Close()
		return nil, err
	}

	metrics, err := shot.ComputeMetrics(trajectory, calibration, fps)
	if err != nil {
		lastBallFrame.Close()
		return nil, err
	}

	if !metrics.FrameRateKnown {
		log.Warn(log.Fields{"video": videoName, "fps": fps}, "video reports no frame rate, elapsed time assumed to be 1 second, velocity is not meaningful")
	}

	if metrics.DuplicateFramePoints > 0 {
		log.Warn(log.Fields{"video": videoName, "duplicates": metrics.DuplicateFramePoints}, "some frames contributed more than one ball point")
	}

	log.Info(log.Fields{
		"video":  videoName,
		"points": len(trajectory),
		"missed": collector.MissedFrames(),
	}, "extraction finished")

	return &Analysis{
		Trajectory:    trajectory,
		Calibration:   calibration,
		Metrics:       metrics,
		FPS:           fps,
		Frames:        collector.Frames(),
		LastBallFrame: lastBallFrame,
	}, nil
}

//Pipeline wires a frame source, a detector and a renderer for one invocation
type Pipeline struct {
	OpenSource  func(videoPath string) (FrameSource, error)
	NewDetector func(videoPath string) (Detector, error)
}

//NewPipeline returns a pipeline reading videos with OpenCV and detecting with the configured backend
func NewPipeline(cfg config.DetectorConfig) *Pipeline {
	return &Pipeline{
		OpenSource: OpenSource,
		NewDetector: func(videoPath string) (Detector, error) {
			return NewDetector(cfg, videoPath)
		},
	}
}

//Run analyzes the video and renders the result of given mode to dst.
//Nothing is written unless the whole analysis succeeded.
func (p *Pipeline) Run(videoPath, mode, dst string) (shot.Metrics, error) {
	renderer, err := NewRenderer(mode)
	if err != nil {
		return shot.Metrics{}, err
	}

	src, err := p.OpenSource(videoPath)
	if err != nil {
		return shot.Metrics{}, err
	}
	defer src.Close()

	det, err := p.NewDetector(videoPath)
	if err != nil {
		return shot.Metrics{}, err
	}
	defer det.Close()

	analysis, err := Extract(src, det, videoPath)
	if err != nil {
		return shot.Metrics{}, err
	}
	defer analysis.Close()

	if err := renderer.Render(analysis, dst); err != nil {
		return shot.Metrics{}, err
	}

	log.Info(log.Fields{
		"video":  videoPath,
		"mode":   mode,
		"output": dst,
		"frames": analysis.Frames,
		"fps":    analysis.FPS,
		"rim_px": analysis.Calibration.WidthPixels,
	}, "report generated")

	return analysis.Metrics, nil
}
