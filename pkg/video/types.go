package video

import (
	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"gocv.io/x/gocv"
)

//FrameSource is a sequential frame iterator over one video
type FrameSource interface {
	//Read decodes the next frame into given Mat, returns false at the end of the video
	Read(frame *gocv.Mat) bool
	//FPS is the frame rate reported by the container, <= 0 when unknown
	FPS() float64
	Close() error
}

//Detector finds balls and rims in one frame
type Detector interface {
	Detect(frame gocv.Mat) ([]shot.Detection, error)
	Close() error
}

//Analysis is the frozen result of one extraction pass
type Analysis struct {
	Trajectory  shot.Trajectory
	Calibration shot.RimCalibration
	Metrics     shot.Metrics
	FPS         float64
	Frames      int

	//LastBallFrame is a copy of the last frame that contributed a ball point, owned by the Analysis
	LastBallFrame gocv.Mat
}

//Close releases the retained frame
func (a *Analysis) Close() error {
	return a.LastBallFrame.Close()
}
