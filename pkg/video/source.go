package video

import (
	"fmt"

	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"gocv.io/x/gocv"
)

type captureSource struct {
	cap *gocv.VideoCapture
}

//OpenSource opens given video file. Every failure is reported as shot.ErrSourceUnavailable.
func OpenSource(videoPath string) (FrameSource, error) {
	cap, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s', got '%v'", shot.ErrSourceUnavailable, videoPath, err)
	}

	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("%w: '%s'", shot.ErrSourceUnavailable, videoPath)
	}

	return &captureSource{cap: cap}, nil
}

func (s *captureSource) Read(frame *gocv.Mat) bool {
	return s.cap.Read(frame) && !frame.Empty()
}

func (s *captureSource) FPS() float64 {
	return s.cap.Get(gocv.VideoCaptureFPS)
}

func (s *captureSource) Close() error {
	return s.cap.Close()
}
