package video

import (
	"errors"
	"fmt"
	"image"

	"github.com/chenBenjamin97/shot-analyzer/pkg/config"
	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"gocv.io/x/gocv"
)

const (
	BackendONNX   = "onnx"
	BackendScript = "script"
)

//letterbox padding, same gray YOLOv8 uses
var padColor = gocv.NewScalar(114, 114, 114, 0)

//NewDetector builds the detector selected by cfg.Backend. The script backend needs the video path,
//since the external process reads the video on its own.
func NewDetector(cfg config.DetectorConfig, videoPath string) (Detector, error) {
	switch cfg.Backend {
	case BackendONNX, "":
		return NewONNXDetector(cfg)
	case BackendScript:
		return NewScriptDetector(cfg, videoPath)
	}

	return nil, fmt.Errorf("NewDetector: Unknown detector backend '%s'", cfg.Backend)
}

//ONNXDetector runs a YOLOv8 ONNX export through OpenCV's dnn module
type ONNXDetector struct {
	net        gocv.Net
	inputSize  int
	confidence float32
	nms        float32
	classes    []string
}

func NewONNXDetector(cfg config.DetectorConfig) (*ONNXDetector, error) {
	if cfg.InputSize <= 0 {
		return nil, fmt.Errorf("NewONNXDetector: Invalid input size %d", cfg.InputSize)
	}

	net := gocv.ReadNetFromONNX(cfg.Model)
	if net.Empty() {
		return nil, fmt.Errorf("NewONNXDetector: Could not load model '%s'", cfg.Model)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("NewONNXDetector: Error, got '%v'", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("NewONNXDetector: Error, got '%v'", err)
	}

	return &ONNXDetector{
		net:        net,
		inputSize:  cfg.InputSize,
		confidence: float32(cfg.Confidence),
		nms:        float32(cfg.NMS),
		classes:    cfg.Classes,
	}, nil
}

//Detect letterboxes the frame into a square, runs a forward pass and maps boxes back to frame pixels
func (d *ONNXDetector) Detect(frame gocv.Mat) ([]shot.Detection, error) {
	if frame.Empty() {
		return nil, errors.New("Detect: Empty frame")
	}

	height, width := frame.Rows(), frame.Cols()
	maxDim := max(height, width)

	square := gocv.NewMatWithSizeFromScalar(padColor, maxDim, maxDim, gocv.MatTypeCV8UC3)
	defer square.Close()

	roi := square.Region(image.Rect(0, 0, width, height))
	frame.CopyTo(&roi)
	roi.Close()

	scale := float64(maxDim) / float64(d.inputSize)

	blob := gocv.BlobFromImage(square, 1.0/255.0, image.Pt(d.inputSize, d.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	if sizes := output.Size(); len(d.classes) > 0 && len(sizes) == 3 && sizes[1]-4 != len(d.classes) {
		return nil, fmt.Errorf("Detect: Model predicts %d classes but %d are configured", sizes[1]-4, len(d.classes))
	}

	return decodeYOLOv8(output, scale, d.confidence, d.nms, width, height)
}

func (d *ONNXDetector) Close() error {
	return d.net.Close()
}

//decodeYOLOv8 parses a [1, 4+classes, anchors] output: (cx, cy, w, h) followed by one score per class.
//Each anchor keeps its best class; non maximum suppression runs per class.
func decodeYOLOv8(output gocv.Mat, scale float64, confidence, nms float32, width, height int) ([]shot.Detection, error) {
	sizes := output.Size()
	if len(sizes) != 3 || sizes[0] != 1 || sizes[1] < 5 {
		return nil, fmt.Errorf("decodeYOLOv8: Unexpected output shape %v", sizes)
	}

	rows, anchors := sizes[1], sizes[2]

	boxesPerClass := make(map[int][]image.Rectangle)
	scoresPerClass := make(map[int][]float32)
	candidatesPerClass := make(map[int][]shot.Detection)

	for a := 0; a < anchors; a++ {
		bestClass, bestScore := -1, float32(0)
		for r := 4; r < rows; r++ {
			if score := output.GetFloatAt3(0, r, a); score > bestScore {
				bestClass, bestScore = r-4, score
			}
		}

		if bestClass < 0 || bestScore < confidence {
			continue
		}

		cx := float64(output.GetFloatAt3(0, 0, a))
		cy := float64(output.GetFloatAt3(0, 1, a))
		w := float64(output.GetFloatAt3(0, 2, a))
		h := float64(output.GetFloatAt3(0, 3, a))

		det := shot.Detection{
			Class:      bestClass,
			Confidence: bestScore,
			Xmin:       (cx - w/2) * scale,
			Ymin:       (cy - h/2) * scale,
			Xmax:       (cx + w/2) * scale,
			Ymax:       (cy + h/2) * scale,
		}
		clampDetection(&det, height, width)
		if det.Xmax <= det.Xmin || det.Ymax <= det.Ymin { //box lies in the letterbox padding
			continue
		}

		candidatesPerClass[bestClass] = append(candidatesPerClass[bestClass], det)
		boxesPerClass[bestClass] = append(boxesPerClass[bestClass], image.Rect(int(det.Xmin), int(det.Ymin), int(det.Xmax), int(det.Ymax)))
		scoresPerClass[bestClass] = append(scoresPerClass[bestClass], bestScore)
	}

	detections := make([]shot.Detection, 0)
	for class := 0; class < rows-4; class++ {
		candidates := candidatesPerClass[class]
		if len(candidates) == 0 {
			continue
		}

		for _, idx := range gocv.NMSBoxes(boxesPerClass[class], scoresPerClass[class], confidence, nms) {
			detections = append(detections, candidates[idx])
		}
	}

	return detections, nil
}

//clampDetection fixes bounding box values in case they are out of frame's range
func clampDetection(d *shot.Detection, frameHeight, frameWidth int) {
	d.Xmin = clamp(d.Xmin, float64(frameWidth))
	d.Xmax = clamp(d.Xmax, float64(frameWidth))
	d.Ymin = clamp(d.Ymin, float64(frameHeight))
	d.Ymax = clamp(d.Ymax, float64(frameHeight))
}

func clamp(v, upper float64) float64 {
	if v < 0 {
		return 0
	} else if v > upper {
		return upper
	}

	return v
}
