package video

import (
	"errors"
	"fmt"

	"github.com/chenBenjamin97/shot-analyzer/pkg/report"
	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
	"gocv.io/x/gocv"
)

const (
	ModeExcel      = utils.ModeExcel
	ModeVisualizer = utils.ModeVisualizer
	ModeCombined   = utils.ModeCombined
	ModeChart      = utils.ModeChart
)

//Renderer turns a finished analysis into one artifact written to dst
type Renderer interface {
	Render(a *Analysis, dst string) error
}

//Modes lists every rendering mode, in the order they are documented
var Modes = []string{ModeExcel, ModeVisualizer, ModeCombined, ModeChart}

var renderers = map[string]Renderer{
	ModeExcel:      SpreadsheetRenderer{},
	ModeVisualizer: ImageRenderer{},
	ModeCombined:   TableImageRenderer{},
	ModeChart:      ChartRenderer{},
}

var extensions = map[string]string{
	ModeExcel:      ".xlsx",
	ModeVisualizer: ".png",
	ModeCombined:   ".png",
	ModeChart:      ".png",
}

//NewRenderer returns the renderer of given mode
func NewRenderer(mode string) (Renderer, error) {
	if r, ok := renderers[mode]; ok {
		return r, nil
	}

	return nil, fmt.Errorf("NewRenderer: Unknown mode '%s'", mode)
}

//Extension returns the file extension of the artifact produced by given mode
func Extension(mode string) string {
	return extensions[mode]
}

//SpreadsheetRenderer writes the metrics table to an .xlsx file
type SpreadsheetRenderer struct{}

func (SpreadsheetRenderer) Render(a *Analysis, dst string) error {
	return report.WriteSpreadsheet(dst, a.Metrics)
}

//ImageRenderer draws the trajectory and every point over the last frame with a ball.
//First point is red, highest is yellow, last is blue.
type ImageRenderer struct{}

func (ImageRenderer) Render(a *Analysis, dst string) error {
	if a.LastBallFrame.Empty() {
		return errors.New("ImageRenderer: Missing frame with ball")
	}

	img := a.LastBallFrame.Clone()
	defer img.Close()

	plotTrajectory(&img, a.Trajectory, greenRGB)

	for _, p := range a.Trajectory {
		plotMarker(&img, p, 4, cyanRGB)
	}

	plotMarker(&img, a.Metrics.First, 8, redRGB)
	plotMarker(&img, a.Metrics.Highest, 10, yellowRGB)
	plotMarker(&img, a.Metrics.Last, 10, blueRGB)

	return writeImage(dst, img)
}

//TableImageRenderer draws the trajectory with highest (blue) and last (red) points and appends the metrics table below
type TableImageRenderer struct{}

func (TableImageRenderer) Render(a *Analysis, dst string) error {
	if a.LastBallFrame.Empty() {
		return errors.New("TableImageRenderer: Missing frame with ball")
	}

	img := a.LastBallFrame.Clone()
	defer img.Close()

	plotTrajectory(&img, a.Trajectory, greenRGB)
	plotMarker(&img, a.Metrics.Highest, 8, blueRGB)
	plotMarker(&img, a.Metrics.Last, 8, redRGB)

	table := plotTable(a.Metrics.Rows(), img.Cols())
	defer table.Close()

	combined := gocv.NewMat()
	defer combined.Close()
	gocv.Vconcat(img, table, &combined)

	return writeImage(dst, combined)
}

//ChartRenderer plots the trajectory as a chart, independent of the video frames
type ChartRenderer struct{}

func (ChartRenderer) Render(a *Analysis, dst string) error {
	return report.WriteChart(dst, a.Trajectory, a.Metrics)
}
