package report

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	trajectoryColor = color.RGBA{R: 0, G: 160, B: 0, A: 255}
	highestColor    = color.RGBA{R: 230, G: 200, B: 0, A: 255}
	lastColor       = color.RGBA{R: 0, G: 0, B: 230, A: 255}
)

//WriteChart plots the trajectory with y pointing up (image y is negated) and saves it.
//The image format follows the file extension (png, svg, pdf...).
func WriteChart(path string, trajectory shot.Trajectory, metrics shot.Metrics) error {
	if len(trajectory) == 0 {
		return errors.New("WriteChart: Empty trajectory")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Shot trajectory - angle %.2f deg, vx %.3f m/s", metrics.AngleDegrees, metrics.VelocityX)
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "height (px)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(trajectory))
	for i, tp := range trajectory {
		pts[i].X = tp.X
		pts[i].Y = -tp.Y
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("WriteChart: Error, got '%v'", err)
	}
	line.Color = trajectoryColor
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = trajectoryColor
	points.Radius = vg.Points(2)
	p.Add(line, points)
	p.Legend.Add("trajectory", line, points)

	highest, err := marker(metrics.Highest, highestColor)
	if err != nil {
		return err
	}
	last, err := marker(metrics.Last, lastColor)
	if err != nil {
		return err
	}
	p.Add(highest, last)
	p.Legend.Add(fmt.Sprintf("highest (frame %d)", metrics.Highest.Frame), highest)
	p.Legend.Add(fmt.Sprintf("last (frame %d)", metrics.Last.Frame), last)
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		os.Remove(path)
		return fmt.Errorf("WriteChart: Could not save '%s', got '%v'", path, err)
	}

	return nil
}

func marker(tp shot.TrajectoryPoint, c color.Color) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(plotter.XYs{{X: tp.X, Y: -tp.Y}})
	if err != nil {
		return nil, fmt.Errorf("WriteChart: Error, got '%v'", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(6)
	return s, nil
}
