package video

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
	"gocv.io/x/gocv"
)

var (
	greenRGB  = color.RGBA{0, 255, 0, 0}
	cyanRGB   = color.RGBA{0, 255, 255, 0}
	redRGB    = color.RGBA{255, 0, 0, 0}
	yellowRGB = color.RGBA{255, 255, 0, 0}
	blueRGB   = color.RGBA{0, 0, 255, 0}
	blackRGB  = color.RGBA{0, 0, 0, 0}
)

const (
	tableFontScale  = 0.55
	tableTextOffset = 10
	tableLineWidth  = 2
)

func toPoint(p shot.TrajectoryPoint) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

//plotTrajectory connects consecutive trajectory points with line segments
func plotTrajectory(frame *gocv.Mat, trajectory shot.Trajectory, plotColor color.RGBA) {
	for i := 1; i < len(trajectory); i++ {
		gocv.Line(frame, toPoint(trajectory[i-1]), toPoint(trajectory[i]), plotColor, 2)
	}
}

//plotMarker draws a filled circle on given point
func plotMarker(frame *gocv.Mat, p shot.TrajectoryPoint, radius int, plotColor color.RGBA) {
	gocv.Circle(frame, toPoint(p), radius, plotColor, -1) //thickness -1 == filled circle
}

//plotTable renders rows below a header as a white grid image of given width.
//Height is (len(rows)+1) * utils.TableRowHeight, columns are width / utils.TableColumns wide.
func plotTable(rows []shot.Row, width int) gocv.Mat {
	rowHeight := utils.TableRowHeight
	colWidth := width / utils.TableColumns
	height := rowHeight * (len(rows) + 1)

	table := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), height, width, gocv.MatTypeCV8UC3)

	for i := 0; i < len(rows)+2; i++ {
		y := i * rowHeight
		gocv.Line(&table, image.Pt(0, y), image.Pt(width, y), blackRGB, tableLineWidth)
	}

	for j := 0; j <= utils.TableColumns; j++ {
		x := j * colWidth
		gocv.Line(&table, image.Pt(x, 0), image.Pt(x, height), blackRGB, tableLineWidth)
	}

	plotTableRow(&table, utils.TableHeader, 0, colWidth)
	for i, row := range rows {
		plotTableRow(&table, row.Cells(), i+1, colWidth)
	}

	return table
}

func plotTableRow(table *gocv.Mat, cells []string, rowIndex, colWidth int) {
	textY := rowIndex*utils.TableRowHeight + int(float64(utils.TableRowHeight)*0.7)
	for col, text := range cells {
		if text == "" {
			continue
		}
		gocv.PutText(table, text, image.Pt(col*colWidth+tableTextOffset, textY), gocv.FontHersheySimplex, tableFontScale, blackRGB, 1)
	}
}

//writeImage encodes the image to dst, the format follows dst's extension. A failed write leaves no file behind.
func writeImage(dst string, img gocv.Mat) error {
	if img.Empty() {
		return errors.New("writeImage: Empty image")
	}

	if !gocv.IMWrite(dst, img) {
		os.Remove(dst)
		return fmt.Errorf("writeImage: Could not write '%s'", dst)
	}

	return nil
}
