package shot

import (
	"strconv"

	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
)

const (
	pointDecimals    = 2
	angleDecimals    = 2
	velocityDecimals = 3
)

//Row is one line of the metrics table: either a point (frame, x, y) or a scalar value
type Row struct {
	Metric   string
	Frame    int
	X        float64
	Y        float64
	Value    float64
	HasPoint bool
	HasValue bool
	decimals int
}

//Rows returns the four table rows shared by the spreadsheet and the rendered table
func (m Metrics) Rows() []Row {
	return []Row{
		{Metric: "Highest Point", Frame: m.Highest.Frame, X: m.Highest.X, Y: m.Highest.Y, HasPoint: true},
		{Metric: "Last Detection", Frame: m.Last.Frame, X: m.Last.X, Y: m.Last.Y, HasPoint: true},
		{Metric: "Shot Angle", Value: m.AngleDegrees, HasValue: true, decimals: angleDecimals},
		{Metric: "Average Velocity X (m/s)", Value: m.VelocityX, HasValue: true, decimals: velocityDecimals},
	}
}

//Cells formats the row as five text cells, rounded for display. Missing cells are empty strings.
func (r Row) Cells() []string {
	cells := make([]string, utils.TableColumns)
	cells[0] = r.Metric

	if r.HasPoint {
		cells[1] = strconv.Itoa(r.Frame)
		cells[2] = utils.FormatRounded(r.X, pointDecimals)
		cells[3] = utils.FormatRounded(r.Y, pointDecimals)
	}

	if r.HasValue {
		cells[4] = utils.FormatRounded(r.Value, r.decimals)
	}

	return cells
}
