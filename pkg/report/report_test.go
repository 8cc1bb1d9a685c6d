package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleShot() (shot.Trajectory, shot.Metrics) {
	trajectory := shot.Trajectory{
		{Frame: 1, X: 100, Y: 400},
		{Frame: 3, X: 200, Y: 100},
		{Frame: 4, X: 300, Y: 200},
	}
	metrics := shot.Metrics{
		First:        trajectory[0],
		Highest:      trajectory[1],
		Last:         trajectory[2],
		AngleDegrees: 135,
		VelocityX:    10.5,
		Points:       3,
	}
	return trajectory, metrics
}

func TestWriteSpreadsheet(t *testing.T) {
	_, metrics := sampleShot()
	path := filepath.Join(t.TempDir(), "shot.xlsx")

	require.NoError(t, WriteSpreadsheet(path, metrics))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Metric", "Frame", "X", "Y", "Value"}, rows[0])
	assert.Equal(t, []string{"Highest Point", "3", "200", "100"}, rows[1])
	assert.Equal(t, []string{"Last Detection", "4", "300", "200"}, rows[2])
	assert.Equal(t, []string{"Shot Angle", "", "", "", "135"}, rows[3])
	assert.Equal(t, []string{"Average Velocity X (m/s)", "", "", "", "10.5"}, rows[4])

	// empty cells stay empty
	v, err := f.GetCellValue(SheetName, "B4")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestWriteSpreadsheetBadPath(t *testing.T) {
	_, metrics := sampleShot()
	path := filepath.Join(t.TempDir(), "missing", "dir", "shot.xlsx")

	assert.Error(t, WriteSpreadsheet(path, metrics))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteChart(t *testing.T) {
	trajectory, metrics := sampleShot()
	path := filepath.Join(t.TempDir(), "chart.png")

	require.NoError(t, WriteChart(path, trajectory, metrics))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
	assert.Greater(t, img.Bounds().Dy(), 0)
}

func TestWriteChartEmpty(t *testing.T) {
	_, metrics := sampleShot()
	assert.Error(t, WriteChart(filepath.Join(t.TempDir(), "chart.png"), nil, metrics))
}
