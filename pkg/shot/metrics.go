package shot

import (
	"math"

	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
)

//ComputeMetrics derives the shot summary from a frozen trajectory and calibration.
//fps <= 0 means the frame rate is unknown; elapsed time then falls back to one second and
//the returned metrics carry FrameRateKnown == false.
func ComputeMetrics(trajectory Trajectory, calibration RimCalibration, fps float64) (Metrics, error) {
	if len(trajectory) < utils.MinTrajectoryPoints {
		return Metrics{}, ErrInsufficientTrajectory
	}

	if !calibration.Detected {
		return Metrics{}, ErrNoCalibration
	}

	m := Metrics{
		First:          trajectory.First(),
		Highest:        trajectory.Highest(),
		Last:           trajectory.Last(),
		PixelsPerMeter: calibration.PixelsPerMeter(),
		Points:         len(trajectory),
	}

	m.AngleDegrees = ReleaseAngle(m.Highest, m.Last)

	m.FrameRateKnown = fps > 0
	if m.FrameRateKnown {
		m.ElapsedSeconds = float64(len(trajectory)) / fps
	} else {
		m.ElapsedSeconds = utils.UnknownFrameRateSeconds
	}

	dxMeters := (m.Last.X - m.First.X) / m.PixelsPerMeter
	m.VelocityX = math.Abs(dxMeters / m.ElapsedSeconds)

	m.DuplicateFramePoints = countDuplicateFramePoints(trajectory)

	return m, nil
}

//ReleaseAngle returns the angle in degrees of the line from last to highest point against the horizontal axis.
//The y axis is flipped to point up. A zero horizontal distance always yields 90.
func ReleaseAngle(highest, last TrajectoryPoint) float64 {
	dx := highest.X - last.X
	dy := last.Y - highest.Y

	if dx == 0 {
		return utils.VerticalAngle
	}

	return math.Atan2(dy, dx) * 180 / math.Pi
}

func countDuplicateFramePoints(trajectory Trajectory) int {
	duplicates := 0
	for i := 1; i < len(trajectory); i++ {
		if trajectory[i].Frame == trajectory[i-1].Frame {
			duplicates++
		}
	}

	return duplicates
}
