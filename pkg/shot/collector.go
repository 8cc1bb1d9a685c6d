package shot

import "github.com/chenBenjamin97/shot-analyzer/pkg/utils"

//Collector accumulates ball points and the rim calibration over one sequential pass of a video.
//It is not safe for concurrent use.
type Collector struct {
	trajectory  Trajectory
	calibration RimCalibration
	frames      int
	missed      int
}

func NewCollector() *Collector {
	return &Collector{trajectory: make(Trajectory, 0)}
}

//Observe registers the detections of the next frame and returns the number of ball points it appended.
//Every ball detection is appended, so one frame may contribute more than one point.
func (c *Collector) Observe(detections []Detection) int {
	c.frames++

	for _, d := range detections {
		if d.IsRim() {
			c.calibration.Observe(d.Width())
		}
	}

	added := 0
	for _, d := range detections {
		if d.IsBall() {
			x, y := d.Center()
			c.trajectory = append(c.trajectory, TrajectoryPoint{Frame: c.frames, X: x, Y: y})
			added++
		}
	}

	if added == 0 {
		c.missed++
	}

	return added
}

//Frames returns the number of observed frames, which is also the number of the last observed frame
func (c *Collector) Frames() int {
	return c.frames
}

//MissedFrames returns the number of frames without any ball detection
func (c *Collector) MissedFrames() int {
	return c.missed
}

//Freeze validates the collected data and returns it. The trajectory is checked before the calibration.
func (c *Collector) Freeze() (Trajectory, RimCalibration, error) {
	if len(c.trajectory) < utils.MinTrajectoryPoints {
		return nil, RimCalibration{}, ErrInsufficientTrajectory
	}

	if !c.calibration.Detected {
		return nil, RimCalibration{}, ErrNoCalibration
	}

	frozen := make(Trajectory, len(c.trajectory))
	copy(frozen, c.trajectory)

	return frozen, c.calibration, nil
}
