package shot

import "github.com/chenBenjamin97/shot-analyzer/pkg/utils"

//Detection is one bounding box found by the detector in one frame.
//Field names match the JSON lines printed by the external detector script.
type Detection struct {
	Class      int
	Confidence float32
	Xmin       float64
	Ymin       float64
	Xmax       float64
	Ymax       float64
}

//Center returns the middle point of the bounding box
func (d Detection) Center() (float64, float64) {
	return (d.Xmin + d.Xmax) / 2, (d.Ymin + d.Ymax) / 2
}

//Width returns the horizontal extent of the bounding box in pixels
func (d Detection) Width() float64 {
	return d.Xmax - d.Xmin
}

//IsBall reports whether the detection belongs to one of the ball classes
func (d Detection) IsBall() bool {
	return utils.InClasses(d.Class, utils.BallClasses)
}

//IsRim reports whether the detection belongs to one of the rim classes
func (d Detection) IsRim() bool {
	return utils.InClasses(d.Class, utils.RimClasses)
}

//TrajectoryPoint is the center of one accepted ball detection, tagged with its frame number (first frame is 1)
type TrajectoryPoint struct {
	Frame int
	X     float64
	Y     float64
}

//Trajectory holds ball points in the order they were appended
type Trajectory []TrajectoryPoint

//First returns the first appended point
func (t Trajectory) First() TrajectoryPoint {
	return t[0]
}

//Last returns the last appended point. With several balls in the last frame it is the last of them.
func (t Trajectory) Last() TrajectoryPoint {
	return t[len(t)-1]
}

//Highest returns the point with the smallest y (image y grows downwards). Ties keep the first one.
func (t Trajectory) Highest() TrajectoryPoint {
	highest := t[0]
	for _, p := range t[1:] {
		if p.Y < highest.Y {
			highest = p
		}
	}

	return highest
}

//RimCalibration keeps the widest rim seen so far
type RimCalibration struct {
	WidthPixels float64
	Detected    bool
}

//Observe updates the calibration if given width is strictly larger than the current one.
//Boxes without a positive width can not calibrate anything and are ignored.
func (c *RimCalibration) Observe(width float64) {
	if width <= 0 {
		return
	}

	if !c.Detected || width > c.WidthPixels {
		c.WidthPixels = width
		c.Detected = true
	}
}

//PixelsPerMeter converts the widest rim into a pixels-per-meter ratio
func (c RimCalibration) PixelsPerMeter() float64 {
	return c.WidthPixels / utils.RealRimWidthMeters
}

//Metrics is the read-only summary derived from a frozen trajectory and calibration
type Metrics struct {
	First          TrajectoryPoint
	Highest        TrajectoryPoint
	Last           TrajectoryPoint
	AngleDegrees   float64
	VelocityX      float64 //average horizontal velocity, m/s, never negative
	PixelsPerMeter float64
	ElapsedSeconds float64
	Points         int

	//FrameRateKnown is false when the video reported no frame rate and ElapsedSeconds fell back to 1
	FrameRateKnown bool
	//DuplicateFramePoints counts points that share their frame with an earlier point
	DuplicateFramePoints int
}
