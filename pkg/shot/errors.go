package shot

import "errors"

var (
	//ErrSourceUnavailable is returned when the video can not be opened
	ErrSourceUnavailable = errors.New("cannot open source")
	//ErrInsufficientTrajectory is returned when less than two ball points were collected
	ErrInsufficientTrajectory = errors.New("insufficient trajectory")
	//ErrNoCalibration is returned when the rim was never detected
	ErrNoCalibration = errors.New("no calibration")
)
