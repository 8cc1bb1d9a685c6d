package utils

//Rendering modes, shared by the renderers and the per-mode output defaults
const (
	ModeExcel      = "excel"
	ModeVisualizer = "visualizer"
	ModeCombined   = "combined"
	ModeChart      = "chart"
)

//BallClasses are the detector class ids treated as a ball (basketball, sports ball)
var BallClasses = []int{0, 2}

//RimClasses are the detector class ids treated as the rim
var RimClasses = []int{1}

//DefaultClassNames is the class list of the fine-tuned model, indexed by class id
var DefaultClassNames = []string{"basketball", "rim", "sports ball"}

//RealRimWidthMeters is the real world width of a basketball rim, used to convert pixels to meters
const RealRimWidthMeters = 0.45

//MinTrajectoryPoints is the minimum number of ball detections needed to derive metrics
const MinTrajectoryPoints = 2

//VerticalAngle is the angle reported when the highest and last points share the same x
const VerticalAngle = 90.0

//UnknownFrameRateSeconds is the elapsed time used when the video does not report a frame rate
const UnknownFrameRateSeconds = 1.0

//TableRowHeight is the height in pixels of every row of the rendered metrics table
const TableRowHeight = 40

//TableColumns is the number of equal width columns of the rendered metrics table
const TableColumns = 5

//TableHeader is the header row shared by the spreadsheet and the rendered table
var TableHeader = []string{"Metric", "Frame", "X", "Y", "Value"}
