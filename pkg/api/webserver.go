package api

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/chenBenjamin97/shot-analyzer/pkg/config"
	log "github.com/chenBenjamin97/shot-analyzer/pkg/log"
	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
	"github.com/chenBenjamin97/shot-analyzer/pkg/video"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type pointResponse struct {
	Frame int     `json:"frame"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type metricsResponse struct {
	First          pointResponse `json:"first"`
	Highest        pointResponse `json:"highest"`
	Last           pointResponse `json:"last"`
	AngleDegrees   float64       `json:"angle_degrees"`
	VelocityX      float64       `json:"velocity_x"`
	PixelsPerMeter float64       `json:"pixels_per_meter"`
	Points         int           `json:"points"`
	FrameRateKnown bool          `json:"frame_rate_known"`
	DuplicatePts   int           `json:"duplicate_frame_points"`
}

func toPointResponse(p shot.TrajectoryPoint) pointResponse {
	return pointResponse{Frame: p.Frame, X: p.X, Y: p.Y}
}

func toMetricsResponse(m shot.Metrics) metricsResponse {
	return metricsResponse{
		First:          toPointResponse(m.First),
		Highest:        toPointResponse(m.Highest),
		Last:           toPointResponse(m.Last),
		AngleDegrees:   m.AngleDegrees,
		VelocityX:      m.VelocityX,
		PixelsPerMeter: m.PixelsPerMeter,
		Points:         m.Points,
		FrameRateKnown: m.FrameRateKnown,
		DuplicatePts:   m.DuplicateFramePoints,
	}
}

//statusFor maps an analysis error to the HTTP status returned to the client
func statusFor(err error) int {
	switch {
	case errors.Is(err, shot.ErrSourceUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, shot.ErrInsufficientTrajectory), errors.Is(err, shot.ErrNoCalibration):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func SetRouter(cfg *config.Config, pipeline *video.Pipeline) *gin.Engine {
	r := gin.Default()

	sourceDir := cfg.Directory.Source
	readyDir := cfg.Directory.Ready

	apiRoutes := r.Group("/api")

	apiRoutes.GET("/Videos", func(ctx *gin.Context) {
		if names, err := utils.ListDir(sourceDir); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/Reports", func(ctx *gin.Context) {
		if names, err := utils.ListDir(readyDir); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/Report", func(ctx *gin.Context) {
		name := ctx.Query("name")
		if name == "" || filepath.Base(name) != name {
			ctx.Status(http.StatusNotAcceptable) //missing or invalid url parameter
			return
		}

		reportPath := path.Join(readyDir, name)
		if _, err := os.Stat(reportPath); err != nil {
			if os.IsNotExist(err) {
				ctx.Status(http.StatusNotFound)
			} else {
				ctx.Status(http.StatusInternalServerError)
			}
			return
		}

		ctx.File(reportPath)
	})

	apiRoutes.POST("/Analyze", func(ctx *gin.Context) {
		mode := ctx.Query("mode")
		if _, err := video.NewRenderer(mode); err != nil {
			ctx.JSON(http.StatusNotAcceptable, gin.H{"error": err.Error()})
			return
		}

		fHeader, err := ctx.FormFile("video")
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing 'video' form file"})
			return
		}

		videoName := filepath.Base(fHeader.Filename)
		if existNames, err := utils.ListDir(sourceDir); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		} else if utils.InSlice(videoName, existNames) {
			ctx.JSON(http.StatusNotAcceptable, gin.H{"error": "video already uploaded"})
			return
		}

		log.Info(log.Fields{"name": videoName, "size": fHeader.Size}, "api/Analyze: Received new file")

		srcFilePath := path.Join(sourceDir, videoName)
		if err := ctx.SaveUploadedFile(fHeader, srcFilePath); err != nil {
			log.Error(log.Fields{"path": srcFilePath, "error": err}, "api/Analyze: Could not write uploaded file")
			ctx.Status(http.StatusInternalServerError)
			return
		}

		reportName := uuid.NewString() + video.Extension(mode)
		metrics, err := pipeline.Run(srcFilePath, mode, path.Join(readyDir, reportName))
		if err != nil {
			log.Warn(log.Fields{"video": videoName, "mode": mode, "error": err}, "api/Analyze: Analysis failed")
			if rmErr := os.Remove(srcFilePath); rmErr != nil {
				log.Error(log.Fields{"path": srcFilePath, "error": rmErr}, "api/Analyze: Could not remove uploaded file")
			}
			ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"report": reportName, "metrics": toMetricsResponse(metrics)})
	})

	return r
}
