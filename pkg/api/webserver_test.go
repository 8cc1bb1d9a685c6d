package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/chenBenjamin97/shot-analyzer/pkg/config"
	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"github.com/chenBenjamin97/shot-analyzer/pkg/video"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

type stubSource struct {
	frames int
	read   int
}

func (s *stubSource) Read(frame *gocv.Mat) bool {
	if s.read >= s.frames {
		return false
	}
	s.read++

	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(30, 30, 30, 0), 240, 320, gocv.MatTypeCV8UC3)
	defer m.Close()
	m.CopyTo(frame)
	return true
}

func (s *stubSource) FPS() float64 { return 25 }
func (s *stubSource) Close() error { return nil }

type stubDetector struct {
	perFrame [][]shot.Detection
	calls    int
}

func (d *stubDetector) Detect(_ gocv.Mat) ([]shot.Detection, error) {
	d.calls++
	if d.calls > len(d.perFrame) {
		return nil, nil
	}
	return d.perFrame[d.calls-1], nil
}

func (d *stubDetector) Close() error { return nil }

func box(class int, cx, cy, w float64) shot.Detection {
	return shot.Detection{Class: class, Confidence: 0.9, Xmin: cx - w/2, Ymin: cy - 5, Xmax: cx + w/2, Ymax: cy + 5}
}

func newTestServer(t *testing.T, perFrame [][]shot.Detection) (*gin.Engine, *config.Config) {
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	cfg := &config.Config{Directory: config.DirectoryConfig{
		Source: filepath.Join(root, "source"),
		Ready:  filepath.Join(root, "ready"),
	}}
	require.NoError(t, os.MkdirAll(cfg.Directory.Source, 0755))
	require.NoError(t, os.MkdirAll(cfg.Directory.Ready, 0755))

	pipeline := &video.Pipeline{
		OpenSource: func(string) (video.FrameSource, error) {
			return &stubSource{frames: len(perFrame)}, nil
		},
		NewDetector: func(string) (video.Detector, error) {
			return &stubDetector{perFrame: perFrame}, nil
		},
	}

	return SetRouter(cfg, pipeline), cfg
}

func goodShot() [][]shot.Detection {
	return [][]shot.Detection{
		{box(1, 250, 40, 45), box(0, 50, 200, 10)},
		{box(0, 100, 80, 10)},
		{box(0, 150, 120, 10)},
	}
}

func uploadRequest(t *testing.T, mode, filename string) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("video", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a video"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/Analyze?mode="+mode, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestAnalyzeAndFetchReport(t *testing.T) {
	r, cfg := newTestServer(t, goodShot())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, video.ModeExcel, "shot.mp4"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Report  string          `json:"report"`
		Metrics metricsResponse `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ".xlsx", filepath.Ext(resp.Report))
	assert.Equal(t, 3, resp.Metrics.Points)
	assert.Equal(t, 2, resp.Metrics.Highest.Frame)
	assert.Equal(t, 3, resp.Metrics.Last.Frame)
	assert.InDelta(t, 100, resp.Metrics.PixelsPerMeter, 1e-6)
	assert.True(t, resp.Metrics.FrameRateKnown)

	_, err := os.Stat(filepath.Join(cfg.Directory.Source, "shot.mp4"))
	assert.NoError(t, err, "upload is kept in the source directory")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/Report?name="+resp.Report, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, rec.Body.Len())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/Reports", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var reports []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
	assert.Equal(t, []string{resp.Report}, reports)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/Videos", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var videos []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &videos))
	assert.Equal(t, []string{"shot.mp4"}, videos)
}

func TestAnalyzeDuplicateUpload(t *testing.T) {
	r, _ := newTestServer(t, goodShot())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, video.ModeCombined, "shot.mp4"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, video.ModeCombined, "shot.mp4"))
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestAnalyzeUnknownMode(t *testing.T) {
	r, _ := newTestServer(t, goodShot())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "conjunto", "shot.mp4"))
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestAnalyzeMissingFile(t *testing.T) {
	r, _ := newTestServer(t, goodShot())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/Analyze?mode=excel", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeNoCalibration(t *testing.T) {
	r, cfg := newTestServer(t, [][]shot.Detection{{box(0, 10, 10, 10)}, {box(0, 20, 5, 10)}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, video.ModeVisualizer, "no-rim.mp4"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no calibration")

	reports, err := os.ReadDir(cfg.Directory.Ready)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestAnalyzeFailureRemovesUpload(t *testing.T) {
	r, cfg := newTestServer(t, [][]shot.Detection{{box(0, 10, 10, 10)}})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, video.ModeExcel, "one-ball.mp4"))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "attempt %d", i+1)
	}

	videos, err := os.ReadDir(cfg.Directory.Source)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestReportParameters(t *testing.T) {
	r, _ := newTestServer(t, goodShot())

	for target, code := range map[string]int{
		"/api/Report":                    http.StatusNotAcceptable,
		"/api/Report?name=../config.yml": http.StatusNotAcceptable,
		"/api/Report?name=missing.png":   http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, code, rec.Code, target)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(shot.ErrSourceUnavailable))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(shot.ErrInsufficientTrajectory))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(shot.ErrNoCalibration))
	assert.Equal(t, http.StatusInternalServerError, statusFor(os.ErrPermission))
}
