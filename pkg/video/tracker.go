package video

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/chenBenjamin97/shot-analyzer/pkg/config"
	log "github.com/chenBenjamin97/shot-analyzer/pkg/log"
	"github.com/chenBenjamin97/shot-analyzer/pkg/shot"
	"gocv.io/x/gocv"
)

//ScriptDetector reads detections printed by an external detector process (a python YOLO script).
//The process decodes the video by itself, so frames given to Detect are only used to keep the pace:
//each call consumes exactly one frame block of the process' output.
type ScriptDetector struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stream *detectionStream
}

//NewScriptDetector starts "<python> <script> --video <videoPath>" and listens to its standard output
func NewScriptDetector(cfg config.DetectorConfig, videoPath string) (*ScriptDetector, error) {
	cmd := exec.Command(cfg.Python, cfg.Script, "--video", videoPath)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("NewScriptDetector: Error, got '%v'", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("NewScriptDetector: Could not start '%s', got '%v'", cfg.Script, err)
	}

	return &ScriptDetector{cmd: cmd, stdout: stdout, stream: newDetectionStream(stdout)}, nil
}

func (d *ScriptDetector) Detect(_ gocv.Mat) ([]shot.Detection, error) {
	return d.stream.Next()
}

//Close stops the process unless it printed its final "EOF" line, then waits for it.
//A process whose output was not read to the end would block on its pipe forever.
func (d *ScriptDetector) Close() error {
	killed := false
	if !d.stream.eof {
		if err := d.cmd.Process.Kill(); err == nil {
			killed = true
		}
	}

	if err := d.cmd.Wait(); err != nil && !killed {
		return fmt.Errorf("ScriptDetector: Error waiting python's process, got '%v'", err)
	}

	return nil
}

//detectionStream parses the detector's line protocol:
//"Frame #: <n>" opens a frame, {"Class":..} lines are detections of the open frame,
//"FPS: .." lines are progress logs and "EOF" ends the output.
type detectionStream struct {
	scanner *bufio.Scanner
	started bool
	done    bool //no more frame blocks will be returned
	eof     bool //the process printed "EOF"
	frame   int
}

func newDetectionStream(r io.Reader) *detectionStream {
	return &detectionStream{scanner: bufio.NewScanner(r)}
}

//Next returns the detections of the next frame block. Once the output ended every call returns no detections.
func (s *detectionStream) Next() ([]shot.Detection, error) {
	if s.done {
		return nil, nil
	}

	if !s.started {
		for s.scanner.Scan() {
			line := strings.TrimSpace(s.scanner.Text())
			if strings.Contains(line, "Frame #:") {
				s.started = true
				break
			}

			if line == "EOF" {
				s.done, s.eof = true, true
				return nil, nil
			}
		}

		if !s.started {
			return nil, s.finish()
		}
	}

	s.frame++
	detections := make([]shot.Detection, 0)

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())

		if strings.Contains(line, "Frame #:") { //next frame starts, current one is complete
			return detections, nil
		}

		if line == "EOF" {
			s.done, s.eof = true, true
			return detections, nil
		}

		if strings.Contains(line, "FPS: ") { //this is a log print, skip it
			continue
		}

		if strings.Contains(line, "{\"Class\":") {
			d := shot.Detection{}
			if err := json.Unmarshal([]byte(line), &d); err != nil {
				log.Warn(log.Fields{"frame": s.frame, "line": line}, "ScriptDetector: Could not parse detection")
				continue
			}
			detections = append(detections, d)
		}
	}

	return detections, s.finish()
}

func (s *detectionStream) finish() error {
	s.done = true
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("ScriptDetector: Error reading python's output, got '%v'", err)
	}

	return nil
}
