package log

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Fields = logrus.Fields

//Options controls where and how verbosely the logger writes
type Options struct {
	Level      string
	File       string //optional, rotated by lumberjack
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Output     io.Writer //defaults to os.Stderr
}

var logger = logrus.New()

//NewLogger configures and returns the package logger
func NewLogger(opts Options) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("NewLogger: Error, got '%v'", err)
		}
		level = parsed
	}

	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&formatter.Formatter{
		NoColors:        opts.Output != nil,
		TimestampFormat: "02 Jan 06 - 15:04:05",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, funcName)
		},
	})

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{out}

	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    opts.MaxSizeMB,
			MaxAge:     opts.MaxAgeDays,
			MaxBackups: opts.MaxBackups,
		})
	}

	l.SetOutput(io.MultiWriter(writers...))
	l.SetReportCaller(true)

	logger = l
	return l, nil
}

func Debug(fields Fields, msg string) {
	logger.WithFields(fields).Debug(msg)
}

func Info(fields Fields, msg string) {
	logger.WithFields(fields).Info(msg)
}

func Warn(fields Fields, msg string) {
	logger.WithFields(fields).Warn(msg)
}

func Error(fields Fields, msg string) {
	logger.WithFields(fields).Error(msg)
}
