package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chenBenjamin97/shot-analyzer/pkg/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Mode   string `mapstructure:"mode"`
	Video  string `mapstructure:"video"`
	Output string `mapstructure:"output"`

	Detector  DetectorConfig  `mapstructure:"detector"`
	Outputs   OutputConfig    `mapstructure:"outputs"`
	Directory DirectoryConfig `mapstructure:"directory"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
}

type DetectorConfig struct {
	Backend    string   `mapstructure:"backend"` //"onnx" or "script"
	Model      string   `mapstructure:"model"`
	Script     string   `mapstructure:"script"`
	Python     string   `mapstructure:"python"`
	InputSize  int      `mapstructure:"input_size"`
	Confidence float64  `mapstructure:"confidence"`
	NMS        float64  `mapstructure:"nms"`
	Classes    []string `mapstructure:"classes"`
}

//OutputConfig holds the default artifact path of every rendering mode
type OutputConfig struct {
	Excel      string `mapstructure:"excel"`
	Visualizer string `mapstructure:"visualizer"`
	Combined   string `mapstructure:"combined"`
	Chart      string `mapstructure:"chart"`
}

type DirectoryConfig struct {
	Source string `mapstructure:"source"`
	Ready  string `mapstructure:"ready"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

//SetDefaults registers a default value for every configuration key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "")
	v.SetDefault("video", "")
	v.SetDefault("output", "")

	v.SetDefault("detector.backend", "onnx")
	v.SetDefault("detector.model", "best.onnx")
	v.SetDefault("detector.script", "detect.py")
	v.SetDefault("detector.python", "python3")
	v.SetDefault("detector.input_size", 640)
	v.SetDefault("detector.confidence", 0.25)
	v.SetDefault("detector.nms", 0.45)
	v.SetDefault("detector.classes", utils.DefaultClassNames)

	v.SetDefault("outputs.excel", "shot_metrics.xlsx")
	v.SetDefault("outputs.visualizer", "shot_trajectory.png")
	v.SetDefault("outputs.combined", "shot_trajectory_table.png")
	v.SetDefault("outputs.chart", "shot_chart.png")

	v.SetDefault("directory.source", "./data/source")
	v.SetDefault("directory.ready", "./data/ready")

	v.SetDefault("http.port", "8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.max_backups", 3)
}

//Flags returns the command line flags understood by Load
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("shot-analyzer", pflag.ContinueOnError)
	fs.String("mode", "", "excel, visualizer, combined, chart or serve")
	fs.String("video", "", "path to the input video")
	fs.String("output", "", "artifact path, overrides the per-mode default")
	fs.String("config", "", "path to a YAML configuration file")
	fs.String("detector.backend", "", "onnx or script")
	fs.String("detector.model", "", "path to the ONNX model")
	fs.String("log.level", "", "log level")
	return fs
}

//Load parses given arguments and merges them with the configuration file and defaults.
//A missing config file is not an error; a broken one is.
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("Load: Could not parse flags, got '%v'", err)
	}

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("SHOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile, _ := fs.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("Load: Could not read config file, got '%v'", err)
		}
	}

	//only flags given explicitly override the file, empty flag defaults must not shadow it
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(f.Name, f)
	})
	if bindErr != nil {
		return nil, fmt.Errorf("Load: Could not bind flags, got '%v'", bindErr)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("Load: Could not decode configuration, got '%v'", err)
	}

	return cfg, nil
}

//OutputFor returns the artifact path for given mode: the --output flag if set, otherwise the mode default
func (c *Config) OutputFor(mode string) string {
	if c.Output != "" {
		return c.Output
	}

	switch mode {
	case utils.ModeExcel:
		return c.Outputs.Excel
	case utils.ModeVisualizer:
		return c.Outputs.Visualizer
	case utils.ModeCombined:
		return c.Outputs.Combined
	case utils.ModeChart:
		return c.Outputs.Chart
	}

	return ""
}
