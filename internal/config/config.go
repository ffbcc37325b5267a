package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/hsl-camera/internal/detection"
	"github.com/ironsheep/hsl-camera/internal/imaging"
)

// LogLevelEnv overrides Config.LogLevel when set.
const LogLevelEnv = "HSL_CAMERA_LOG_LEVEL"

// Config represents the complete hsl-camera configuration.
type Config struct {
	LogLevel string             `yaml:"log_level"` // panic, fatal, error, warn, info, debug, trace
	Server   ServerConfig       `yaml:"server"`
	Capture  CaptureConfig      `yaml:"capture"`
	Pipeline PipelineConfig     `yaml:"pipeline"`
	Range    detection.HSLRange `yaml:"range"`
}

// ServerConfig contains asset server settings
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // listen address, e.g. ":8443"
	TLS       bool   `yaml:"tls"`        // serve HTTPS (default true)
	CertFile  string `yaml:"cert_file"`  // PEM certificate
	KeyFile   string `yaml:"key_file"`   // PEM private key
	StaticDir string `yaml:"static_dir"` // serve assets from disk instead of the embedded copy
}

// CaptureConfig contains frame acquisition settings
type CaptureConfig struct {
	Width      int `yaml:"width"`       // frames are scaled to this width, 0 keeps source size
	IntervalMS int `yaml:"interval_ms"` // processing cadence of the capture loop
}

// Interval returns the capture cadence as a duration.
func (c CaptureConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// PipelineConfig contains smoothing and overlay settings
type PipelineConfig struct {
	KernelSize int     `yaml:"kernel_size"`
	Threshold  float64 `yaml:"threshold"`
	Highlight  string  `yaml:"highlight"` // hex color, e.g. "#00FFFF"
}

// Options converts the pipeline settings into detection options.
func (p PipelineConfig) Options() ([]detection.Option, error) {
	c, err := imaging.ParseHexColor(p.Highlight)
	if err != nil {
		return nil, fmt.Errorf("pipeline.highlight: %w", err)
	}
	return []detection.Option{
		detection.WithKernelSize(p.KernelSize),
		detection.WithThreshold(p.Threshold),
		detection.WithHighlight(c),
	}, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Addr:     ":8443",
			TLS:      true,
			CertFile: "certificates/server.cert",
			KeyFile:  "certificates/server.key",
		},
		Capture: CaptureConfig{
			Width:      imaging.DefaultFrameWidth,
			IntervalMS: 100,
		},
		Pipeline: PipelineConfig{
			KernelSize: detection.DefaultKernelSize,
			Threshold:  detection.DefaultThreshold,
			Highlight:  imaging.Cyan.Hex(),
		},
		Range: detection.DefaultHSLRange(),
	}
}

// Load reads and parses a YAML configuration file.
//
// Keys missing from the file keep their Default() values. The environment
// override is applied before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyEnv()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns the validated defaults when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg := Default()
	cfg.ApplyEnv()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv applies environment variable overrides.
func (c *Config) ApplyEnv() {
	if lvl := os.Getenv(LogLevelEnv); lvl != "" {
		c.LogLevel = lvl
	}
}

// ConfigureLogging sets the global logrus level and output from the config.
func (c *Config) ConfigureLogging() error {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
