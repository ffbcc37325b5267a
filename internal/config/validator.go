package config

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/hsl-camera/internal/detection"
)

// Validate checks configuration for errors
func Validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	// Server
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if cfg.Server.TLS {
		if cfg.Server.CertFile == "" || cfg.Server.KeyFile == "" {
			return fmt.Errorf("server.cert_file and server.key_file are required when tls is enabled")
		}
	}

	// Capture
	if cfg.Capture.Width < 0 {
		return fmt.Errorf("capture.width must be >= 0, got %d", cfg.Capture.Width)
	}
	if cfg.Capture.IntervalMS <= 0 {
		return fmt.Errorf("capture.interval_ms must be > 0, got %d", cfg.Capture.IntervalMS)
	}

	// Pipeline
	opts, err := cfg.Pipeline.Options()
	if err != nil {
		return err
	}
	if _, err := detection.NewPipeline(opts...); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Range
	if err := cfg.Range.Validate(); err != nil {
		return fmt.Errorf("range: %w", err)
	}

	return nil
}
