package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRecorder(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	return nil
}

func (c *Config) validateRecorder() error {
	if strings.TrimSpace(c.Recorder.Binary) == "" {
		return errors.New("recorder.binary must be set")
	}
	if strings.TrimSpace(c.Recorder.RecordingsDir) == "" {
		return errors.New("recorder.recordings_dir must be set")
	}
	if len(c.Recorder.Extensions) == 0 {
		return errors.New("recorder.extensions must list at least one media extension")
	}
	if c.Recorder.StopTimeout <= 0 {
		return errors.New("recorder.stop_timeout must be positive")
	}
	return nil
}

func (c *Config) validateRender() error {
	if strings.TrimSpace(c.Render.FFmpegBinary) == "" {
		return errors.New("render.ffmpeg_binary must be set")
	}
	if strings.TrimSpace(c.Render.FFprobeBinary) == "" {
		return errors.New("render.ffprobe_binary must be set")
	}
	if c.Render.MinFreeMiB < 0 {
		return errors.New("render.min_free_mib must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
