// Package config loads the tool-level configuration for the reel commands.
//
// This file is about the machine the tools run on: where the library of
// buckets lives, how to drive the screen recorder, which ffmpeg binaries to
// call, and how to log. Presentation settings for an individual reel are a
// different layer entirely — those are the per-bucket YAML files handled by
// internal/preset.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the on-disk roots the tools operate in.
type Paths struct {
	// LibraryDir is the root of the reel/{type}/{year} bucket tree.
	LibraryDir string `toml:"library_dir"`
}

// Recorder configures the external screen-recorder collaborator.
type Recorder struct {
	Binary        string   `toml:"binary"`
	RecordingsDir string   `toml:"recordings_dir"`
	Extensions    []string `toml:"extensions"`
	StopTimeout   int      `toml:"stop_timeout"`
}

// Render configures the external compositor binaries.
type Render struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	MinFreeMiB    int    `toml:"min_free_mib"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all tool-level settings.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Recorder Recorder `toml:"recorder"`
	Render   Render   `toml:"render"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reel/config.toml")
}

// Load locates, parses, and validates a configuration file. When no file
// exists the returned config carries the built-in defaults. The resolved
// path and whether a file was actually read are reported alongside.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the config file to read: an explicit path, the
// REEL_CONFIG environment variable, ~/.config/reel/config.toml, then a
// reel.toml next to the library in the working directory.
func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv("REEL_CONFIG"))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("reel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	recDir, err := expandPath(c.Recorder.RecordingsDir)
	if err != nil {
		return err
	}
	c.Recorder.RecordingsDir = recDir

	// The library root stays as written (typically the relative "reel")
	// so the bucket layout resolves against the working directory the way
	// the tools are used; only a leading ~ needs expansion.
	if strings.HasPrefix(c.Paths.LibraryDir, "~") {
		lib, err := expandPath(c.Paths.LibraryDir)
		if err != nil {
			return err
		}
		c.Paths.LibraryDir = lib
	}

	exts := make([]string, 0, len(c.Recorder.Extensions))
	for _, ext := range c.Recorder.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Recorder.Extensions = exts

	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	return filepath.Clean(pathValue), nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the given location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
