// Package recorder drives the external screen recorder used by the
// capture tool. The collaborator contract is narrow: start a recording,
// stop it, and rely on the filesystem convention that the newest media
// file in the recordings directory after a stop is the capture just made.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// Recorder starts and stops one screen recording.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Option configures the CLI recorder.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps an obs-cli style recorder binary exposing
// "recording start" / "recording stop" subcommands.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI recorder using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "obs-cli"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Start begins a recording.
func (c *CLI) Start(ctx context.Context) error {
	return c.run(ctx, "start")
}

// Stop ends the recording. Capture calls this even on cancellation so the
// recorder never keeps rolling after the tool exits.
func (c *CLI) Stop(ctx context.Context) error {
	return c.run(ctx, "stop")
}

func (c *CLI) run(ctx context.Context, action string) error {
	cmd := commandContext(ctx, c.binary, "recording", action)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s recording %s: %w (output: %s)",
			c.binary, action, err, strings.TrimSpace(string(out)))
	}
	return nil
}

var _ Recorder = (*CLI)(nil)

// LatestRecording returns the newest file (by modification time) in dir
// carrying one of the given extensions. This is the filesystem half of
// the recorder contract: after Stop, the newest recording is the capture.
func LatestRecording(dir string, extensions []string) (string, error) {
	if len(extensions) == 0 {
		return "", errors.New("no media extensions configured")
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read recordings directory: %w", err)
	}

	var latestFile string
	var latestTime time.Time
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		matched := false
		for _, ext := range extensions {
			if strings.HasSuffix(name, strings.ToLower(ext)) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no recordings found in %s", dir)
	}
	return latestFile, nil
}
