// Package probe inspects media files through ffprobe. The assembly tool
// uses it to learn each clip's duration so open-ended trim windows can be
// bounded and background audio trimmed to the reel's total length.
package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Prober reports media durations. Tests substitute a Stub so the core
// logic never shells out.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFprobe probes through the ffprobe binary.
type FFprobe struct {
	binary string
}

// NewFFprobe constructs a prober using the given binary name, defaulting
// to "ffprobe" when empty.
func NewFFprobe(binary string) *FFprobe {
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFprobe{binary: binary}
}

// Duration returns the container duration of path in seconds.
func (p *FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	cmd := commandContext(ctx, p.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w (output: %s)", path, err, strings.TrimSpace(string(out)))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration for %s: %w", path, err)
	}
	return duration, nil
}

var _ Prober = (*FFprobe)(nil)

// Stub is a canned prober for tests and dry runs.
type Stub struct {
	Durations map[string]float64
	Err       error
}

// Duration returns the canned duration for path, or Err when set.
func (s *Stub) Duration(_ context.Context, path string) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	d, ok := s.Durations[path]
	if !ok {
		return 0, fmt.Errorf("no stub duration for %s", path)
	}
	return d, nil
}

var _ Prober = (*Stub)(nil)
