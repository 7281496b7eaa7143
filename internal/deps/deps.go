// Package deps reports the availability of the external binaries the
// reel tools shell out to: the screen recorder, ffmpeg, and ffprobe.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"reel/internal/config"
)

// Requirement names one external binary a tool depends on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the check result for one requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// ForConfig lists the requirements implied by the tool configuration.
func ForConfig(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "recorder",
			Command:     cfg.Recorder.Binary,
			Description: "screen recorder driven by the capture tool",
		},
		{
			Name:        "ffmpeg",
			Command:     cfg.Render.FFmpegBinary,
			Description: "compositor backing the assembly tool",
		},
		{
			Name:        "ffprobe",
			Command:     cfg.Render.FFprobeBinary,
			Description: "media duration probing during assembly",
		},
	}
}

// Check resolves each requirement on PATH and reports its status.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		cmd := strings.TrimSpace(req.Command)
		switch {
		case cmd == "":
			status.Detail = "command not configured"
		default:
			if path, err := exec.LookPath(cmd); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found on PATH", cmd)
			} else {
				status.Available = true
				status.Detail = path
			}
		}
		results = append(results, status)
	}
	return results
}
