// Package render drives the external compositor. The rest of the module
// hands it a complete render plan; everything about frames and audio —
// trims, overlays, fades, concatenation, the background mix — happens
// inside one ffmpeg invocation built here.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"reel/internal/logging"
	"reel/internal/reel"
	"reel/internal/titlecard"
)

var commandContext = exec.CommandContext

// Compositor turns a render plan into one output media file, or fails
// leaving none.
type Compositor interface {
	Render(ctx context.Context, plan *reel.Plan) error
}

// Option configures the FFmpeg compositor.
type Option func(*FFmpeg)

// WithBinary overrides the ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(f *FFmpeg) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// WithLogger attaches a logger for phase progress and preflight warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FFmpeg) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMinFreeMiB sets the free-space floor checked before rendering.
// Zero disables the check.
func WithMinFreeMiB(mib int) Option {
	return func(f *FFmpeg) {
		f.minFreeMiB = mib
	}
}

// FFmpeg renders plans by shelling out to ffmpeg.
type FFmpeg struct {
	binary     string
	minFreeMiB int
	logger     *slog.Logger
}

// NewFFmpeg constructs a compositor using defaults.
func NewFFmpeg(opts ...Option) *FFmpeg {
	f := &FFmpeg{binary: "ffmpeg", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Render rasterizes the plan's overlays, builds the ffmpeg invocation,
// and runs it. A failed render removes whatever partial output ffmpeg
// left behind, so the output file exists complete or not at all.
func (f *FFmpeg) Render(ctx context.Context, plan *reel.Plan) error {
	if plan == nil || len(plan.Clips) == 0 {
		return errors.New("render plan has no clips")
	}
	f.checkFreeSpace(plan.Output.Path)

	workDir, err := os.MkdirTemp("", "reel-render-")
	if err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	a, err := f.prepareAssets(plan, workDir)
	if err != nil {
		return err
	}

	args := buildArgs(plan, a)
	f.logger.Info("rendering reel",
		"output", plan.Output.Path,
		"clips", len(plan.Clips),
		"duration", plan.TotalDuration)

	cmd := commandContext(ctx, f.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(plan.Output.Path)
		return fmt.Errorf("ffmpeg render: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// prepareAssets rasterizes caption blocks and intro/outro cards into the
// work directory so ffmpeg can overlay them as plain image inputs.
func (f *FFmpeg) prepareAssets(plan *reel.Plan, workDir string) (assets, error) {
	a := assets{captions: make(map[int]string)}

	style := titlecard.Style{
		FontPath:  plan.Style.Font,
		Fontsize:  plan.Style.Fontsize,
		TextColor: plan.Style.TextColor,
		BgColor:   plan.Style.TextBgColor,
	}
	for i, clip := range plan.Clips {
		if clip.Caption == "" {
			continue
		}
		img, err := titlecard.Caption(clip.Caption, frameWidth, style)
		if err != nil {
			return assets{}, fmt.Errorf("render caption for clip %d: %w", clip.Order, err)
		}
		path := filepath.Join(workDir, fmt.Sprintf("caption-%d.png", i))
		if err := titlecard.WritePNG(img, path); err != nil {
			return assets{}, err
		}
		a.captions[i] = path
	}

	renderCard := func(card *reel.Card, name string) (string, error) {
		cardStyle := titlecard.Style{
			FontPath:  plan.Style.Font,
			Fontsize:  card.Fontsize,
			TextColor: card.TextColor,
			BgColor:   card.BgColor,
		}
		img, err := titlecard.Card(card.Text, frameWidth, frameHeight, cardStyle, card.Link)
		if err != nil {
			return "", fmt.Errorf("render %s card: %w", name, err)
		}
		path := filepath.Join(workDir, name+".png")
		if err := titlecard.WritePNG(img, path); err != nil {
			return "", err
		}
		return path, nil
	}

	var err error
	if plan.Intro != nil {
		if a.intro, err = renderCard(plan.Intro, "intro"); err != nil {
			return assets{}, err
		}
	}
	if plan.Outro != nil {
		if a.outro, err = renderCard(plan.Outro, "outro"); err != nil {
			return assets{}, err
		}
	}
	return a, nil
}

// checkFreeSpace warns when the output volume is running low. Preflight
// trouble never blocks the render; ffmpeg fails authoritatively if the
// disk actually fills.
func (f *FFmpeg) checkFreeSpace(outputPath string) {
	if f.minFreeMiB <= 0 {
		return
	}
	dir := filepath.Dir(outputPath)
	usage, err := disk.Usage(dir)
	if err != nil {
		f.logger.Warn("could not check free space", "dir", dir, "error", err)
		return
	}
	const mib = 1024 * 1024
	if usage.Free < uint64(f.minFreeMiB)*mib {
		f.logger.Warn("low free space on output volume",
			"dir", dir,
			"free_mib", usage.Free/mib,
			"want_mib", f.minFreeMiB)
	}
}

var _ Compositor = (*FFmpeg)(nil)
