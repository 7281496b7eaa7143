package reel

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"reel/internal/bucket"
	"reel/internal/logging"
	"reel/internal/preset"
	"reel/internal/probe"
)

// ErrNoClips reports that no clip survived plan building. Callers treat
// it as a message-and-return terminal state, not a crash.
var ErrNoClips = errors.New("no clips were processed successfully")

// Builder assembles render plans. Per-clip failures are logged and the
// clip skipped; only an empty result is an error.
type Builder struct {
	Prober probe.Prober
	Logger *slog.Logger
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return logging.NewNop()
}

// Build turns a bucket's playable sequence into a render plan. The
// entries must already be paired and ordered (bucket.Sequence); Build
// adds trim windows, captions, fades, the optional intro/outro cards, and
// the optional background bed.
func (b *Builder) Build(ctx context.Context, bkt bucket.Bucket, playable []bucket.Entry, cfg preset.Resolved, outputPath string) (*Plan, error) {
	plan := &Plan{
		Version:  PlanVersion,
		ReelType: bkt.ReelType,
		Year:     bkt.Year,
		Style: Style{
			Font:        cfg.Font,
			Fontsize:    cfg.Fontsize,
			TextColor:   cfg.TextColor,
			TextBgColor: cfg.TextBgColor,
		},
		Output: Output{
			Path:       outputPath,
			FPS:        cfg.FPS,
			VideoCodec: cfg.VideoCodec,
			AudioCodec: cfg.AudioCodec,
		},
	}

	total := 0.0
	for _, entry := range playable {
		clip, ok := b.buildClip(ctx, entry, cfg)
		if !ok {
			continue
		}
		plan.Clips = append(plan.Clips, clip)
		total += clip.Duration
	}
	if len(plan.Clips) == 0 {
		return nil, ErrNoClips
	}

	if cfg.IntroText != "" {
		plan.Intro = &Card{
			Text:         cfg.IntroText,
			Fontsize:     cfg.IntroFontsize,
			TextColor:    cfg.IntroTextColor,
			BgColor:      cfg.IntroBgColor,
			Duration:     cfg.IntroDuration,
			FadeDuration: preset.DefaultCardFade,
		}
		total += cfg.IntroDuration
	}
	if cfg.OutroText != "" {
		plan.Outro = &Card{
			Text:         cfg.OutroText,
			Fontsize:     cfg.OutroFontsize,
			TextColor:    cfg.OutroTextColor,
			BgColor:      cfg.OutroBgColor,
			Duration:     cfg.OutroDuration,
			FadeDuration: preset.DefaultCardFade,
			Link:         cfg.OutroLink,
		}
		total += cfg.OutroDuration
	}
	plan.TotalDuration = total

	if cfg.BackgroundMusic != "" {
		if _, err := os.Stat(cfg.BackgroundMusic); err != nil {
			// Optional feature: a missing bed drops the bed, not the run.
			b.logger().Warn("background music unavailable, continuing without it",
				"path", cfg.BackgroundMusic, "error", err)
		} else {
			plan.Background = &Background{
				Path:   cfg.BackgroundMusic,
				Volume: cfg.BackgroundVolume,
			}
		}
	}

	return plan, nil
}

// buildClip resolves one entry's trim window. The media is probed to
// bound open-ended windows and clamp explicit ones; a window that comes
// out empty, or an unbounded window on unprobeable media, skips the clip
// with a warning.
func (b *Builder) buildClip(ctx context.Context, entry bucket.Entry, cfg preset.Resolved) (Clip, bool) {
	rec := entry.Record
	log := b.logger().With("record", entry.MetadataPath)

	start := rec.Start
	if start < 0 {
		log.Warn("skipping clip: negative start", "start", start)
		return Clip{}, false
	}

	duration, probeErr := b.Prober.Duration(ctx, entry.MediaPath)
	if probeErr != nil {
		log.Warn("could not probe media duration", "media", entry.MediaPath, "error", probeErr)
	}

	var end float64
	switch {
	case rec.End != nil:
		end = *rec.End
		if probeErr == nil && end > duration {
			end = duration
		}
	case probeErr == nil:
		end = duration
	default:
		log.Warn("skipping clip: open-ended trim window on unprobeable media", "media", entry.MediaPath)
		return Clip{}, false
	}

	if end <= start {
		log.Warn("skipping clip: empty trim window", "start", start, "end", end)
		return Clip{}, false
	}

	fade := cfg.FadeDuration
	if rec.FadeDuration != nil {
		fade = *rec.FadeDuration
	}

	return Clip{
		Order:        rec.Order,
		Source:       entry.MediaPath,
		Start:        start,
		Duration:     end - start,
		Caption:      CaptionText(rec),
		FadeDuration: fade,
	}, true
}
