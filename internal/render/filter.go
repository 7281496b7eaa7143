package render

import (
	"fmt"
	"strconv"
	"strings"

	"reel/internal/reel"
)

// The compositor normalizes every segment onto one canvas so mixed
// capture resolutions concatenate cleanly.
const (
	frameWidth  = 1920
	frameHeight = 1080
)

// assets holds the rasterized overlays buildArgs wires as extra inputs.
type assets struct {
	captions map[int]string // clip index → caption PNG
	intro    string
	outro    string
}

// buildArgs translates a render plan into one ffmpeg invocation: trimmed
// clip inputs, looped card images, caption overlays, per-segment fades, a
// concat of all segments, and the optional background bed looped, scaled
// by volume, mixed under the program audio, and cut at the total
// duration.
func buildArgs(plan *reel.Plan, a assets) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}

	type segment struct {
		video    int // ffmpeg input index of the video source
		audio    int // input index of the audio source
		caption  int // input index of the caption overlay, -1 when none
		duration float64
		fade     float64
	}
	var segs []segment
	next := 0

	addInput := func(in ...string) int {
		args = append(args, in...)
		idx := next
		next++
		return idx
	}
	addCard := func(card *reel.Card, png string) {
		v := addInput("-loop", "1", "-t", ffNum(card.Duration), "-i", png)
		// Cards are silent; a null source keeps the concat audio lane full.
		au := addInput("-f", "lavfi", "-t", ffNum(card.Duration), "-i", "anullsrc=r=48000:cl=stereo")
		segs = append(segs, segment{video: v, audio: au, caption: -1, duration: card.Duration, fade: card.FadeDuration})
	}

	if plan.Intro != nil {
		addCard(plan.Intro, a.intro)
	}
	for i, clip := range plan.Clips {
		v := addInput("-ss", ffNum(clip.Start), "-t", ffNum(clip.Duration), "-i", clip.Source)
		seg := segment{video: v, audio: v, caption: -1, duration: clip.Duration, fade: clip.FadeDuration}
		if png, ok := a.captions[i]; ok {
			seg.caption = addInput("-i", png)
		}
		segs = append(segs, seg)
	}
	if plan.Outro != nil {
		addCard(plan.Outro, a.outro)
	}

	bgIndex := -1
	if plan.Background != nil {
		bgIndex = addInput("-stream_loop", "-1", "-i", plan.Background.Path)
	}

	var graph strings.Builder
	for i, s := range segs {
		label := fmt.Sprintf("[base%d]", i)
		fmt.Fprintf(&graph,
			"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,fps=%d%s;",
			s.video, frameWidth, frameHeight, frameWidth, frameHeight, plan.Output.FPS, label)
		if s.caption >= 0 {
			captioned := fmt.Sprintf("[cap%d]", i)
			fmt.Fprintf(&graph, "%s[%d:v]overlay=x=0:y=main_h-overlay_h%s;", label, s.caption, captioned)
			label = captioned
		}
		fadeOutStart := s.duration - s.fade
		if fadeOutStart < 0 {
			fadeOutStart = 0
		}
		fmt.Fprintf(&graph, "%sfade=t=in:st=0:d=%s,fade=t=out:st=%s:d=%s[v%d];",
			label, ffNum(s.fade), ffNum(fadeOutStart), ffNum(s.fade), i)
		fmt.Fprintf(&graph, "[%d:a]aformat=sample_rates=48000:channel_layouts=stereo[a%d];", s.audio, i)
	}
	for i := range segs {
		fmt.Fprintf(&graph, "[v%d][a%d]", i, i)
	}
	fmt.Fprintf(&graph, "concat=n=%d:v=1:a=1[vout][aout]", len(segs))

	audioOut := "[aout]"
	if bgIndex >= 0 {
		fmt.Fprintf(&graph,
			";[%d:a]aformat=sample_rates=48000:channel_layouts=stereo,volume=%s[bg];[aout][bg]amix=inputs=2:duration=first:dropout_transition=3[amix]",
			bgIndex, ffNum(plan.Background.Volume))
		audioOut = "[amix]"
	}

	args = append(args, "-filter_complex", graph.String(), "-map", "[vout]", "-map", audioOut)
	if plan.Background != nil {
		// The looped bed must not extend the reel past its total length.
		args = append(args, "-t", ffNum(plan.TotalDuration))
	}
	args = append(args,
		"-r", strconv.Itoa(plan.Output.FPS),
		"-c:v", plan.Output.VideoCodec,
		"-pix_fmt", "yuv420p",
		"-c:a", plan.Output.AudioCodec,
		plan.Output.Path,
	)
	return args
}

func ffNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
