package preset

// Built-in defaults, the lowest precedence layer. Values mirror what the
// assembly tool has always assumed for fields no layer sets.
const (
	DefaultFontsize         = 30
	DefaultTextColor        = "white"
	DefaultTextBgColor      = "rgba(0,0,0,0.5)"
	DefaultFadeDuration     = 0.5
	DefaultCardFontsize     = 50
	DefaultCardTextColor    = "white"
	DefaultCardBgColor      = "black"
	DefaultCardDuration     = 5.0
	DefaultCardFade         = 1.0
	DefaultFPS              = 30
	DefaultVideoCodec       = "libx264"
	DefaultAudioCodec       = "aac"
	DefaultBackgroundVolume = 0.2
)

// Resolved is the effective configuration after merging all layers.
// Empty strings mean "absent": no background music, no intro/outro text,
// the bundled default font face, or the caller's default output filename.
type Resolved struct {
	BackgroundMusic string
	Font            string
	Fontsize        int
	TextColor       string
	TextBgColor     string
	FadeDuration    float64

	IntroText      string
	IntroFontsize  int
	IntroTextColor string
	IntroBgColor   string
	IntroDuration  float64

	OutroText      string
	OutroFontsize  int
	OutroTextColor string
	OutroBgColor   string
	OutroDuration  float64
	OutroLink      string

	OutputFilename   string
	FPS              int
	VideoCodec       string
	AudioCodec       string
	BackgroundVolume float64
}

// Resolve merges layers in the order given, earlier layers winning, and
// fills whatever remains unset from the built-in defaults. Nil layers are
// skipped, so callers can pass absent files straight through.
func Resolve(layers ...*Preset) Resolved {
	r := Resolved{
		Fontsize:         DefaultFontsize,
		TextColor:        DefaultTextColor,
		TextBgColor:      DefaultTextBgColor,
		FadeDuration:     DefaultFadeDuration,
		IntroFontsize:    DefaultCardFontsize,
		IntroTextColor:   DefaultCardTextColor,
		IntroBgColor:     DefaultCardBgColor,
		IntroDuration:    DefaultCardDuration,
		OutroFontsize:    DefaultCardFontsize,
		OutroTextColor:   DefaultCardTextColor,
		OutroBgColor:     DefaultCardBgColor,
		OutroDuration:    DefaultCardDuration,
		FPS:              DefaultFPS,
		VideoCodec:       DefaultVideoCodec,
		AudioCodec:       DefaultAudioCodec,
		BackgroundVolume: DefaultBackgroundVolume,
	}

	// Walk lowest precedence first so later (higher) layers overwrite.
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		if layer == nil {
			continue
		}
		applyString(&r.BackgroundMusic, layer.BackgroundMusic)
		applyString(&r.Font, layer.Font)
		applyInt(&r.Fontsize, layer.Fontsize)
		applyString(&r.TextColor, layer.TextColor)
		applyString(&r.TextBgColor, layer.TextBgColor)
		applyFloat(&r.FadeDuration, layer.FadeDuration)
		applyString(&r.IntroText, layer.IntroText)
		applyInt(&r.IntroFontsize, layer.IntroFontsize)
		applyString(&r.IntroTextColor, layer.IntroTextColor)
		applyString(&r.IntroBgColor, layer.IntroBgColor)
		applyFloat(&r.IntroDuration, layer.IntroDuration)
		applyString(&r.OutroText, layer.OutroText)
		applyInt(&r.OutroFontsize, layer.OutroFontsize)
		applyString(&r.OutroTextColor, layer.OutroTextColor)
		applyString(&r.OutroBgColor, layer.OutroBgColor)
		applyFloat(&r.OutroDuration, layer.OutroDuration)
		applyString(&r.OutroLink, layer.OutroLink)
		applyString(&r.OutputFilename, layer.OutputFilename)
		applyInt(&r.FPS, layer.FPS)
		applyString(&r.VideoCodec, layer.VideoCodec)
		applyString(&r.AudioCodec, layer.AudioCodec)
		applyFloat(&r.BackgroundVolume, layer.BackgroundVolume)
	}
	return r
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func applyInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
