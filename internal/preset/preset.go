// Package preset resolves the layered presentation configuration used by
// the assembly tool. Four layers contribute, highest precedence first:
// explicit CLI overrides, an explicitly named config file, the bucket's
// own config.yaml, and built-in defaults. All recognized fields are
// scalar, so resolution is one flat merge of optional-field layers.
package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is one partial configuration layer. Nil fields defer to the next
// layer down.
type Preset struct {
	BackgroundMusic  *string  `yaml:"background_music"`
	Font             *string  `yaml:"font"`
	Fontsize         *int     `yaml:"fontsize"`
	TextColor        *string  `yaml:"text_color"`
	TextBgColor      *string  `yaml:"text_bg_color"`
	FadeDuration     *float64 `yaml:"fade_duration"`
	IntroText        *string  `yaml:"intro_text"`
	IntroFontsize    *int     `yaml:"intro_fontsize"`
	IntroTextColor   *string  `yaml:"intro_text_color"`
	IntroBgColor     *string  `yaml:"intro_bg_color"`
	IntroDuration    *float64 `yaml:"intro_duration"`
	OutroText        *string  `yaml:"outro_text"`
	OutroFontsize    *int     `yaml:"outro_fontsize"`
	OutroTextColor   *string  `yaml:"outro_text_color"`
	OutroBgColor     *string  `yaml:"outro_bg_color"`
	OutroDuration    *float64 `yaml:"outro_duration"`
	OutroLink        *string  `yaml:"outro_link"`
	OutputFilename   *string  `yaml:"output_filename"`
	FPS              *int     `yaml:"fps"`
	VideoCodec       *string  `yaml:"video_codec"`
	AudioCodec       *string  `yaml:"audio_codec"`
	BackgroundVolume *float64 `yaml:"background_volume"`
}

// LoadFile reads one preset layer from a YAML file. A missing file yields
// a nil layer without error: an absent bucket config.yaml or an
// explicitly named file that does not exist simply contributes nothing.
func LoadFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read preset %s: %w", path, err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return &p, nil
}
