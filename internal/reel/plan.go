// Package reel turns a bucket's playable sequence and its resolved
// presentation config into a render plan: the ordered document the
// external compositor consumes. Plans serialize to YAML so a run can be
// exported for inspection instead of rendered.
package reel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is one complete render plan for a reel.
type Plan struct {
	Version       string      `yaml:"version"`
	ReelType      string      `yaml:"reel_type"`
	Year          int         `yaml:"year"`
	Style         Style       `yaml:"style"`
	Intro         *Card       `yaml:"intro,omitempty"`
	Clips         []Clip      `yaml:"clips"`
	Outro         *Card       `yaml:"outro,omitempty"`
	Background    *Background `yaml:"background,omitempty"`
	Output        Output      `yaml:"output"`
	TotalDuration float64     `yaml:"total_duration"`
}

// PlanVersion marks the current plan document format.
const PlanVersion = "1.0"

// Style carries the caption presentation shared by every clip.
type Style struct {
	Font        string `yaml:"font,omitempty"`
	Fontsize    int    `yaml:"fontsize"`
	TextColor   string `yaml:"text_color"`
	TextBgColor string `yaml:"text_bg_color"`
}

// Clip is one presentation-ready segment: a trimmed media window with its
// caption overlay and fade envelope.
type Clip struct {
	Order        int     `yaml:"order,omitempty"`
	Source       string  `yaml:"source"`
	Start        float64 `yaml:"start"`
	Duration     float64 `yaml:"duration"`
	Caption      string  `yaml:"caption"`
	FadeDuration float64 `yaml:"fade_duration"`
}

// Card is a full-frame intro or outro segment.
type Card struct {
	Text         string  `yaml:"text"`
	Fontsize     int     `yaml:"fontsize"`
	TextColor    string  `yaml:"text_color"`
	BgColor      string  `yaml:"bg_color"`
	Duration     float64 `yaml:"duration"`
	FadeDuration float64 `yaml:"fade_duration"`
	Link         string  `yaml:"link,omitempty"`
}

// Background is the optional music bed mixed under the whole reel.
type Background struct {
	Path   string  `yaml:"path"`
	Volume float64 `yaml:"volume"`
}

// Output carries the encoder settings and destination.
type Output struct {
	Path       string `yaml:"path"`
	FPS        int    `yaml:"fps"`
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`
}

// WritePlan saves a plan to a YAML file.
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// ReadPlan loads a plan from a YAML file.
func ReadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &plan, nil
}
