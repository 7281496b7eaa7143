package bucket

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClipRecord is the persisted metadata for one captured project clip.
// Records are written exactly once by the capture tool and are read-only
// afterwards; the assembly tool never mutates them.
type ClipRecord struct {
	Title        string   `yaml:"title"`
	Role         string   `yaml:"role,omitempty"`
	Client       string   `yaml:"client,omitempty"`
	Year         int      `yaml:"year,omitempty"`
	Order        int      `yaml:"order,omitempty"`
	Start        float64  `yaml:"start"`
	End          *float64 `yaml:"end"`
	FadeDuration *float64 `yaml:"fade_duration,omitempty"`
}

// DefaultRole is filled in at capture time when the operator leaves the
// role prompt empty.
const DefaultRole = "Sound Designer"

// Validate checks the invariants capture must uphold before persisting.
func (r ClipRecord) Validate() error {
	if r.Title == "" {
		return errors.New("title must not be empty")
	}
	if r.Order <= 0 {
		return fmt.Errorf("order must be a positive integer, got %d", r.Order)
	}
	if r.Start < 0 {
		return fmt.Errorf("start must not be negative, got %v", r.Start)
	}
	if r.End != nil && *r.End <= r.Start {
		return fmt.Errorf("end %v must be after start %v", *r.End, r.Start)
	}
	return nil
}

// WriteRecord persists a clip record as YAML at path.
func WriteRecord(path string, rec ClipRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// ReadRecord parses one clip record from a YAML file.
func ReadRecord(path string) (ClipRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClipRecord{}, err
	}
	var rec ClipRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return ClipRecord{}, fmt.Errorf("parse record: %w", err)
	}
	return rec, nil
}
