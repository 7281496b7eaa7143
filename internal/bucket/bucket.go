// Package bucket implements the on-disk data model shared by the capture
// and assembly tools: the reel/{type}/{year} directory layout, the clip
// metadata records stored in it, order allocation, and the loader that
// pairs records with their media files.
package bucket

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// MetadataExt is the extension of clip metadata files.
	MetadataExt = ".yaml"
	// MediaExt is the extension media files carry inside a bucket.
	MediaExt = ".mp4"
	// ConfigFileName is the reserved per-bucket presentation config. It is
	// never treated as a clip record.
	ConfigFileName = "config" + MetadataExt
)

// ReelTypes lists the categories the capture prompt offers. The assembly
// tool accepts arbitrary reel types; this set only constrains capture.
var ReelTypes = []string{"sound-design", "composition", "implementation"}

// Bucket identifies one (reel_type, year) directory under the library root.
type Bucket struct {
	LibraryDir string
	ReelType   string
	Year       int
}

// New returns the bucket for the given reel type and year.
func New(libraryDir, reelType string, year int) Bucket {
	return Bucket{LibraryDir: libraryDir, ReelType: reelType, Year: year}
}

// Dir returns the bucket directory. The path is deterministic from the
// (reel_type, year) pair; this layout is the contract both tools share.
func (b Bucket) Dir() string {
	return filepath.Join(b.LibraryDir, b.ReelType, strconv.Itoa(b.Year))
}

// MetadataPath returns the metadata file path for an order slot.
func (b Bucket) MetadataPath(order int) string {
	return filepath.Join(b.Dir(), strconv.Itoa(order)+MetadataExt)
}

// MediaPath returns the media file path paired with an order slot.
func (b Bucket) MediaPath(order int) string {
	return filepath.Join(b.Dir(), strconv.Itoa(order)+MediaExt)
}

// ConfigPath returns the reserved bucket config location.
func (b Bucket) ConfigPath() string {
	return filepath.Join(b.Dir(), ConfigFileName)
}

// String renders the bucket for log lines and messages.
func (b Bucket) String() string {
	return b.ReelType + "/" + strconv.Itoa(b.Year)
}

// ValidateReelType reports whether the capture prompt accepts the value.
func ValidateReelType(reelType string) error {
	for _, t := range ReelTypes {
		if t == reelType {
			return nil
		}
	}
	return fmt.Errorf("unknown reel type %q (expected one of %s)", reelType, strings.Join(ReelTypes, ", "))
}
