package bucket

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one metadata record discovered in a bucket, together with the
// media file it pairs with by filename base. MediaPath is empty when the
// paired media file is absent; Err is set when the metadata file could not
// be parsed. Both conditions are per-clip warnings for callers, never
// fatal for the run.
type Entry struct {
	Record       ClipRecord
	MetadataPath string
	MediaPath    string
	Err          error
}

// HasOrder reports whether the record carries a usable order value.
// Records without one do not compete for allocation slots and sort last
// during sequencing.
func (e Entry) HasOrder() bool {
	return e.Err == nil && e.Record.Order > 0
}

// ErrNoBucket reports that the bucket directory does not exist.
var ErrNoBucket = errors.New("bucket directory does not exist")

// Load reads every non-config metadata record in the bucket, in sorted
// filename order (the discovery order later tie-breaks apply to). Pairing
// with media is by name only: the media path is the metadata path with the
// media extension, never derived from content.
func Load(b Bucket) ([]Entry, error) {
	dirents, err := os.ReadDir(b.Dir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoBucket
		}
		return nil, err
	}

	names := make([]string, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		name := d.Name()
		if !strings.HasSuffix(name, MetadataExt) || name == ConfigFileName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		metaPath := filepath.Join(b.Dir(), name)
		entry := Entry{MetadataPath: metaPath}

		rec, err := ReadRecord(metaPath)
		if err != nil {
			entry.Err = err
			entries = append(entries, entry)
			continue
		}
		entry.Record = rec

		mediaPath := strings.TrimSuffix(metaPath, MetadataExt) + MediaExt
		if info, err := os.Stat(mediaPath); err == nil && !info.IsDir() {
			entry.MediaPath = mediaPath
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// NextOrder computes the order slot a new capture should take: one past
// the highest order present in the listing, or 1 when nothing competes.
// Gaps are never refilled, so an order value still on disk is never
// reused. Pure over the supplied listing; callers own the scan.
func NextOrder(entries []Entry) int {
	next := 1
	for _, e := range entries {
		if e.HasOrder() && e.Record.Order >= next {
			next = e.Record.Order + 1
		}
	}
	return next
}

// Sequence splits a bucket listing into the playable sequence and the
// entries excluded from it. Playable entries are sorted ascending by
// order; records without an order sort after all ordered ones, keeping
// their discovery order among themselves (stable sort). Excluded entries
// are those with unreadable metadata or no paired media file.
func Sequence(entries []Entry) (playable, excluded []Entry) {
	for _, e := range entries {
		if e.Err != nil || e.MediaPath == "" {
			excluded = append(excluded, e)
			continue
		}
		playable = append(playable, e)
	}

	sort.SliceStable(playable, func(i, j int) bool {
		oi, oj := playable[i].Record.Order, playable[j].Record.Order
		switch {
		case oi > 0 && oj > 0:
			return oi < oj
		case oi > 0:
			return true // ordered records precede order-less ones
		default:
			return false
		}
	})
	return playable, excluded
}
