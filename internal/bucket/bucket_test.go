package bucket_test

import (
	"os"
	"path/filepath"
	"testing"

	"reel/internal/bucket"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testBucket(t *testing.T) bucket.Bucket {
	t.Helper()
	return bucket.New(t.TempDir(), "sound-design", 2025)
}

func TestDirLayoutIsDeterministic(t *testing.T) {
	b := bucket.New("reel", "composition", 2024)
	want := filepath.Join("reel", "composition", "2024")
	if b.Dir() != want {
		t.Errorf("Dir: got %q want %q", b.Dir(), want)
	}
	if got := b.MetadataPath(3); got != filepath.Join(want, "3.yaml") {
		t.Errorf("MetadataPath: got %q", got)
	}
	if got := b.MediaPath(3); got != filepath.Join(want, "3.mp4") {
		t.Errorf("MediaPath: got %q", got)
	}
	if got := b.ConfigPath(); got != filepath.Join(want, "config.yaml") {
		t.Errorf("ConfigPath: got %q", got)
	}
}

func TestLoadMissingBucket(t *testing.T) {
	b := bucket.New(t.TempDir(), "composition", 1999)
	if _, err := bucket.Load(b); err != bucket.ErrNoBucket {
		t.Fatalf("expected ErrNoBucket, got %v", err)
	}
}

func TestLoadSkipsConfigRecord(t *testing.T) {
	b := testBucket(t)
	writeFile(t, b.MetadataPath(1), "title: One\norder: 1\nstart: 0\n")
	writeFile(t, b.ConfigPath(), "fontsize: 40\n")

	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected config.yaml to be excluded, got %d entries", len(entries))
	}
	if entries[0].Record.Title != "One" {
		t.Errorf("record title: got %q", entries[0].Record.Title)
	}
}

func TestNextOrderEmptyBucket(t *testing.T) {
	if got := bucket.NextOrder(nil); got != 1 {
		t.Errorf("NextOrder(nil): got %d want 1", got)
	}
}

func TestNextOrderSkipsGaps(t *testing.T) {
	b := testBucket(t)
	writeFile(t, b.MetadataPath(1), "title: One\norder: 1\nstart: 0\n")
	writeFile(t, b.MetadataPath(3), "title: Three\norder: 3\nstart: 0\n")

	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Gap-filling is not performed: {1,3} allocates 4, not 2.
	if got := bucket.NextOrder(entries); got != 4 {
		t.Errorf("NextOrder: got %d want 4", got)
	}
}

func TestNextOrderIgnoresRecordsWithoutOrder(t *testing.T) {
	b := testBucket(t)
	writeFile(t, b.MetadataPath(2), "title: Two\norder: 2\nstart: 0\n")
	writeFile(t, filepath.Join(b.Dir(), "draft.yaml"), "title: Draft\nstart: 0\n")

	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := bucket.NextOrder(entries); got != 3 {
		t.Errorf("NextOrder: got %d want 3", got)
	}
}

func TestNextOrderNeverReturnsExistingOrder(t *testing.T) {
	b := testBucket(t)
	for _, order := range []int{2, 5, 9} {
		writeFile(t, b.MetadataPath(order), "title: X\norder: "+string(rune('0'+order))+"\nstart: 0\n")
	}
	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := bucket.NextOrder(entries)
	for _, e := range entries {
		if e.Record.Order == got {
			t.Errorf("NextOrder returned existing order %d", got)
		}
	}
	if got != 10 {
		t.Errorf("NextOrder: got %d want 10", got)
	}
}

func TestSequenceSortsByOrder(t *testing.T) {
	b := testBucket(t)
	// Written out of order on purpose; sequencing must sort 3,1,2 → 1,2,3.
	for _, order := range []int{3, 1, 2} {
		name := string(rune('0' + order))
		writeFile(t, b.MetadataPath(order), "title: Clip "+name+"\norder: "+name+"\nstart: 0\n")
		writeFile(t, b.MediaPath(order), "media")
	}

	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	playable, excluded := bucket.Sequence(entries)
	if len(excluded) != 0 {
		t.Fatalf("unexpected exclusions: %d", len(excluded))
	}
	for i, want := range []int{1, 2, 3} {
		if playable[i].Record.Order != want {
			t.Errorf("position %d: got order %d want %d", i, playable[i].Record.Order, want)
		}
	}
}

func TestSequenceOrderlessRecordsSortLastStable(t *testing.T) {
	b := testBucket(t)
	writeFile(t, b.MetadataPath(1), "title: First\norder: 1\nstart: 0\n")
	writeFile(t, b.MediaPath(1), "media")
	writeFile(t, b.MetadataPath(2), "title: Second\norder: 2\nstart: 0\n")
	writeFile(t, b.MediaPath(2), "media")
	writeFile(t, filepath.Join(b.Dir(), "a-draft.yaml"), "title: Draft A\nstart: 0\n")
	writeFile(t, filepath.Join(b.Dir(), "a-draft.mp4"), "media")
	writeFile(t, filepath.Join(b.Dir(), "b-draft.yaml"), "title: Draft B\nstart: 0\n")
	writeFile(t, filepath.Join(b.Dir(), "b-draft.mp4"), "media")

	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	playable, _ := bucket.Sequence(entries)
	if len(playable) != 4 {
		t.Fatalf("expected 4 playable entries, got %d", len(playable))
	}
	gotTitles := []string{
		playable[0].Record.Title, playable[1].Record.Title,
		playable[2].Record.Title, playable[3].Record.Title,
	}
	wantTitles := []string{"First", "Second", "Draft A", "Draft B"}
	for i := range wantTitles {
		if gotTitles[i] != wantTitles[i] {
			t.Errorf("position %d: got %q want %q", i, gotTitles[i], wantTitles[i])
		}
	}
}

func TestSequenceExcludesMissingMedia(t *testing.T) {
	b := testBucket(t)
	writeFile(t, b.MetadataPath(1), "title: Paired\norder: 1\nstart: 0\n")
	writeFile(t, b.MediaPath(1), "media")
	writeFile(t, b.MetadataPath(2), "title: Orphan\norder: 2\nstart: 0\n")

	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	playable, excluded := bucket.Sequence(entries)
	if len(playable) != 1 || playable[0].Record.Title != "Paired" {
		t.Fatalf("playable: got %+v", playable)
	}
	if len(excluded) != 1 || excluded[0].Record.Title != "Orphan" {
		t.Fatalf("excluded: got %+v", excluded)
	}
}

func TestSequenceAllMediaMissingYieldsEmptySequence(t *testing.T) {
	b := testBucket(t)
	writeFile(t, b.MetadataPath(1), "title: One\norder: 1\nstart: 0\n")
	writeFile(t, b.MetadataPath(2), "title: Two\norder: 2\nstart: 0\n")

	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	playable, excluded := bucket.Sequence(entries)
	if len(playable) != 0 {
		t.Errorf("expected empty sequence, got %d entries", len(playable))
	}
	if len(excluded) != 2 {
		t.Errorf("expected both records excluded, got %d", len(excluded))
	}
}

func TestSequenceExcludesUnparseableMetadata(t *testing.T) {
	b := testBucket(t)
	writeFile(t, b.MetadataPath(1), "title: Good\norder: 1\nstart: 0\n")
	writeFile(t, b.MediaPath(1), "media")
	writeFile(t, b.MetadataPath(2), "title: [broken\n")
	writeFile(t, b.MediaPath(2), "media")

	entries, err := bucket.Load(b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	playable, excluded := bucket.Sequence(entries)
	if len(playable) != 1 || playable[0].Record.Title != "Good" {
		t.Fatalf("playable: got %+v", playable)
	}
	if len(excluded) != 1 || excluded[0].Err == nil {
		t.Fatalf("expected one excluded entry carrying a parse error, got %+v", excluded)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	b := testBucket(t)
	if err := os.MkdirAll(b.Dir(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	end := 42.5
	rec := bucket.ClipRecord{
		Title:  "Ambience Pass",
		Role:   "Sound Designer",
		Client: "Acme",
		Year:   2025,
		Order:  7,
		Start:  1.5,
		End:    &end,
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	path := b.MetadataPath(rec.Order)
	if err := bucket.WriteRecord(path, rec); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	got, err := bucket.ReadRecord(path)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if got.Title != rec.Title || got.Order != rec.Order || got.Client != rec.Client {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.End == nil || *got.End != end {
		t.Errorf("end: got %v want %v", got.End, end)
	}
}

func TestValidateRejectsBadRecords(t *testing.T) {
	end := 1.0
	cases := map[string]bucket.ClipRecord{
		"empty title":      {Order: 1},
		"zero order":       {Title: "X"},
		"negative start":   {Title: "X", Order: 1, Start: -2},
		"end before start": {Title: "X", Order: 1, Start: 5, End: &end},
	}
	for name, rec := range cases {
		if err := rec.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestValidateReelType(t *testing.T) {
	if err := bucket.ValidateReelType("sound-design"); err != nil {
		t.Errorf("sound-design should be accepted: %v", err)
	}
	if err := bucket.ValidateReelType("vlogging"); err == nil {
		t.Error("vlogging should be rejected by the capture prompt")
	}
}
