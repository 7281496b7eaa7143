package reel

import (
	"strconv"
	"strings"

	"reel/internal/bucket"
)

// CaptionText builds a clip's overlay text block: title, then role, then
// "Client: {client}", then year — each on its own line, in that fixed
// order. Absent fields are omitted entirely, never left as blank lines.
func CaptionText(rec bucket.ClipRecord) string {
	lines := make([]string, 0, 4)
	lines = append(lines, rec.Title)
	if rec.Role != "" {
		lines = append(lines, rec.Role)
	}
	if rec.Client != "" {
		lines = append(lines, "Client: "+rec.Client)
	}
	if rec.Year != 0 {
		lines = append(lines, strconv.Itoa(rec.Year))
	}
	return strings.Join(lines, "\n")
}
