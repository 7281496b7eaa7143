// Package fileutil holds the file copy helpers used when moving captured
// recordings into reel buckets.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile streams src to dst with mode 0o644, failing on short writes.
func CopyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	written, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	return nil
}

// CopyFileStaged copies src to a staging name in dst's directory and renames
// it into place. A failed or interrupted copy never leaves a partial dst, so
// a bucket's media file either exists complete or not at all.
func CopyFileStaged(src, dst, stageName string) error {
	if stageName == "" {
		return fmt.Errorf("staging name required")
	}
	stage := filepath.Join(filepath.Dir(dst), stageName)

	if err := CopyFile(src, stage); err != nil {
		_ = os.Remove(stage)
		return err
	}
	if err := os.Rename(stage, dst); err != nil {
		_ = os.Remove(stage)
		return fmt.Errorf("rename staged copy: %w", err)
	}
	return nil
}
