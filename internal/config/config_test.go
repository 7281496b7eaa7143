package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reel/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir back to %s: %v", old, err)
		}
	})
}

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("REEL_CONFIG", "")
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected no config file in temp HOME")
	}
	if resolved == "" {
		t.Fatal("expected a resolved path even without a file")
	}
	if cfg.Paths.LibraryDir != "reel" {
		t.Errorf("library dir: got %q want %q", cfg.Paths.LibraryDir, "reel")
	}
	if cfg.Recorder.Binary != "obs-cli" {
		t.Errorf("recorder binary: got %q", cfg.Recorder.Binary)
	}
	wantRecordings := filepath.Join(tempHome, "Videos")
	if cfg.Recorder.RecordingsDir != wantRecordings {
		t.Errorf("recordings dir: got %q want %q", cfg.Recorder.RecordingsDir, wantRecordings)
	}
	if cfg.Render.FFmpegBinary != "ffmpeg" || cfg.Render.FFprobeBinary != "ffprobe" {
		t.Errorf("render binaries: got %q / %q", cfg.Render.FFmpegBinary, cfg.Render.FFprobeBinary)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging defaults: got %q / %q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
library_dir = "/srv/portfolio"

[recorder]
binary = "obs-cmd"
recordings_dir = "/captures"
extensions = ["MKV", ".mov"]

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be read")
	}
	if resolved != path {
		t.Errorf("resolved path: got %q want %q", resolved, path)
	}
	if cfg.Paths.LibraryDir != "/srv/portfolio" {
		t.Errorf("library dir: got %q", cfg.Paths.LibraryDir)
	}
	if cfg.Recorder.Binary != "obs-cmd" {
		t.Errorf("recorder binary: got %q", cfg.Recorder.Binary)
	}
	// Extensions normalize to lower case with a leading dot.
	want := []string{".mkv", ".mov"}
	if len(cfg.Recorder.Extensions) != len(want) {
		t.Fatalf("extensions: got %v want %v", cfg.Recorder.Extensions, want)
	}
	for i := range want {
		if cfg.Recorder.Extensions[i] != want[i] {
			t.Errorf("extension %d: got %q want %q", i, cfg.Recorder.Extensions[i], want[i])
		}
	}
	// Sections absent from the file keep their defaults.
	if cfg.Render.FFmpegBinary != "ffmpeg" {
		t.Errorf("render ffmpeg: got %q", cfg.Render.FFmpegBinary)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging: got %q / %q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"empty library":  "[paths]\nlibrary_dir = \"\"\n",
		"bad log level":  "[logging]\nlevel = \"loud\"\n",
		"bad log format": "[logging]\nformat = \"xml\"\n",
		"no extensions":  "[recorder]\nextensions = []\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("sample config not detected")
	}
	if cfg.Recorder.Binary != "obs-cli" {
		t.Errorf("sample recorder binary: got %q", cfg.Recorder.Binary)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/Videos")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if !strings.HasPrefix(got, home) {
		t.Errorf("expanded path %q should live under %q", got, home)
	}
}
