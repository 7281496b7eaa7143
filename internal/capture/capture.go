// Package capture orchestrates one interactive capture session: start the
// external recorder, block for the operator's stop signal, stop the
// recorder, then persist the metadata record and media file into the
// target bucket under a freshly allocated order slot.
package capture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"reel/internal/bucket"
	"reel/internal/fileutil"
	"reel/internal/logging"
	"reel/internal/recorder"
)

// ErrCancelled reports that the operator aborted the session while the
// recording was rolling. Nothing is persisted on this path.
var ErrCancelled = errors.New("capture cancelled")

// Session wires one capture run. All collaborators are injected so tests
// drive the flow with fakes and an in-memory stop signal.
type Session struct {
	Recorder      recorder.Recorder
	RecordingsDir string
	Extensions    []string
	LibraryDir    string
	StopTimeout   time.Duration // wait ceiling for stopping a cancelled recording

	In     io.Reader
	Out    io.Writer
	Now    func() time.Time
	Logger *slog.Logger
}

// Result describes what one successful session persisted.
type Result struct {
	Bucket       bucket.Bucket
	Order        int
	MetadataPath string
	MediaPath    string
	SessionID    string
}

func (s *Session) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.NewNop()
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Run executes the session. Cancelling ctx while the recording is rolling
// still stops the recorder before returning ErrCancelled; nothing is
// persisted until the recorder has stopped cleanly.
func (s *Session) Run(ctx context.Context, details Details) (*Result, error) {
	sessionID := uuid.NewString()
	log := s.logger().With("session", sessionID)

	log.Info("starting recording", "title", details.Title, "reel_type", details.ReelType)
	if err := s.Recorder.Start(ctx); err != nil {
		return nil, fmt.Errorf("start recorder: %w", err)
	}

	fmt.Fprintln(s.Out, "Recording... press Enter to stop.")
	if err := s.waitForStop(ctx); err != nil {
		// The recorder is stopped on a fresh context: the cancelled one
		// would kill the stop command before it runs.
		timeout := s.StopTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if stopErr := s.Recorder.Stop(stopCtx); stopErr != nil {
			log.Warn("failed to stop recorder after cancellation", "error", stopErr)
		}
		log.Info("recording cancelled, nothing persisted")
		return nil, err
	}

	if err := s.Recorder.Stop(ctx); err != nil {
		return nil, fmt.Errorf("stop recorder: %w", err)
	}

	latest, err := recorder.LatestRecording(s.RecordingsDir, s.Extensions)
	if err != nil {
		return nil, fmt.Errorf("locate capture: %w", err)
	}
	log.Info("recording stopped", "capture", latest)

	year := s.now().Year()
	bkt := bucket.New(s.LibraryDir, details.ReelType, year)
	if err := os.MkdirAll(bkt.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("create bucket directory: %w", err)
	}

	entries, err := bucket.Load(bkt)
	if err != nil {
		return nil, fmt.Errorf("scan bucket: %w", err)
	}
	order := bucket.NextOrder(entries)

	rec := bucket.ClipRecord{
		Title:  details.Title,
		Role:   details.Role,
		Client: details.Client,
		Year:   year,
		Order:  order,
		Start:  0,
		End:    nil, // full clip length until the record is hand-trimmed
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}

	metadataPath := bkt.MetadataPath(order)
	if err := bucket.WriteRecord(metadataPath, rec); err != nil {
		return nil, err
	}

	mediaPath := bkt.MediaPath(order)
	stageName := ".stage-" + sessionID + bucket.MediaExt
	if err := fileutil.CopyFileStaged(latest, mediaPath, stageName); err != nil {
		return nil, fmt.Errorf("copy capture into bucket: %w", err)
	}

	log.Info("clip persisted", "bucket", bkt.String(), "order", order)
	return &Result{
		Bucket:       bkt,
		Order:        order,
		MetadataPath: metadataPath,
		MediaPath:    mediaPath,
		SessionID:    sessionID,
	}, nil
}

// waitForStop blocks until the operator presses Enter or ctx is
// cancelled. The reader goroutine is the capture tool's only suspension
// point; it holds no state worth draining when cancellation wins.
func (s *Session) waitForStop(ctx context.Context) error {
	pressed := make(chan struct{}, 1)
	go func() {
		r := bufio.NewReader(s.In)
		_, _ = r.ReadString('\n')
		pressed <- struct{}{}
	}()

	select {
	case <-ctx.Done():
		return ErrCancelled
	case <-pressed:
		return nil
	}
}
