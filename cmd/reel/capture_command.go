package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"reel/internal/capture"
	"reel/internal/recorder"
)

func newCaptureCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Record a portfolio clip and file it into its bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return errors.New("capture is interactive and needs a terminal on stdin")
			}

			out := cmd.OutOrStdout()
			details, err := capture.PromptDetails(cmd.InOrStdin(), out)
			if err != nil {
				return err
			}

			// Ctrl+C during the recording wait must still stop the
			// recorder cleanly, so the signal cancels the context instead
			// of killing the process.
			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session := &capture.Session{
				Recorder:      recorder.NewCLI(recorder.WithBinary(cfg.Recorder.Binary)),
				RecordingsDir: cfg.Recorder.RecordingsDir,
				Extensions:    cfg.Recorder.Extensions,
				LibraryDir:    cfg.Paths.LibraryDir,
				StopTimeout:   time.Duration(cfg.Recorder.StopTimeout) * time.Second,
				In:            cmd.InOrStdin(),
				Out:           out,
				Logger:        ctx.logger(),
			}
			result, err := session.Run(sigCtx, details)
			if errors.Is(err, capture.ErrCancelled) {
				fmt.Fprintln(out, "Recording cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Clip and metadata saved to %s\n", result.Bucket.Dir())
			fmt.Fprintf(out, "YAML: %s\n", result.MetadataPath)
			fmt.Fprintf(out, "Video: %s\n", result.MediaPath)
			return nil
		},
	}
}
