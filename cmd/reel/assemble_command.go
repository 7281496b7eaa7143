package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"reel/internal/bucket"
	"reel/internal/config"
	"reel/internal/preset"
	"reel/internal/probe"
	"reel/internal/reel"
	"reel/internal/render"
)

func newAssembleCommand(ctx *commandContext) *cobra.Command {
	var backgroundFlag string
	var outputFlag string
	var configFlag string
	var planFlag string
	var libraryFlag string

	cmd := &cobra.Command{
		Use:   "assemble <reel_type> <year>",
		Short: "Assemble a bucket's clips into one reel video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.logger()
			out := cmd.OutOrStdout()

			year, err := strconv.Atoi(args[1])
			if err != nil || year < 1000 || year > 9999 {
				return fmt.Errorf("year must be a four-digit number, got %q", args[1])
			}

			library := cfg.Paths.LibraryDir
			if libraryFlag != "" {
				if library, err = config.ExpandPath(libraryFlag); err != nil {
					return err
				}
			}
			bkt := bucket.New(library, args[0], year)

			entries, err := bucket.Load(bkt)
			if errors.Is(err, bucket.ErrNoBucket) {
				fmt.Fprintf(out, "Error: directory %s does not exist\n", bkt.Dir())
				return nil
			}
			if err != nil {
				return fmt.Errorf("load bucket: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "No metadata records found in %s\n", bkt.Dir())
				return nil
			}

			playable, excluded := bucket.Sequence(entries)
			for _, e := range excluded {
				if e.Err != nil {
					log.Warn("skipping unreadable record", "record", e.MetadataPath, "error", e.Err)
					continue
				}
				log.Warn("video file not found, skipping", "record", e.MetadataPath)
			}
			if len(playable) == 0 {
				fmt.Fprintf(out, "No clips with media files to assemble in %s\n", bkt.Dir())
				return nil
			}

			resolved, err := resolvePreset(bkt, backgroundFlag, configFlag)
			if err != nil {
				return err
			}

			filename := resolved.OutputFilename
			if filename == "" {
				filename = fmt.Sprintf("%s_reel_%d%s", bkt.ReelType, bkt.Year, bucket.MediaExt)
			}
			outDir := bkt.Dir()
			if outputFlag != "" {
				if outDir, err = config.ExpandPath(outputFlag); err != nil {
					return err
				}
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			outputPath := filepath.Join(outDir, filename)

			builder := &reel.Builder{
				Prober: probe.NewFFprobe(cfg.Render.FFprobeBinary),
				Logger: log,
			}
			plan, err := builder.Build(cmd.Context(), bkt, playable, resolved, outputPath)
			if errors.Is(err, reel.ErrNoClips) {
				fmt.Fprintln(out, "No clips were processed successfully")
				return nil
			}
			if err != nil {
				return err
			}

			if planFlag != "" {
				planPath, err := config.ExpandPath(planFlag)
				if err != nil {
					return err
				}
				if err := reel.WritePlan(plan, planPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Render plan written to %s\n", planPath)
				return nil
			}

			compositor := render.NewFFmpeg(
				render.WithBinary(cfg.Render.FFmpegBinary),
				render.WithLogger(log),
				render.WithMinFreeMiB(cfg.Render.MinFreeMiB),
			)
			fmt.Fprintf(out, "Rendering reel to %s...\n", outputPath)
			if err := compositor.Render(cmd.Context(), plan); err != nil {
				return fmt.Errorf("render reel: %w", err)
			}
			fmt.Fprintf(out, "Reel created successfully: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&backgroundFlag, "background", "b", "", "Path to background music file")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Directory to save the output reel")
	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to a presentation config file")
	cmd.Flags().StringVarP(&planFlag, "plan", "p", "", "Write the render plan YAML here instead of rendering")
	cmd.Flags().StringVar(&libraryFlag, "library", "", "Override the library root directory")
	return cmd
}

// resolvePreset merges the four presentation layers: CLI overrides, the
// named config file, the bucket's config.yaml, and built-in defaults.
func resolvePreset(bkt bucket.Bucket, backgroundFlag, configFlag string) (preset.Resolved, error) {
	var cli preset.Preset
	if backgroundFlag != "" {
		expanded, err := config.ExpandPath(backgroundFlag)
		if err != nil {
			return preset.Resolved{}, err
		}
		cli.BackgroundMusic = &expanded
	}

	var named *preset.Preset
	if configFlag != "" {
		path, err := config.ExpandPath(configFlag)
		if err != nil {
			return preset.Resolved{}, err
		}
		if named, err = preset.LoadFile(path); err != nil {
			return preset.Resolved{}, err
		}
	}

	bucketLayer, err := preset.LoadFile(bkt.ConfigPath())
	if err != nil {
		return preset.Resolved{}, err
	}

	return preset.Resolve(&cli, named, bucketLayer), nil
}
