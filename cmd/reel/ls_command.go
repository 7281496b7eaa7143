package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reel/internal/bucket"
	"reel/internal/config"
)

func newLsCommand(ctx *commandContext) *cobra.Command {
	var libraryFlag string

	cmd := &cobra.Command{
		Use:   "ls <reel_type> <year>",
		Short: "List a bucket's clip records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
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
			rows := make([][]string, 0, len(entries))
			appendRow := func(e bucket.Entry, media string) {
				if e.Err != nil {
					rows = append(rows, []string{"-", "(unreadable: " + e.MetadataPath + ")", "", "", "", "", media})
					return
				}
				rec := e.Record
				order := "-"
				if rec.Order > 0 {
					order = strconv.Itoa(rec.Order)
				}
				end := "full"
				if rec.End != nil {
					end = strconv.FormatFloat(*rec.End, 'f', -1, 64)
				}
				rows = append(rows, []string{
					order,
					rec.Title,
					rec.Client,
					rec.Role,
					strconv.FormatFloat(rec.Start, 'f', -1, 64),
					end,
					media,
				})
			}
			for _, e := range playable {
				appendRow(e, "yes")
			}
			for _, e := range excluded {
				appendRow(e, "missing")
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Order", "Title", "Client", "Role", "Start", "End", "Media"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryFlag, "library", "", "Override the library root directory")
	return cmd
}
