package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reel/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the external recorder and ffmpeg binaries are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.Check(deps.ForConfig(cfg))
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, s := range statuses {
				state := "ok"
				if !s.Available {
					state = "missing"
					if !s.Optional {
						missing++
					}
				}
				rows = append(rows, []string{s.Name, s.Command, state, s.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Command", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if missing > 0 {
				return errors.New("required external binaries are missing")
			}
			return nil
		},
	}
}
