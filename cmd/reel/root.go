package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var toolConfigFlag string

	ctx := newCommandContext(&toolConfigFlag)

	rootCmd := &cobra.Command{
		Use:           "reel",
		Short:         "Capture portfolio clips and assemble them into reel videos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&toolConfigFlag, "tool-config", "",
		"Tool configuration file path (TOML)")

	rootCmd.AddCommand(newCaptureCommand(ctx))
	rootCmd.AddCommand(newAssembleCommand(ctx))
	rootCmd.AddCommand(newLsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
