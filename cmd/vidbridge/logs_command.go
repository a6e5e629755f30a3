package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidbridge/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var level string
	var component string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the daemon log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogPath()
			if path == "" {
				return fmt.Errorf("file logging is disabled (paths.log_dir is empty)")
			}
			opts := logs.Options{
				Offset: -1,
				Limit:  lines,
				Match:  logs.All(logs.MinLevel(level), logs.Component(component)),
			}
			out := cmd.OutOrStdout()
			emit := func(batch []string) error {
				for _, line := range batch {
					if _, err := fmt.Fprintln(out, line); err != nil {
						return err
					}
				}
				return nil
			}
			if follow {
				return logs.Follow(commandCtx(cmd), path, opts, emit)
			}
			chunk, err := logs.Read(path, opts)
			if err != nil {
				return err
			}
			return emit(chunk.Lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level to show (debug, info, warn, error)")
	cmd.Flags().StringVar(&component, "component", "", "Only show records from this component")
	return cmd
}
