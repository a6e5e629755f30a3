package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vidbridge/internal/api"
	"vidbridge/internal/ipc"
)

func newPickCommand(ctx *commandContext) *cobra.Command {
	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "Open a native file or folder picker and print the selection",
	}
	pickCmd.AddCommand(newPickSubcommand(ctx, "video", "Pick a video file",
		(*api.Service).SelectVideoFile, (*ipc.Client).SelectVideoFile))
	pickCmd.AddCommand(newPickSubcommand(ctx, "dir", "Pick an output directory",
		(*api.Service).SelectOutputDir, (*ipc.Client).SelectOutputDir))
	return pickCmd
}

type localPick func(*api.Service, context.Context) (api.SelectionResponse, error)

type remotePick func(*ipc.Client) (*ipc.SelectResponse, error)

func newPickSubcommand(ctx *commandContext, use, short string, local localPick, remote remotePick) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var selection api.SelectionResponse
			if ctx.useRemote() {
				err := ctx.withClient(func(client *ipc.Client) error {
					resp, err := remote(client)
					if err != nil {
						return err
					}
					selection = *resp
					return nil
				})
				if err != nil {
					return err
				}
			} else {
				service, err := ctx.localService(cmd)
				if err != nil {
					return err
				}
				selection, err = local(service, api.WithRequest(commandCtx(cmd), "cli"))
				if err != nil {
					return err
				}
			}
			return printSelection(cmd, selection, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, `Print {"path": ...} with null on cancel`)
	return cmd
}

func printSelection(cmd *cobra.Command, selection api.SelectionResponse, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), selection)
	}
	if !selection.Selected() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Selection cancelled")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), *selection.Path)
	return nil
}
