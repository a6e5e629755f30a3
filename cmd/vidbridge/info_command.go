package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vidbridge/internal/api"
	"vidbridge/internal/daemonrun"
	"vidbridge/internal/ipc"
	"vidbridge/internal/media/ffprobe"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var rawOutput bool
	var showStreams bool

	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Probe a video file and print duration, resolution, frame rate, and codec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if jsonOutput && rawOutput {
				return errors.New("--json and --raw are mutually exclusive")
			}
			if ctx.useRemote() {
				if rawOutput || showStreams {
					return errors.New("--raw and --streams are only available without --remote")
				}
				return ctx.withClient(func(client *ipc.Client) error {
					info, err := client.GetVideoInfo(path)
					if err != nil {
						return err
					}
					return printVideoInfo(cmd, path, *info, jsonOutput)
				})
			}

			if rawOutput || showStreams {
				return inspectLocal(cmd, ctx, path, rawOutput)
			}

			service, err := ctx.localService(cmd)
			if err != nil {
				return err
			}
			reqCtx := api.WithRequest(commandCtx(cmd), "cli")
			info, err := service.GetVideoInfo(reqCtx, api.VideoInfoRequest{Path: path})
			if err != nil {
				return err
			}
			return printVideoInfo(cmd, path, info, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the media info as JSON")
	cmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the raw ffprobe JSON document")
	cmd.Flags().BoolVar(&showStreams, "streams", false, "List every stream in the container")
	return cmd
}

func printVideoInfo(cmd *cobra.Command, path string, info api.VideoInfoResponse, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), info)
	}
	out := cmd.OutOrStdout()
	rows := [][]string{
		{"File", path},
		{"Duration", api.DurationLabel(info.Duration)},
		{"Resolution", api.ResolutionLabel(info.Width, info.Height)},
		{"Frame rate", api.FrameRateLabel(info.FPS)},
		{"Codec", api.CodecLabel(info.Codec)},
	}
	if !isTerminal(out) {
		for _, row := range rows {
			fmt.Fprintf(out, "%-11s %s\n", row[0]+":", row[1])
		}
		return nil
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))
	return nil
}

func inspectLocal(cmd *cobra.Command, ctx *commandContext, path string, raw bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	prober, err := daemonrun.NewProber(cfg, ctx.logger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	result, err := prober.Inspect(commandCtx(cmd), path)
	if err != nil {
		return err
	}
	if raw {
		_, err := cmd.OutOrStdout().Write(result.RawJSON())
		return err
	}
	rows := make([][]string, 0, len(result.Streams))
	for _, stream := range result.Streams {
		rows = append(rows, streamRow(stream))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Type", "Codec", "Resolution", "Frame rate", "Audio"},
		rows, 0, 4))
	fmt.Fprintf(out, "Container: %s, %s, %d video / %d audio streams\n",
		fallback(result.Format.FormatName, "unknown"),
		api.DurationLabel(result.DurationSeconds()),
		result.VideoStreamCount(),
		result.AudioStreamCount())
	return nil
}

func streamRow(stream ffprobe.Stream) []string {
	row := []string{
		strconv.Itoa(stream.Index),
		fallback(stream.CodecType, "-"),
		api.CodecLabel(stream.CodecName),
		"-",
		"-",
		"-",
	}
	if stream.CodecType == "video" {
		row[3] = api.ResolutionLabel(stream.Width, stream.Height)
		row[4] = api.FrameRateLabel(ffprobe.ParseFrameRate(stream.RFrameRate))
	}
	if stream.CodecType == "audio" {
		audio := make([]string, 0, 2)
		if stream.Channels > 0 {
			audio = append(audio, fmt.Sprintf("%dch", stream.Channels))
		}
		if stream.SampleRate != "" {
			audio = append(audio, stream.SampleRate+" Hz")
		}
		if len(audio) > 0 {
			row[5] = strings.Join(audio, " ")
		}
	}
	return row
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) == "" {
		return alt
	}
	return value
}
