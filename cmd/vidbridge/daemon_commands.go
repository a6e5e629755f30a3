package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vidbridge/internal/api"
	"vidbridge/internal/daemonctl"
	"vidbridge/internal/deps"
	"vidbridge/internal/ipc"
	"vidbridge/internal/preflight"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the vidbridge daemon in the background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}
			launched, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonctl.LaunchOptions{ConfigPath: ctx.configPath()},
				10*time.Second,
			)
			if err != nil {
				return err
			}
			if !launched {
				fmt.Fprintln(stdout, "Daemon already running")
				return nil
			}
			fmt.Fprintln(stdout, "Daemon started")
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the vidbridge daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			stopped, err := daemonctl.Stop(ctx.socketPath(), 5*time.Second)
			if err != nil {
				return err
			}
			if !stopped {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	var statusJSON bool
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show preflight checks, dependencies, and daemon state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			checks := preflight.RunAll(commandCtx(cmd), cfg)
			dependencies := api.FromDependencies(deps.CheckAll(cfg))
			daemonStatus := daemonSnapshot(ctx.socketPath())

			if statusJSON {
				return writeJSON(cmd.OutOrStdout(), statusReport{
					Checks:       checks,
					Dependencies: dependencies,
					Daemon:       daemonStatus,
				})
			}

			r := newReport(cmd.OutOrStdout())
			r.section("Daemon")
			reportDaemon(r, daemonStatus)
			r.section("Preflight")
			for _, result := range checks {
				sev := severityOK
				if !result.Passed {
					sev = severityError
				}
				r.entry(result.Name, sev, result.Detail)
			}
			r.section("Dependencies")
			reportDependencies(r, dependencies)
			return nil
		},
	}
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the status report as JSON")

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}

type statusReport struct {
	Checks       []preflight.Result     `json:"checks"`
	Dependencies []api.DependencyStatus `json:"dependencies"`
	Daemon       *ipc.StatusResponse    `json:"daemon"`
}

// daemonSnapshot returns nil when no daemon answers on socket.
func daemonSnapshot(socket string) *ipc.StatusResponse {
	client, err := ipc.Dial(socket)
	if err != nil {
		return nil
	}
	defer client.Close()
	status, err := client.Status()
	if err != nil {
		return nil
	}
	return status
}

func reportDaemon(r *report, status *ipc.StatusResponse) {
	if status == nil || !status.Running {
		r.entry("Running", severityInfo, "no")
		return
	}
	r.entry("Running", severityOK, fmt.Sprintf("yes (pid %d)", status.PID))
	r.entry("Socket", severityInfo, status.SocketPath)
	if status.APIAddress != "" {
		r.entry("HTTP", severityInfo, status.APIAddress)
	}
	if status.StartedAt != "" {
		r.entry("Started", severityInfo, status.StartedAt)
	}
}

func reportDependencies(r *report, dependencies []api.DependencyStatus) {
	var missing []string
	for _, dep := range dependencies {
		switch {
		case dep.Available && dep.Command != "":
			r.entry(dep.Name, severityOK, "Ready (command: "+dep.Command+")")
		case dep.Available:
			r.entry(dep.Name, severityOK, "Ready")
		case dep.Optional:
			r.entry(dep.Name, severityWarn, fallback(strings.TrimSpace(dep.Detail), "not available"))
			missing = append(missing, dep.Name)
		default:
			r.entry(dep.Name, severityError, fallback(strings.TrimSpace(dep.Detail), "not available"))
			missing = append(missing, dep.Name)
		}
	}
	if len(missing) > 0 {
		r.entry("Missing", severityWarn, strings.Join(missing, ", "))
	}
}

func daemonExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return exe, nil
}
