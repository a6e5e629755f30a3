package deps

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/shlex"

	"vidbridge/internal/config"
)

// ResolveFFprobe returns the executable ffprobe runs as. A non-empty path is
// taken literally and must name an existing file. Otherwise the first word of
// command is resolved through PATH.
func ResolveFFprobe(path, command string) (string, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("binary (%s) not found", path)
		}
		if info.IsDir() {
			return "", fmt.Errorf("binary (%s) is a directory", path)
		}
		return path, nil
	}

	command = strings.TrimSpace(command)
	if command == "" {
		command = "ffprobe"
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return "", fmt.Errorf("ffprobe command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return "", fmt.Errorf("ffprobe command %q: no executable", command)
	}
	if p, err := exec.LookPath(argv[0]); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("binary (%s) not found", argv[0])
}

// CheckFFprobe reports whether the configured ffprobe can be launched.
func CheckFFprobe(path, command string) Status {
	status := Status{
		Name:        "FFprobe",
		Command:     strings.TrimSpace(command),
		Description: "Required for video metadata",
	}
	if path != "" {
		status.Command = path
	}
	resolved, err := ResolveFFprobe(path, command)
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	status.Command = resolved
	status.Available = true
	return status
}

// dialogHelpers lists the programs github.com/ncruces/zenity shells out to on
// Unix desktops other than macOS.
var dialogHelpers = []string{"zenity", "qarma", "matedialog"}

// CheckDialogBackend reports whether the configured dialog backend can show
// native pickers on this host.
func CheckDialogBackend(backend string) Status {
	status := Status{
		Name:        "Dialogs",
		Command:     backend,
		Description: "Native file pickers",
		Optional:    true,
	}
	switch backend {
	case config.DialogBackendNone:
		status.Available = true
		status.Detail = "disabled; every pick reports cancelled"
		return status
	case config.DialogBackendZenity:
	default:
		status.Detail = fmt.Sprintf("unsupported backend %q", backend)
		return status
	}

	switch runtime.GOOS {
	case "windows":
		status.Available = true
		return status
	case "darwin":
		return lookup(status, "osascript")
	}
	for _, helper := range dialogHelpers {
		if p, err := exec.LookPath(helper); err == nil {
			status.Command = p
			status.Available = true
			return status
		}
	}
	status.Detail = fmt.Sprintf("none of %s found", strings.Join(dialogHelpers, ", "))
	return status
}

func lookup(status Status, name string) Status {
	p, err := exec.LookPath(name)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", name)
		return status
	}
	status.Command = p
	status.Available = true
	return status
}

// CheckAll evaluates every external dependency for cfg.
func CheckAll(cfg *config.Config) []Status {
	if cfg == nil {
		return nil
	}
	return []Status{
		CheckFFprobe(cfg.FFprobe.Path, cfg.FFprobe.Command),
		CheckDialogBackend(cfg.Dialog.Backend),
	}
}
