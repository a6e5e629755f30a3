package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"vidbridge/internal/config"
	"vidbridge/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDependency converts a dependency status into a preflight result.
// Optional dependencies pass with a note when unavailable.
func CheckDependency(status deps.Status) Result {
	result := Result{Name: status.Name}
	switch {
	case status.Available:
		result.Passed = true
		result.Detail = status.Command
		if status.Detail != "" {
			result.Detail = status.Detail
		}
	case status.Optional:
		result.Passed = true
		result.Detail = fmt.Sprintf("unavailable (%s)", status.Detail)
	default:
		result.Detail = status.Detail
	}
	return result
}

// CheckSystemDeps evaluates all external dependencies for the given config.
// Both the daemon and the CLI status command use this to avoid duplicating
// the requirements list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckAll(cfg)
}
