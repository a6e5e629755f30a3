package config

const (
	defaultLogDir           = "~/.local/share/vidbridge/logs"
	defaultFFprobeCommand   = "ffprobe"
	defaultFFprobeVerbosity = "quiet"
	defaultDialogBackend    = DialogBackendZenity
	defaultDialogTitle      = "Select video"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Dialog backends understood by the dialog package.
const (
	DialogBackendZenity = "zenity"
	DialogBackendNone   = "none"
)

// DefaultVideoExtensions lists the container extensions offered by the video picker.
var DefaultVideoExtensions = []string{"mp4", "avi", "mkv", "mov", "webm"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RuntimeDir: defaultRuntimeDir(),
			LogDir:     defaultLogDir,
		},
		FFprobe: FFprobe{
			Command:   defaultFFprobeCommand,
			Verbosity: defaultFFprobeVerbosity,
		},
		Dialog: Dialog{
			Backend:         defaultDialogBackend,
			VideoExtensions: append([]string(nil), DefaultVideoExtensions...),
			Title:           defaultDialogTitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
