package config

import (
	"fmt"
	"os"
	"strings"
)

// FFprobePathEnv names an ffprobe executable that overrides ffprobe.path and
// ffprobe.command. The value is used as-is.
const FFprobePathEnv = "FFPROBE_PATH"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAPI()
	if err := c.normalizeFFprobe(); err != nil {
		return err
	}
	if err := c.normalizeDialog(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.RuntimeDir) == "" {
		c.Paths.RuntimeDir = defaultRuntimeDir()
	}
	if c.Paths.RuntimeDir, err = expandPath(c.Paths.RuntimeDir); err != nil {
		return fmt.Errorf("paths.runtime_dir: %w", err)
	}
	// An empty log_dir disables file logging.
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAPI() {
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	c.API.Token = strings.TrimSpace(c.API.Token)
	if c.API.Token == "" {
		if value, ok := os.LookupEnv("VIDBRIDGE_API_TOKEN"); ok {
			c.API.Token = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeFFprobe() error {
	if value, ok := os.LookupEnv(FFprobePathEnv); ok && strings.TrimSpace(value) != "" {
		c.FFprobe.Path = value
	} else {
		path, err := expandPath(strings.TrimSpace(c.FFprobe.Path))
		if err != nil {
			return fmt.Errorf("ffprobe.path: %w", err)
		}
		c.FFprobe.Path = path
	}
	c.FFprobe.Command = strings.TrimSpace(c.FFprobe.Command)
	if c.FFprobe.Command == "" {
		c.FFprobe.Command = defaultFFprobeCommand
	}
	c.FFprobe.Verbosity = strings.ToLower(strings.TrimSpace(c.FFprobe.Verbosity))
	if c.FFprobe.Verbosity == "" {
		c.FFprobe.Verbosity = defaultFFprobeVerbosity
	}
	return nil
}

func (c *Config) normalizeDialog() error {
	c.Dialog.Backend = strings.ToLower(strings.TrimSpace(c.Dialog.Backend))
	if c.Dialog.Backend == "" {
		c.Dialog.Backend = defaultDialogBackend
	}
	c.Dialog.Title = strings.TrimSpace(c.Dialog.Title)
	if c.Dialog.Title == "" {
		c.Dialog.Title = defaultDialogTitle
	}

	exts := make([]string, 0, len(c.Dialog.VideoExtensions))
	seen := make(map[string]struct{}, len(c.Dialog.VideoExtensions))
	for _, ext := range c.Dialog.VideoExtensions {
		normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = append(exts, DefaultVideoExtensions...)
	}
	c.Dialog.VideoExtensions = exts

	if strings.TrimSpace(c.Dialog.StartDir) != "" {
		var err error
		if c.Dialog.StartDir, err = expandPath(strings.TrimSpace(c.Dialog.StartDir)); err != nil {
			return fmt.Errorf("dialog.start_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
