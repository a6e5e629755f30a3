package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

var validVerbosity = map[string]struct{}{
	"quiet": {}, "panic": {}, "fatal": {}, "error": {}, "warning": {},
	"info": {}, "verbose": {}, "debug": {}, "trace": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateFFprobe(); err != nil {
		return err
	}
	if err := c.validateDialog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	if c.API.Bind == "" {
		return nil
	}
	host, _, err := net.SplitHostPort(c.API.Bind)
	if err != nil {
		return fmt.Errorf("api.bind must be host:port: %w", err)
	}
	if !isLoopback(host) && c.API.Token == "" {
		return errors.New("api.token must be set when api.bind is not a loopback address (or set VIDBRIDGE_API_TOKEN)")
	}
	return nil
}

func (c *Config) validateFFprobe() error {
	if _, ok := validVerbosity[c.FFprobe.Verbosity]; !ok {
		return fmt.Errorf("ffprobe.verbosity: unsupported value %q", c.FFprobe.Verbosity)
	}
	if c.FFprobe.TimeoutSeconds < 0 {
		return errors.New("ffprobe.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateDialog() error {
	switch c.Dialog.Backend {
	case DialogBackendZenity, DialogBackendNone:
		return nil
	default:
		return fmt.Errorf("dialog.backend: unsupported value %q (want %q or %q)", c.Dialog.Backend, DialogBackendZenity, DialogBackendNone)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func isLoopback(host string) bool {
	host = strings.TrimSpace(host)
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
