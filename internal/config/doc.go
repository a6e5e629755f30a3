// Package config loads, normalizes, and validates vidbridge configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// FFPROBE_PATH and VIDBRIDGE_API_TOKEN. The Config type centralizes every knob
// the daemon and CLI need so the socket, probe command, and dialog backend are
// discovered in one pass.
package config
