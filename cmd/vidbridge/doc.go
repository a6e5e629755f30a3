// Package main hosts the vidbridge CLI entrypoint and command graph.
//
// The Cobra command tree exposes the bridge operations (pick a video, pick an
// output directory, probe a video) either in-process or against a running
// daemon over its IPC socket, plus daemon lifecycle, status, and
// configuration scaffolding commands.
//
// Keep this package thin: behavior belongs in the internal packages and is
// surfaced here through commands and flags.
package main
