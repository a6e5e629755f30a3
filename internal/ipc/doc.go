// Package ipc exposes the bridge over JSON-RPC on a Unix socket and ships the
// matching client used by the CLI.
//
// Methods are registered under the "VidBridge" service name:
// SelectVideoFile, SelectOutputDir, GetVideoInfo and Status. Failures cross
// the socket as plain error strings; a cancelled picker is a null path, not
// an error.
package ipc
