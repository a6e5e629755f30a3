// Package api defines the bridge service and its wire-format types for the
// IPC and HTTP transports.
//
// # Key Types
//
// Service: the three remote-callable operations (select a video file, select
// an output directory, probe a video) composed from a VideoProber and a
// FileSelector.
//
// SelectionResponse: a picked path, or null when the user cancelled.
//
// VideoInfoResponse: duration, resolution, frame rate and codec of a video.
//
// DaemonStatus: running state, socket and lock paths, and dependency report.
//
// # Design Notes
//
// Probe failures are returned unchanged so transports can flatten them with
// err.Error() and callers see ffprobe's stderr verbatim. Validation failures
// carry the services.ErrValidation marker.
//
// Every call is stamped with a request id (google/uuid) that appears in logs
// as correlation_id.
package api
