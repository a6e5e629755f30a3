// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no vidbridge-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Prober: runs a configured ffprobe command line
//   - Result: parsed ffprobe output containing streams and format metadata
//   - MediaInfo: the flat duration/resolution/fps/codec record handed to callers
//   - Error: failures tagged as launch, process, or parse errors
//
// Primary entry points:
//   - Prober.Probe: executes ffprobe and returns MediaInfo
//   - Prober.Inspect: executes ffprobe and returns the full Result
//   - ParseMediaInfo / ParseFrameRate: pure parsing helpers
package ffprobe
