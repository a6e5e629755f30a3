package ffprobe

import (
	"errors"
	"fmt"
	"os/exec"
)

// Kind classifies why a probe failed.
type Kind int

const (
	// KindLaunch means the ffprobe process could not be started.
	KindLaunch Kind = iota + 1
	// KindProcess means ffprobe ran and exited with a failure status.
	KindProcess
	// KindParse means ffprobe's output was not the expected JSON document.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindLaunch:
		return "launch"
	case KindProcess:
		return "process"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against an *Error of the same Kind.
var (
	ErrLaunch  = errors.New("ffprobe launch error")
	ErrProcess = errors.New("ffprobe process error")
	ErrParse   = errors.New("ffprobe parse error")
)

const (
	msgInvalidOutput = "invalid probe output"
	msgNoVideoStream = "no video stream"
)

// Error is the failure returned by Prober.Probe and Prober.Inspect.
//
// Error() yields Detail unchanged. For KindProcess, Detail is ffprobe's stderr
// verbatim so the text the user sees matches what ffprobe printed.
type Error struct {
	Kind     Kind
	Detail   string
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrLaunch:
		return e.Kind == KindLaunch
	case ErrProcess:
		return e.Kind == KindProcess
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

// KindOf returns the Kind carried by err, or 0 when err is not a probe error.
func KindOf(err error) Kind {
	var probeErr *Error
	if errors.As(err, &probeErr) {
		return probeErr.Kind
	}
	return 0
}

func processError(stderr string, exitErr *exec.ExitError) *Error {
	detail := stderr
	if detail == "" {
		// -v quiet suppresses diagnostics; keep the message non-empty.
		detail = fmt.Sprintf("ffprobe failed: %v", exitErr)
	}
	return &Error{Kind: KindProcess, Detail: detail, ExitCode: exitErr.ExitCode(), Err: exitErr}
}

func parseError(detail string, err error) *Error {
	return &Error{Kind: KindParse, Detail: detail, Err: err}
}
