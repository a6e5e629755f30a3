package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleProbeJSON is a trimmed ffprobe report for a 1080p H.264 clip.
const SampleProbeJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080, "r_frame_rate": "30000/1001", "avg_frame_rate": "30000/1001"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "clip.mp4", "nb_streams": 2, "duration": "12.5", "size": "1048576", "bit_rate": "671088", "format_name": "mov,mp4,m4a,3gp,3g2,mj2"}
}`

// WriteStubFFprobe writes an executable shell script into dir that prints
// stdout, prints stderr to standard error, and exits with exitCode. Every
// invocation appends its argv, one argument per line, to an "args" file next
// to the script. It returns the script path.
func WriteStubFFprobe(t testing.TB, dir, stdout, stderr string, exitCode int) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	argsPath := filepath.Join(dir, "args")
	stdoutPath := filepath.Join(dir, "stdout.json")
	stderrPath := filepath.Join(dir, "stderr.txt")
	if err := os.WriteFile(stdoutPath, []byte(stdout), 0o644); err != nil {
		t.Fatalf("write stub stdout: %v", err)
	}
	if err := os.WriteFile(stderrPath, []byte(stderr), 0o644); err != nil {
		t.Fatalf("write stub stderr: %v", err)
	}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&script, ": > %q\n", argsPath)
	fmt.Fprintf(&script, "for arg in \"$@\"; do printf '%%s\\n' \"$arg\" >> %q; done\n", argsPath)
	fmt.Fprintf(&script, "cat %q\n", stdoutPath)
	fmt.Fprintf(&script, "cat %q >&2\n", stderrPath)
	fmt.Fprintf(&script, "exit %d\n", exitCode)

	target := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(target, []byte(script.String()), 0o755); err != nil {
		t.Fatalf("write stub ffprobe: %v", err)
	}
	return target
}

// StubArgs returns the arguments recorded by the most recent invocation of a
// stub written by WriteStubFFprobe.
func StubArgs(t testing.TB, stubPath string) []string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(filepath.Dir(stubPath), "args"))
	if err != nil {
		t.Fatalf("read stub args: %v", err)
	}
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
