package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vidbridge/internal/api"
	"vidbridge/internal/testsupport"
)

func TestInfoLocalPlainOutput(t *testing.T) {
	env := setupCLITestEnv(t, false)

	out, _, err := runCLI(t, []string{"info", "/videos/clip.mp4"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"/videos/clip.mp4", "0:00:12.500", "1920x1080", "29.97 fps", "H264"} {
		requireContains(t, out, want)
	}

	args := testsupport.StubArgs(t, env.cfg.FFprobe.Command)
	if got := args[len(args)-1]; got != "/videos/clip.mp4" {
		t.Fatalf("expected path as last ffprobe arg, got %q", got)
	}
}

func TestInfoLocalJSON(t *testing.T) {
	env := setupCLITestEnv(t, false)

	out, _, err := runCLI(t, []string{"info", "--json", "clip.mp4"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("info --json: %v", err)
	}
	var info api.VideoInfoResponse
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if info.Duration != 12.5 || info.Width != 1920 || info.Height != 1080 || info.Codec != "h264" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.FPS < 29.97 || info.FPS > 29.98 {
		t.Fatalf("unexpected fps: %v", info.FPS)
	}
}

func TestInfoRawAndStreams(t *testing.T) {
	env := setupCLITestEnv(t, false)

	out, _, err := runCLI(t, []string{"info", "--raw", "clip.mp4"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("info --raw: %v", err)
	}
	if strings.TrimSpace(out) != strings.TrimSpace(testsupport.SampleProbeJSON) {
		t.Fatalf("expected raw ffprobe output, got %q", out)
	}

	out, _, err = runCLI(t, []string{"info", "--streams", "clip.mp4"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("info --streams: %v", err)
	}
	for _, want := range []string{"H264", "AAC", "2ch 48000 Hz", "1 video / 1 audio streams"} {
		requireContains(t, out, want)
	}
}

func TestInfoStreamsUsesConfiguredFFprobe(t *testing.T) {
	env := setupCLITestEnv(t, false)
	stub := testsupport.WriteStubFFprobe(t, filepath.Join(env.baseDir, "ff tools"), testsupport.SampleProbeJSON, "", 0)
	env.cfg.FFprobe.Path = stub
	env.cfg.FFprobe.Command = "definitely-not-installed"
	env.cfg.FFprobe.Verbosity = "error"
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"info", "--streams", "clip.mp4"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("info --streams: %v", err)
	}
	requireContains(t, out, "1 video / 1 audio streams")
	args := testsupport.StubArgs(t, stub)
	if len(args) < 2 || args[0] != "-v" || args[1] != "error" {
		t.Fatalf("expected configured verbosity, got %v", args)
	}
}

func TestInfoStreamsHonoursTimeout(t *testing.T) {
	env := setupCLITestEnv(t, false)
	slow := filepath.Join(env.baseDir, "slow-ffprobe")
	if err := os.WriteFile(slow, []byte("#!/bin/sh\nexec sleep 5\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	env.cfg.FFprobe.Path = slow
	env.cfg.FFprobe.TimeoutSeconds = 1
	writeTestConfig(t, env.configPath, env.cfg)

	start := time.Now()
	if _, _, err := runCLI(t, []string{"info", "--streams", "clip.mp4"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Fatalf("expected configured timeout to stop ffprobe, took %s", elapsed)
	}
}

func TestInfoReportsProbeFailure(t *testing.T) {
	env := setupCLITestEnv(t, false)
	stub := testsupport.WriteStubFFprobe(t, filepath.Join(env.baseDir, "failing"), "", "clip.mp4: No such file or directory\n", 1)
	env.cfg.FFprobe.Command = stub
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"info", "clip.mp4"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected probe error")
	}
	if err.Error() != "clip.mp4: No such file or directory\n" {
		t.Fatalf("expected ffprobe stderr verbatim, got %q", err.Error())
	}
}

func TestInfoRejectsConflictingFlags(t *testing.T) {
	env := setupCLITestEnv(t, false)
	if _, _, err := runCLI(t, []string{"info", "--json", "--raw", "clip.mp4"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected --json with --raw to fail")
	}
	if _, _, err := runCLI(t, []string{"info"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected missing path to fail")
	}
}

func TestInfoRemote(t *testing.T) {
	env := setupCLITestEnv(t, true)

	out, _, err := runCLI(t, []string{"--remote", "info", "--json", "clip.mp4"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("remote info: %v", err)
	}
	var info api.VideoInfoResponse
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if info.Codec != "h264" {
		t.Fatalf("unexpected codec: %q", info.Codec)
	}

	if _, _, err := runCLI(t, []string{"--remote", "info", "--raw", "clip.mp4"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected --raw to be rejected with --remote")
	}
}
