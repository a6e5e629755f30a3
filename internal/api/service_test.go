package api

import (
	"context"
	"errors"
	"testing"

	"vidbridge/internal/media/ffprobe"
	"vidbridge/internal/services"
)

type stubProber struct {
	info     ffprobe.MediaInfo
	err      error
	lastPath string
	lastCtx  context.Context
}

func (s *stubProber) Probe(ctx context.Context, path string) (ffprobe.MediaInfo, error) {
	s.lastPath = path
	s.lastCtx = ctx
	return s.info, s.err
}

type stubSelector struct {
	path string
	ok   bool
	err  error
}

func (s stubSelector) SelectVideoFile(context.Context) (string, bool, error) {
	return s.path, s.ok, s.err
}

func (s stubSelector) SelectOutputDirectory(context.Context) (string, bool, error) {
	return s.path, s.ok, s.err
}

func TestService_GetVideoInfo(t *testing.T) {
	prober := &stubProber{info: ffprobe.MediaInfo{Duration: 12.5, Width: 1920, Height: 1080, FPS: 29.97, Codec: "h264"}}
	svc := NewService(prober, stubSelector{}, nil)

	got, err := svc.GetVideoInfo(context.Background(), VideoInfoRequest{Path: "/videos/a.mp4"})
	if err != nil {
		t.Fatalf("GetVideoInfo returned error: %v", err)
	}
	want := VideoInfoResponse{Duration: 12.5, Width: 1920, Height: 1080, FPS: 29.97, Codec: "h264"}
	if got != want {
		t.Fatalf("unexpected response: got %+v want %+v", got, want)
	}
	if prober.lastPath != "/videos/a.mp4" {
		t.Fatalf("unexpected probed path: %q", prober.lastPath)
	}
}

func TestService_GetVideoInfoPassesProbeErrorThrough(t *testing.T) {
	probeErr := &ffprobe.Error{Kind: ffprobe.KindProcess, Detail: "a.mp4: Invalid data found when processing input\n"}
	svc := NewService(&stubProber{err: probeErr}, stubSelector{}, nil)

	_, err := svc.GetVideoInfo(context.Background(), VideoInfoRequest{Path: "a.mp4"})
	if !errors.Is(err, ffprobe.ErrProcess) {
		t.Fatalf("expected process error, got %v", err)
	}
	if err.Error() != probeErr.Detail {
		t.Fatalf("expected message unchanged, got %q", err.Error())
	}
}

func TestService_GetVideoInfoRejectsEmptyPath(t *testing.T) {
	prober := &stubProber{}
	svc := NewService(prober, stubSelector{}, nil)

	_, err := svc.GetVideoInfo(context.Background(), VideoInfoRequest{Path: "  "})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if prober.lastCtx != nil {
		t.Fatal("prober must not run for an empty path")
	}
}

func TestService_Selections(t *testing.T) {
	svc := NewService(nil, stubSelector{path: "/out", ok: true}, nil)
	got, err := svc.SelectOutputDir(context.Background())
	if err != nil {
		t.Fatalf("SelectOutputDir returned error: %v", err)
	}
	if !got.Selected() || *got.Path != "/out" {
		t.Fatalf("unexpected selection: %+v", got)
	}

	svc = NewService(nil, stubSelector{}, nil)
	got, err = svc.SelectVideoFile(context.Background())
	if err != nil {
		t.Fatalf("SelectVideoFile returned error: %v", err)
	}
	if got.Selected() {
		t.Fatalf("expected cancelled selection, got %q", *got.Path)
	}
}

func TestService_SelectionErrors(t *testing.T) {
	svc := NewService(nil, stubSelector{err: context.Canceled}, nil)
	if _, err := svc.SelectVideoFile(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}

	svc = NewService(nil, nil, nil)
	if _, err := svc.SelectVideoFile(context.Background()); !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestWithRequest(t *testing.T) {
	ctx := WithRequest(context.Background(), "ipc")
	id, ok := services.RequestIDFromContext(ctx)
	if !ok || len(id) != 36 {
		t.Fatalf("expected uuid request id, got %q", id)
	}
	if transport, _ := services.TransportFromContext(ctx); transport != "ipc" {
		t.Fatalf("unexpected transport: %q", transport)
	}

	again := WithRequest(ctx, "http")
	if next, _ := services.RequestIDFromContext(again); next != id {
		t.Fatalf("expected existing request id to be kept, got %q", next)
	}
}
