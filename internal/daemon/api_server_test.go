package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidbridge/internal/api"
	"vidbridge/internal/dialog"
	"vidbridge/internal/media/ffprobe"
	"vidbridge/internal/testsupport"
)

type proberStub struct {
	info ffprobe.MediaInfo
	err  error
}

func (p proberStub) Probe(context.Context, string) (ffprobe.MediaInfo, error) {
	return p.info, p.err
}

type selectorStub struct {
	path string
	ok   bool
}

func (s selectorStub) SelectVideoFile(context.Context) (string, bool, error) {
	return s.path, s.ok, nil
}

func (s selectorStub) SelectOutputDirectory(context.Context) (string, bool, error) {
	return s.path, s.ok, nil
}

func newTestServer(t *testing.T, prober api.VideoProber, selector api.FileSelector, token string) (*apiServer, *http.ServeMux) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	d, err := New(cfg, api.NewService(prober, selector, nil), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	srv := &apiServer{daemon: d}
	mux := http.NewServeMux()
	srv.routes(mux, token)
	return srv, mux
}

func TestAPIServerVideoInfo(t *testing.T) {
	info := ffprobe.MediaInfo{Duration: 12.5, Width: 1920, Height: 1080, FPS: 29.97, Codec: "h264"}
	_, mux := newTestServer(t, proberStub{info: info}, selectorStub{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/video-info", strings.NewReader(`{"path":"/videos/a.mp4"}`))
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp api.VideoInfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Width != 1920 || resp.Codec != "h264" || resp.Duration != 12.5 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if w.Header().Get("X-Request-ID") != "req-42" {
		t.Fatalf("expected request id echo, got %q", w.Header().Get("X-Request-ID"))
	}
}

func TestAPIServerVideoInfoErrors(t *testing.T) {
	probeErr := &ffprobe.Error{Kind: ffprobe.KindParse, Detail: "no video stream"}
	_, mux := newTestServer(t, proberStub{err: probeErr}, selectorStub{}, "")

	tests := []struct {
		name   string
		method string
		body   string
		code   int
		msg    string
	}{
		{name: "probe failure", method: http.MethodPost, body: `{"path":"/a.mp3"}`, code: http.StatusUnprocessableEntity, msg: "no video stream"},
		{name: "empty path", method: http.MethodPost, body: `{"path":""}`, code: http.StatusBadRequest},
		{name: "bad json", method: http.MethodPost, body: `{"path":`, code: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, body: `{"file":"/a.mp4"}`, code: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodGet, code: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/video-info", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, w.Code, w.Body.String())
			}
			var resp api.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if resp.Error == "" {
				t.Fatal("expected error message")
			}
			if tt.msg != "" && resp.Error != tt.msg {
				t.Fatalf("expected %q, got %q", tt.msg, resp.Error)
			}
		})
	}
}

func TestAPIServerSelectionCancelledIsNull(t *testing.T) {
	_, mux := newTestServer(t, proberStub{}, selectorStub{}, "")

	for _, path := range []string{"/api/select-video-file", "/api/select-output-dir"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 OK, got %d", path, w.Code)
		}
		if strings.TrimSpace(w.Body.String()) != `{"path":null}` {
			t.Fatalf("%s: expected null path, got %s", path, w.Body.String())
		}
	}
}

func TestAPIServerSelectionReturnsPath(t *testing.T) {
	_, mux := newTestServer(t, proberStub{}, selectorStub{path: "/out", ok: true}, "")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/select-output-dir", nil))
	if strings.TrimSpace(w.Body.String()) != `{"path":"/out"}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

type brokenHost struct{}

func (brokenHost) PickFile(_ context.Context, _ dialog.FileOptions, done dialog.Completion) {
	done("", false, errors.New("cannot open display"))
}

func (brokenHost) PickFolder(_ context.Context, _ dialog.FolderOptions, done dialog.Completion) {
	done("", false, errors.New("cannot open display"))
}

func TestAPIServerDialogFailureIsUnavailable(t *testing.T) {
	selector := dialog.NewSelector(brokenHost{}, "", "", nil, nil)
	_, mux := newTestServer(t, proberStub{}, selector, "")

	for _, path := range []string{"/api/select-video-file", "/api/select-output-dir"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s: expected 503, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "cannot open display") {
			t.Fatalf("%s: expected host error in body, got %s", path, w.Body.String())
		}
	}
}

func TestAPIServerStatus(t *testing.T) {
	_, mux := newTestServer(t, proberStub{}, selectorStub{}, "")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var status api.DaemonStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if status.Running {
		t.Fatal("expected daemon not running before Start")
	}
	if !strings.HasSuffix(status.SocketPath, "vidbridge.sock") {
		t.Fatalf("unexpected socket path: %q", status.SocketPath)
	}
	if len(status.Dependencies) != 2 {
		t.Fatalf("expected 2 dependencies, got %+v", status.Dependencies)
	}
}

func TestAPIServerRequiresToken(t *testing.T) {
	_, mux := newTestServer(t, proberStub{}, selectorStub{}, "secret")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}
}
