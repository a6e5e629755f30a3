package api

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidbridge/internal/logging"
	"vidbridge/internal/media/ffprobe"
	"vidbridge/internal/services"
)

// VideoProber extracts metadata from a video file.
type VideoProber interface {
	Probe(ctx context.Context, path string) (ffprobe.MediaInfo, error)
}

// FileSelector presents the host's file and folder pickers. ok is false when
// the user cancelled.
type FileSelector interface {
	SelectVideoFile(ctx context.Context) (path string, ok bool, err error)
	SelectOutputDirectory(ctx context.Context) (path string, ok bool, err error)
}

// Service implements the bridge operations shared by every transport.
type Service struct {
	prober   VideoProber
	selector FileSelector
	logger   *slog.Logger
}

// NewService constructs a Service.
func NewService(prober VideoProber, selector FileSelector, logger *slog.Logger) *Service {
	return &Service{
		prober:   prober,
		selector: selector,
		logger:   logging.NewComponentLogger(logger, "bridge"),
	}
}

// WithRequest stamps ctx with a fresh request id and the transport name unless
// a request id is already present.
func WithRequest(ctx context.Context, transport string) context.Context {
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	return services.WithTransport(ctx, transport)
}

// SelectVideoFile opens the video picker.
func (s *Service) SelectVideoFile(ctx context.Context) (SelectionResponse, error) {
	return s.selectPath(ctx, "select_video_file", FileSelector.SelectVideoFile)
}

// SelectOutputDir opens the directory picker.
func (s *Service) SelectOutputDir(ctx context.Context) (SelectionResponse, error) {
	return s.selectPath(ctx, "select_output_dir", FileSelector.SelectOutputDirectory)
}

func (s *Service) selectPath(ctx context.Context, op string, pick func(FileSelector, context.Context) (string, bool, error)) (SelectionResponse, error) {
	logger := logging.WithContext(ctx, s.logger)
	if s.selector == nil {
		return SelectionResponse{}, services.Wrap(services.ErrUnavailable, "bridge", op, "no dialog host configured", nil)
	}
	path, ok, err := pick(s.selector, ctx)
	if err != nil {
		return SelectionResponse{}, err
	}
	logger.Info("selection finished",
		logging.String("operation", op),
		logging.Bool("selected", ok),
		logging.String("path", path))
	return NewSelection(path, ok), nil
}

// GetVideoInfo probes req.Path. Probe failures are returned as produced by the
// prober so their message reaches the caller intact.
func (s *Service) GetVideoInfo(ctx context.Context, req VideoInfoRequest) (VideoInfoResponse, error) {
	logger := logging.WithContext(ctx, s.logger)
	path := req.Path
	if strings.TrimSpace(path) == "" {
		return VideoInfoResponse{}, services.Wrap(services.ErrValidation, "bridge", "get_video_info", "path is required", nil)
	}
	if s.prober == nil {
		return VideoInfoResponse{}, services.Wrap(services.ErrUnavailable, "bridge", "get_video_info", "no prober configured", nil)
	}

	started := time.Now()
	info, err := s.prober.Probe(ctx, path)
	if err != nil {
		logging.WarnWithContext(logger, "video probe failed", "probe_failed",
			logging.String("path", path),
			logging.String("kind", ffprobe.KindOf(err).String()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify the file exists and ffprobe can read it"),
			logging.String(logging.FieldImpact, "caller receives the ffprobe error"))
		return VideoInfoResponse{}, err
	}
	logger.Info("video probed",
		logging.String("path", path),
		logging.String("codec", info.Codec),
		logging.Int("width", info.Width),
		logging.Int("height", info.Height),
		logging.Float64("fps", info.FPS),
		logging.Duration("elapsed", time.Since(started)))
	return FromMediaInfo(info), nil
}
