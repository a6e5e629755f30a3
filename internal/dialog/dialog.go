package dialog

import (
	"context"
	"log/slog"
	"strings"

	"vidbridge/internal/logging"
	"vidbridge/internal/services"
)

// FileOptions configures a single-file picker.
type FileOptions struct {
	Title      string
	StartDir   string
	FilterName string
	// Extensions are matched case-insensitively and carry no leading dot.
	Extensions []string
}

// FolderOptions configures a directory picker.
type FolderOptions struct {
	Title    string
	StartDir string
}

// Completion receives the outcome of a dialog. ok is false when the user
// cancelled. err is set when the host could not show the dialog at all.
type Completion func(path string, ok bool, err error)

// Host is the platform capability that presents modal pickers. Implementations
// must call done at most once per request, from any goroutine, and should
// close the dialog when ctx ends.
type Host interface {
	PickFile(ctx context.Context, opts FileOptions, done Completion)
	PickFolder(ctx context.Context, opts FolderOptions, done Completion)
}

// Selector runs dialog requests against a Host.
type Selector struct {
	host       Host
	title      string
	startDir   string
	extensions []string
	logger     *slog.Logger
}

// NewSelector builds a Selector. extensions restricts SelectVideoFile to the
// given container extensions.
func NewSelector(host Host, title, startDir string, extensions []string, logger *slog.Logger) *Selector {
	if host == nil {
		host = NoneHost{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Selector{
		host:       host,
		title:      strings.TrimSpace(title),
		startDir:   strings.TrimSpace(startDir),
		extensions: append([]string(nil), extensions...),
		logger:     logging.NewComponentLogger(logger, "dialog"),
	}
}

// SelectVideoFile asks the user for one video file.
func (s *Selector) SelectVideoFile(ctx context.Context) (string, bool, error) {
	opts := FileOptions{
		Title:      s.title,
		StartDir:   s.startDir,
		FilterName: "Video",
		Extensions: s.extensions,
	}
	return s.await(ctx, "file", func(done Completion) {
		s.host.PickFile(ctx, opts, done)
	})
}

// SelectOutputDirectory asks the user for one directory.
func (s *Selector) SelectOutputDirectory(ctx context.Context) (string, bool, error) {
	opts := FolderOptions{Title: s.title, StartDir: s.startDir}
	return s.await(ctx, "folder", func(done Completion) {
		s.host.PickFolder(ctx, opts, done)
	})
}

type outcome struct {
	path string
	ok   bool
	err  error
}

func (s *Selector) await(ctx context.Context, kind string, open func(Completion)) (string, bool, error) {
	// Capacity 1 so a late host delivery never blocks after the caller left.
	results := make(chan outcome, 1)
	open(func(path string, ok bool, err error) {
		if ok && path == "" {
			ok = false
		}
		select {
		case results <- outcome{path: path, ok: ok, err: err}:
		default:
		}
	})

	select {
	case res := <-results:
		if res.err != nil {
			return "", false, services.Wrap(services.ErrUnavailable, "dialog", kind, "dialog could not be shown", res.err)
		}
		logging.WithContext(ctx, s.logger).Debug("dialog closed",
			logging.String("kind", kind),
			logging.Bool("selected", res.ok))
		if !res.ok {
			return "", false, nil
		}
		return res.path, true, nil
	case <-ctx.Done():
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "dialog abandoned", "dialog_abandoned",
			logging.String("kind", kind),
			logging.Error(ctx.Err()),
			logging.String(logging.FieldImpact, "selection result will be discarded"))
		return "", false, ctx.Err()
	}
}
