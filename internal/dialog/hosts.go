package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"

	"vidbridge/internal/config"
	"vidbridge/internal/logging"
)

// ZenityHost shows native dialogs through github.com/ncruces/zenity. Each
// request runs on its own goroutine so PickFile and PickFolder return
// immediately.
type ZenityHost struct {
	logger *slog.Logger
}

// NewZenityHost constructs a ZenityHost.
func NewZenityHost(logger *slog.Logger) *ZenityHost {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ZenityHost{logger: logging.NewComponentLogger(logger, "dialog")}
}

// PickFile opens a single-file picker.
func (h *ZenityHost) PickFile(ctx context.Context, opts FileOptions, done Completion) {
	options := []zenity.Option{zenity.Context(ctx), zenity.Title(opts.Title)}
	if start := startFilename(opts.StartDir); start != "" {
		options = append(options, zenity.Filename(start))
	}
	if filter, ok := videoFilter(opts); ok {
		options = append(options, filter)
	}
	go h.run(ctx, "file", done, func() (string, error) {
		return zenity.SelectFile(options...)
	})
}

// PickFolder opens a directory picker.
func (h *ZenityHost) PickFolder(ctx context.Context, opts FolderOptions, done Completion) {
	options := []zenity.Option{zenity.Context(ctx), zenity.Title(opts.Title), zenity.Directory()}
	if start := startFilename(opts.StartDir); start != "" {
		options = append(options, zenity.Filename(start))
	}
	go h.run(ctx, "folder", done, func() (string, error) {
		return zenity.SelectFile(options...)
	})
}

func (h *ZenityHost) run(ctx context.Context, kind string, done Completion, show func() (string, error)) {
	path, err := show()
	switch {
	case errors.Is(err, zenity.ErrCanceled):
		done("", false, nil)
	case ctx.Err() != nil:
		// Closed because the request context ended.
		done("", false, nil)
	case err != nil:
		logging.WarnWithContext(logging.WithContext(ctx, h.logger), "native dialog failed", "dialog_failed",
			logging.String("kind", kind),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install zenity/kdialog or set dialog.backend = \"none\""),
			logging.String(logging.FieldImpact, "selection request fails as unavailable"))
		done("", false, err)
	default:
		done(path, true, nil)
	}
}

func videoFilter(opts FileOptions) (zenity.FileFilter, bool) {
	if len(opts.Extensions) == 0 {
		return zenity.FileFilter{}, false
	}
	patterns := make([]string, 0, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		patterns = append(patterns, "*."+strings.TrimPrefix(ext, "."))
	}
	name := opts.FilterName
	if name == "" {
		name = "Video"
	}
	return zenity.FileFilter{Name: name, Patterns: patterns, CaseFold: true}, true
}

// startFilename returns dir with a trailing separator so zenity opens inside it.
func startFilename(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	return filepath.Clean(dir) + string(os.PathSeparator)
}

// NoneHost reports every request as cancelled. It serves headless hosts.
type NoneHost struct{}

// PickFile reports cancellation.
func (NoneHost) PickFile(_ context.Context, _ FileOptions, done Completion) { done("", false, nil) }

// PickFolder reports cancellation.
func (NoneHost) PickFolder(_ context.Context, _ FolderOptions, done Completion) { done("", false, nil) }

// NewHost returns the Host selected by cfg.Dialog.Backend.
func NewHost(cfg *config.Config, logger *slog.Logger) (Host, error) {
	if cfg == nil {
		return nil, errors.New("dialog: config is nil")
	}
	switch cfg.Dialog.Backend {
	case config.DialogBackendZenity:
		return NewZenityHost(logger), nil
	case config.DialogBackendNone:
		return NoneHost{}, nil
	default:
		return nil, fmt.Errorf("dialog: unsupported backend %q", cfg.Dialog.Backend)
	}
}

// NewSelectorFromConfig wires the configured Host into a Selector.
func NewSelectorFromConfig(cfg *config.Config, logger *slog.Logger) (*Selector, error) {
	host, err := NewHost(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewSelector(host, cfg.Dialog.Title, cfg.Dialog.StartDir, cfg.Dialog.VideoExtensions, logger), nil
}
