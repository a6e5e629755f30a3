package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
)

const defaultVerbosity = "quiet"

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index        int    `json:"index"`
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	CodecTag     string `json:"codec_tag_string"`
	Duration     string `json:"duration"`
	BitRate      string `json:"bit_rate"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PixFmt       string `json:"pix_fmt"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	SampleRate   string `json:"sample_rate"`
	Channels     int    `json:"channels"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Prober runs ffprobe. The zero value is not usable; construct with NewProber.
type Prober struct {
	command   []string
	verbosity string
	timeout   time.Duration
	logger    *slog.Logger
}

// Option customizes a Prober.
type Option func(*Prober)

// WithVerbosity sets the -v level passed to ffprobe.
func WithVerbosity(level string) Option {
	return func(p *Prober) {
		if level = strings.TrimSpace(level); level != "" {
			p.verbosity = level
		}
	}
}

// WithTimeout bounds each invocation. Zero waits for ffprobe to exit.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger attaches a logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProber builds a Prober from a command line such as "ffprobe" or
// "flatpak run --command=ffprobe org.ffmpeg". An empty command means "ffprobe".
func NewProber(command string, opts ...Option) (*Prober, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		command = "ffprobe"
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("ffprobe command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("ffprobe command %q: no executable", command)
	}
	return newProber(argv, opts), nil
}

// NewBinaryProber builds a Prober that launches path as-is. Spaces and
// backslashes in path are kept.
func NewBinaryProber(path string, opts ...Option) (*Prober, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ffprobe path is empty")
	}
	return newProber([]string{path}, opts), nil
}

func newProber(argv []string, opts []Option) *Prober {
	p := &Prober{
		command:   argv,
		verbosity: defaultVerbosity,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Binary returns the executable the prober launches.
func (p *Prober) Binary() string {
	return p.command[0]
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func (p *Prober) Inspect(ctx context.Context, path string) (Result, error) {
	output, err := p.run(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return decodeResult(output)
}

// Probe executes ffprobe against path and extracts the primary video stream's
// metadata. Failures are *Error values classified by Kind.
func (p *Prober) Probe(ctx context.Context, path string) (MediaInfo, error) {
	output, err := p.run(ctx, path)
	if err != nil {
		return MediaInfo{}, err
	}
	return ParseMediaInfo(output)
}

func (p *Prober) args(path string) []string {
	// ffprobe treats a leading dash as an option.
	if strings.HasPrefix(path, "-") {
		path = "./" + path
	}
	args := make([]string, 0, len(p.command)+8)
	args = append(args, p.command[1:]...)
	return append(args,
		"-v", p.verbosity,
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)
}

func (p *Prober) run(ctx context.Context, path string) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := p.args(path)
	cmd := exec.CommandContext(ctx, p.command[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	started := time.Now()
	err := cmd.Run()
	p.logger.Debug("ffprobe finished",
		slog.String("binary", p.command[0]),
		slog.Any("args", args),
		slog.Duration("elapsed", time.Since(started)),
		slog.Int("stdout_bytes", stdout.Len()),
		slog.Int("stderr_bytes", stderr.Len()))

	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, ctxErr)
	}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return nil, processError(stderr.String(), exitErr)
	case err != nil:
		return nil, &Error{Kind: KindLaunch, Detail: err.Error(), Err: err}
	}
	return stdout.Bytes(), nil
}

// decodeResult reads the report field by field. Only invalid JSON or a
// missing "streams" array fail; fields of an unexpected type read as zero.
func decodeResult(data []byte) (Result, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var document any
	if err := decoder.Decode(&document); err != nil {
		return Result{}, parseError(err.Error(), err)
	}
	if decoder.More() {
		return Result{}, parseError("invalid character after top-level value", nil)
	}

	root, _ := document.(map[string]any)
	entries, ok := root["streams"].([]any)
	if !ok {
		return Result{}, parseError(msgInvalidOutput, nil)
	}
	streams := make([]Stream, 0, len(entries))
	for _, entry := range entries {
		fields, _ := entry.(map[string]any)
		streams = append(streams, streamFromFields(fields))
	}
	format, _ := root["format"].(map[string]any)
	return Result{
		Streams: streams,
		Format:  formatFromFields(format),
		raw:     append([]byte(nil), data...),
	}, nil
}

func streamFromFields(f map[string]any) Stream {
	return Stream{
		Index:        intField(f, "index"),
		CodecName:    stringField(f, "codec_name"),
		CodecType:    stringField(f, "codec_type"),
		CodecTag:     stringField(f, "codec_tag_string"),
		Duration:     stringField(f, "duration"),
		BitRate:      stringField(f, "bit_rate"),
		Width:        intField(f, "width"),
		Height:       intField(f, "height"),
		PixFmt:       stringField(f, "pix_fmt"),
		RFrameRate:   stringField(f, "r_frame_rate"),
		AvgFrameRate: stringField(f, "avg_frame_rate"),
		SampleRate:   stringField(f, "sample_rate"),
		Channels:     intField(f, "channels"),
	}
}

func formatFromFields(f map[string]any) Format {
	return Format{
		Filename:   stringField(f, "filename"),
		NBStreams:  intField(f, "nb_streams"),
		Duration:   stringField(f, "duration"),
		Size:       stringField(f, "size"),
		BitRate:    stringField(f, "bit_rate"),
		FormatName: stringField(f, "format_name"),
	}
}

// stringField returns f[key] when it is a JSON string, "" otherwise. ffprobe
// encodes durations and rates as strings.
func stringField(f map[string]any, key string) string {
	value, _ := f[key].(string)
	return value
}

// intField returns f[key] when it is a JSON number with no fractional part,
// 0 otherwise.
func intField(f map[string]any, key string) int {
	number, ok := f[key].(json.Number)
	if !ok {
		return 0
	}
	if v, err := number.Int64(); err == nil && v >= math.MinInt32 && v <= math.MaxInt32 {
		return int(v)
	}
	v, err := number.Float64()
	if err != nil || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// VideoStream returns the first stream whose codec_type is "video".
func (r Result) VideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if stream.CodecType == "video" {
			return stream, true
		}
	}
	return Stream{}, false
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	return r.countType("video")
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	return r.countType("audio")
}

func (r Result) countType(codecType string) int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, codecType) {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return nonNegative(parseFloat(r.Format.Duration))
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	return int64(nonNegative(parseFloat(r.Format.Size)))
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	return int64(nonNegative(parseFloat(r.Format.BitRate)))
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
