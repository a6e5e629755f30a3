package api

import (
	"time"

	"vidbridge/internal/deps"
	"vidbridge/internal/media/ffprobe"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// NewSelection converts a picker outcome into its wire form.
func NewSelection(path string, ok bool) SelectionResponse {
	if !ok {
		return SelectionResponse{}
	}
	return SelectionResponse{Path: &path}
}

// FromMediaInfo converts probe output to its API representation.
func FromMediaInfo(info ffprobe.MediaInfo) VideoInfoResponse {
	return VideoInfoResponse{
		Duration: info.Duration,
		Width:    info.Width,
		Height:   info.Height,
		FPS:      info.FPS,
		Codec:    info.Codec,
	}
}

// FromDependencies converts dependency checks to their API representation.
func FromDependencies(statuses []deps.Status) []DependencyStatus {
	out := make([]DependencyStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, DependencyStatus{
			Name:        s.Name,
			Command:     s.Command,
			Description: s.Description,
			Optional:    s.Optional,
			Available:   s.Available,
			Detail:      s.Detail,
		})
	}
	return out
}

// FormatTimestamp renders t in the API timestamp format, or "" for the zero time.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
