package ffprobe

import (
	"math"
	"strconv"
	"strings"
)

// MediaInfo is the flat metadata record returned for a probed video.
type MediaInfo struct {
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	FPS      float64 `json:"fps"`
	Codec    string  `json:"codec"`
}

// ParseMediaInfo extracts MediaInfo from an ffprobe JSON report produced with
// -show_streams and -show_format. Missing optional fields default to zero
// values; a missing stream array or video stream is a KindParse error.
func ParseMediaInfo(data []byte) (MediaInfo, error) {
	result, err := decodeResult(data)
	if err != nil {
		return MediaInfo{}, err
	}
	return result.MediaInfo()
}

// MediaInfo flattens the first video stream and the container duration.
func (r Result) MediaInfo() (MediaInfo, error) {
	video, ok := r.VideoStream()
	if !ok {
		return MediaInfo{}, parseError(msgNoVideoStream, nil)
	}
	return MediaInfo{
		Duration: r.DurationSeconds(),
		Width:    video.Width,
		Height:   video.Height,
		FPS:      ParseFrameRate(video.RFrameRate),
		Codec:    video.CodecName,
	}, nil
}

// ParseFrameRate converts a rational "num/den" string into frames per second.
// It returns 0 when the value is empty, does not split into exactly two parts,
// either half is not a number, or the quotient is not finite (e.g. "0/0").
func ParseFrameRate(value string) float64 {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 {
		return 0
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0
	}
	fps := num / den
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps < 0 {
		return 0
	}
	return fps
}
