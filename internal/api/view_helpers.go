package api

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var codecCaser = cases.Upper(language.Und)

// CodecLabel renders a codec name for display, e.g. "h264" -> "H264".
func CodecLabel(codec string) string {
	codec = strings.TrimSpace(codec)
	if codec == "" {
		return "Unknown"
	}
	return codecCaser.String(codec)
}

// ResolutionLabel renders "1920x1080", or "Unknown" when either side is 0.
func ResolutionLabel(width, height int) string {
	if width <= 0 || height <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%dx%d", width, height)
}

// FrameRateLabel renders fps with two decimals, or "Unknown" for 0.
func FrameRateLabel(fps float64) string {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f fps", fps)
}

// DurationLabel renders seconds as H:MM:SS.mmm.
func DurationLabel(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00:00.000"
	}
	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3_600_000
	minutes := (totalMillis / 60_000) % 60
	secs := (totalMillis / 1000) % 60
	millis := totalMillis % 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, secs, millis)
}
