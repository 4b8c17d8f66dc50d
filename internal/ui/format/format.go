// Package format provides UI formatting helpers.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/kpumuk/lazychart/internal/chart"
)

// Duration formats elapsed seconds as "2m3s", "1h30m", etc. (max 2 segments).
func Duration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm%ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Span formats a window length with Duration, dropping empty trailing units.
func Span(d time.Duration) string {
	s := Duration(int64(d / time.Second))
	for _, zero := range []string{"0h", "0m", "0s"} {
		rest, ok := strings.CutSuffix(s, zero)
		if ok && rest != "" && !unicode.IsDigit(rune(rest[len(rest)-1])) {
			return rest
		}
	}
	return s
}

// Number formats a number with K/M suffixes for readability.
func Number(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// ShortNumber formats a number into a compact 4-char max string (e.g., 999, 9.9K, 120K).
func ShortNumber(n int64) string {
	if n < 0 {
		return "-" + ShortNumber(-n)
	}
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 10_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	case n < 1_000_000:
		return fmt.Sprintf("%dK", n/1_000)
	case n < 10_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n < 1_000_000_000:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n < 10_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	default:
		return fmt.Sprintf("%dB", n/1_000_000_000)
	}
}

// Chart formats chart labels for narrow terminal axes.
type Chart struct {
	// Location is the zone times are shown in; nil means local time.
	Location *time.Location
}

var _ chart.Formatter = Chart{}

// Value prints whole numbers of 1000 and more with ShortNumber, anything else
// in full.
func (Chart) Value(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) >= 1_000 && math.Abs(v) < math.MaxInt64 {
		return ShortNumber(int64(v))
	}
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}

// Count prints an event count with ShortNumber.
func (Chart) Count(v float64) string {
	return ShortNumber(int64(math.Round(v)))
}

// Time implements chart.Formatter.
func (f Chart) Time(t time.Time, interval time.Duration) string {
	return t.In(f.location()).Format(chart.TimeLayout(interval))
}

// Timestamp implements chart.Formatter.
func (f Chart) Timestamp(t time.Time) string {
	return t.In(f.location()).Format(time.DateTime)
}

func (f Chart) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}
