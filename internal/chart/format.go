package chart

import (
	"math"
	"strconv"
	"time"
)

// Formatter renders values and timestamps for labels and tooltips.
type Formatter interface {
	Value(v float64) string
	Count(v float64) string
	Time(t time.Time, interval time.Duration) string
	Timestamp(t time.Time) string
}

// PlainFormat prints numbers in full and times in local time.
type PlainFormat struct{}

// Value prints v without trailing zeros, rounded to nine decimals so tick
// arithmetic noise does not leak into labels.
func (PlainFormat) Value(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e9)/1e9, 'f', -1, 64)
}

// Count is Value.
func (f PlainFormat) Count(v float64) string {
	return f.Value(v)
}

// Time picks the layout by interval: seconds below a minute, minutes below a
// day, dates otherwise.
func (PlainFormat) Time(t time.Time, interval time.Duration) string {
	return t.Format(TimeLayout(interval))
}

// Timestamp prints date and time.
func (PlainFormat) Timestamp(t time.Time) string {
	return t.Format(time.DateTime)
}

// TimeLayout returns the time.Format layout for labels of the given interval.
func TimeLayout(interval time.Duration) string {
	switch {
	case interval < time.Minute:
		return time.TimeOnly
	case interval < 24*time.Hour:
		return "15:04"
	default:
		return time.DateOnly
	}
}

// FormatterOr returns f, or PlainFormat when f is nil.
func FormatterOr(f Formatter) Formatter {
	if f == nil {
		return PlainFormat{}
	}
	return f
}
