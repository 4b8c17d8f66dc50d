package bucket

import (
	"errors"
	"testing"
	"time"

	"github.com/kpumuk/lazychart/internal/charterr"
)

func TestSelectInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		visible   time.Duration
		axisWidth float64
		want      time.Duration
	}{
		{name: "one minute on 600px", visible: time.Minute, axisWidth: 600, want: 5 * time.Second},
		{name: "one minute on 1200px", visible: time.Minute, axisWidth: 1200, want: time.Second},
		{name: "one hour on 400px", visible: time.Hour, axisWidth: 400, want: 5 * time.Minute},
		{name: "seven seconds", visible: 7 * time.Second, axisWidth: 400, want: time.Second},
		{name: "no divisor falls back to half", visible: 7 * time.Second, axisWidth: 20, want: 3500 * time.Millisecond},
		{name: "narrow axis falls back to half", visible: time.Minute, axisWidth: 10, want: 30 * time.Second},
		{name: "one day", visible: day, axisWidth: 500, want: time.Hour},
		{name: "beyond catalog", visible: 90 * day, axisWidth: 20, want: 45 * day},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SelectInterval(tt.visible, tt.axisWidth, MinBarWidth)
			if err != nil {
				t.Fatalf("SelectInterval(%v, %v) error = %v", tt.visible, tt.axisWidth, err)
			}
			if got != tt.want {
				t.Fatalf("SelectInterval(%v, %v) = %v, want %v", tt.visible, tt.axisWidth, got, tt.want)
			}
		})
	}
}

func TestSelectIntervalErrors(t *testing.T) {
	t.Parallel()

	var inputErr *charterr.InvalidInputError
	if _, err := SelectInterval(0, 100, MinBarWidth); !errors.As(err, &inputErr) {
		t.Fatalf("SelectInterval(range 0) error = %v, want InvalidInputError", err)
	}
	var layoutErr *charterr.InvalidLayoutError
	if _, err := SelectInterval(time.Minute, -1, MinBarWidth); !errors.As(err, &layoutErr) {
		t.Fatalf("SelectInterval(width -1) error = %v, want InvalidLayoutError", err)
	}
	if _, err := SelectInterval(time.Minute, 100, 0); !errors.As(err, &layoutErr) {
		t.Fatalf("SelectInterval(minBarWidth 0) error = %v, want InvalidLayoutError", err)
	}
}
