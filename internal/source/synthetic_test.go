package source

import (
	"context"
	"testing"
	"time"

	"github.com/kpumuk/lazychart/internal/bucket"
)

func TestSyntheticSeries(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(100_000)
	s := NewSynthetic(0, 0, 0, WithSeed(1), WithClock(func() time.Time { return now }))

	points := s.Series(50, 10*time.Second)
	if len(points) != 50 {
		t.Fatalf("Series() = %d points, want 50", len(points))
	}
	for i, p := range points {
		if p.Time.After(now) || !p.Time.After(now.Add(-10*time.Second)) {
			t.Fatalf("points[%d] = %v, outside (now-10s, now]", i, p.Time)
		}
		if i > 0 && p.Time.Before(points[i-1].Time) {
			t.Fatalf("points not sorted at %d", i)
		}
	}
}

func TestSyntheticTickDropRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dropRate float64
		want     int
	}{
		{name: "never drop", dropRate: 0, want: 100},
		{name: "always drop", dropRate: 1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSynthetic(0, 0, 0, WithSeed(7))
			s.DropRate = tt.dropRate
			got := 0
			for range 100 {
				got += len(s.Tick())
			}
			if got != tt.want {
				t.Fatalf("Tick() emitted %d points, want %d", got, tt.want)
			}
		})
	}
}

func TestSyntheticRun(t *testing.T) {
	t.Parallel()

	s := NewSynthetic(5, time.Second, time.Millisecond, WithSeed(3))
	s.DropRate = 0

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan []bucket.Point)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, out) }()

	if batch := receive(t, out); len(batch) != 5 {
		t.Fatalf("backfill = %d points, want 5", len(batch))
	}
	if batch := receive(t, out); len(batch) != 1 {
		t.Fatalf("tick = %d points, want 1", len(batch))
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
}
