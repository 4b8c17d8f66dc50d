package source

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/kpumuk/lazychart/internal/bucket"
)

// DefaultDropRate is the share of ticks that emit nothing.
const DefaultDropRate = 0.5

// Synthetic generates random events: a sorted backfill spread over the past,
// then one event per tick unless the tick is dropped.
type Synthetic struct {
	Backfill int
	Spread   time.Duration
	Every    time.Duration
	DropRate float64

	now  func() time.Time
	rand *rand.Rand
}

// SyntheticOption configures a Synthetic source.
type SyntheticOption func(*Synthetic)

// WithClock sets the time source.
func WithClock(now func() time.Time) SyntheticOption {
	return func(s *Synthetic) {
		s.now = now
	}
}

// WithSeed makes the generated events reproducible.
func WithSeed(seed uint64) SyntheticOption {
	return func(s *Synthetic) {
		s.rand = rand.New(rand.NewPCG(seed, seed))
	}
}

// NewSynthetic creates a generator emitting roughly one event per every.
func NewSynthetic(backfill int, spread, every time.Duration, opts ...SyntheticOption) *Synthetic {
	s := &Synthetic{
		Backfill: backfill,
		Spread:   spread,
		Every:    every,
		DropRate: DefaultDropRate,
		now:      time.Now,
		rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *Synthetic) Name() string {
	return "synthetic"
}

// Series returns count sorted events spread over the span ending now.
func (s *Synthetic) Series(count int, span time.Duration) []bucket.Point {
	end := s.now()
	points := make([]bucket.Point, 0, count)
	for range count {
		var back time.Duration
		if span > 0 {
			back = time.Duration(s.rand.Int64N(int64(span)))
		}
		points = append(points, bucket.Point{Time: end.Add(-back)})
	}
	slices.SortFunc(points, func(a, b bucket.Point) int {
		return a.Time.Compare(b.Time)
	})
	return points
}

// Tick returns the events for one tick.
func (s *Synthetic) Tick() []bucket.Point {
	if s.rand.Float64() < s.DropRate {
		return nil
	}
	return []bucket.Point{{Time: s.now()}}
}

// Run implements Source.
func (s *Synthetic) Run(ctx context.Context, out chan<- []bucket.Point) error {
	if !send(ctx, out, s.Series(s.Backfill, s.Spread)) {
		return nil
	}
	if s.Every <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.Every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !send(ctx, out, s.Tick()) {
				return nil
			}
		}
	}
}
