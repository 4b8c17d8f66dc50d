// Package bucket groups a time-ordered event stream into fixed-width,
// right-closed time windows.
package bucket

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/kpumuk/lazychart/internal/charterr"
)

var (
	errZeroTime    = errors.New("timestamp is zero")
	errWidth       = errors.New("width must be at least one millisecond")
	errRangeBounds = errors.New("range must be positive")
)

// Point is a single observed event.
type Point struct {
	Time time.Time
}

// Bucket holds the points whose timestamps close at Key (unix milliseconds).
type Bucket struct {
	Key    int64
	Points []Point
}

// Count returns the number of points in the bucket.
func (b Bucket) Count() int {
	return len(b.Points)
}

// KeyFor returns the closing timestamp, in unix milliseconds, of the window
// of the given width that contains t: ceil(t/width)*width.
func KeyFor(t time.Time, width time.Duration) int64 {
	w := width.Nanoseconds()
	if w <= 0 {
		return t.UnixMilli()
	}
	// Round in nanoseconds so a sub-millisecond offset still closes the window.
	return ceilDiv(t.UnixNano(), w) * w / int64(time.Millisecond)
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	// Go truncates toward zero, which is already the ceiling for negative a.
	if a%b > 0 {
		q++
	}
	return q
}

// Aggregator keeps buckets in ascending key order. Buckets are never pruned.
type Aggregator struct {
	width   time.Duration
	buckets []Bucket
}

// NewAggregator creates an empty aggregator for the given bucket width.
func NewAggregator(width time.Duration) (*Aggregator, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	return &Aggregator{width: width}, nil
}

func checkWidth(width time.Duration) error {
	if width.Milliseconds() <= 0 {
		return charterr.NewInvalidInput("width", width, errWidth)
	}
	return nil
}

// Width returns the current bucket width.
func (a *Aggregator) Width() time.Duration {
	return a.width
}

// Len returns the number of buckets.
func (a *Aggregator) Len() int {
	return len(a.buckets)
}

// Buckets returns all buckets in ascending key order. The slice must not be modified.
func (a *Aggregator) Buckets() []Bucket {
	return a.buckets[:len(a.buckets):len(a.buckets)]
}

// Last returns the most recent bucket.
func (a *Aggregator) Last() (Bucket, bool) {
	if len(a.buckets) == 0 {
		return Bucket{}, false
	}
	return a.buckets[len(a.buckets)-1], true
}

// Ingest appends p to the last bucket when it shares that bucket's key and
// opens a new bucket otherwise.
//
// Points must arrive in non-decreasing time order. This is not checked: an
// out-of-order point opens a bucket that breaks key ordering. Use Rebuild for
// unsorted or bulk input.
func (a *Aggregator) Ingest(p Point) error {
	if p.Time.IsZero() {
		return charterr.NewInvalidInput("time", p.Time, errZeroTime)
	}
	key := KeyFor(p.Time, a.width)
	if n := len(a.buckets); n > 0 && a.buckets[n-1].Key == key {
		a.buckets[n-1].Points = append(a.buckets[n-1].Points, p)
		return nil
	}
	a.buckets = append(a.buckets, Bucket{Key: key, Points: []Point{p}})
	return nil
}

// Rebuild discards all buckets and regroups points with the given width.
// Points are stably sorted by time first, so the result is deterministic and
// keeps the relative order of points sharing a timestamp.
func (a *Aggregator) Rebuild(points []Point, width time.Duration) error {
	if err := checkWidth(width); err != nil {
		return err
	}
	for i, p := range points {
		if p.Time.IsZero() {
			return charterr.NewInvalidInput(fmt.Sprintf("points[%d].time", i), p.Time, errZeroTime)
		}
	}

	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(x, y Point) int {
		return cmp.Compare(x.Time.UnixNano(), y.Time.UnixNano())
	})

	a.width = width
	a.buckets = nil
	for _, p := range sorted {
		_ = a.Ingest(p)
	}
	return nil
}

// SetWidth regroups the existing points when width differs from the current one.
func (a *Aggregator) SetWidth(width time.Duration) error {
	if width == a.width {
		return nil
	}
	return a.Rebuild(a.Points(), width)
}

// Points flattens all buckets in order.
func (a *Aggregator) Points() []Point {
	var n int
	for _, b := range a.buckets {
		n += len(b.Points)
	}
	points := make([]Point, 0, n)
	for _, b := range a.buckets {
		points = append(points, b.Points...)
	}
	return points
}

// InRange returns buckets with startKey <= Key <= endKey in ascending order.
// The scan walks backward from the newest bucket and stops at the first key
// below startKey.
func (a *Aggregator) InRange(startKey, endKey int64) []Bucket {
	hi := len(a.buckets)
	for hi > 0 && a.buckets[hi-1].Key > endKey {
		hi--
	}
	lo := hi
	for lo > 0 && a.buckets[lo-1].Key >= startKey {
		lo--
	}
	return a.buckets[lo:hi:hi]
}

// MaxCount returns the largest point count among buckets.
func MaxCount(buckets []Bucket) int {
	var m int
	for _, b := range buckets {
		m = max(m, b.Count())
	}
	return m
}
