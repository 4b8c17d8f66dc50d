package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/logging"

	"github.com/kpumuk/lazychart/internal/bucket"
)

func init() {
	// Disable all Redis logging globally using the built-in VoidLogger
	redis.SetLogger(&logging.VoidLogger{})
}

const (
	// DefaultRedisURL is used when no URL is configured.
	DefaultRedisURL = "redis://localhost:6379/0"
	// DefaultStream is the stream key read when none is configured.
	DefaultStream = "lazychart:events"

	readBlock = time.Second
	readCount = 1000
)

// Redis reads events from a Redis stream. Each entry is one event at the
// millisecond time encoded in its ID.
type Redis struct {
	redis           *redis.Client
	stream          string
	since           time.Duration
	now             func() time.Time
	block           time.Duration
	displayRedisURL string
}

// RedisOption configures a Redis source.
type RedisOption func(*Redis)

// WithBackfill reads entries up to d old before following the stream.
func WithBackfill(d time.Duration) RedisOption {
	return func(r *Redis) {
		r.since = d
	}
}

// WithLogger logs every Redis command at debug level.
func WithLogger(logger *slog.Logger) RedisOption {
	return func(r *Redis) {
		if logger != nil {
			r.redis.AddHook(commandLogger{logger: logger})
		}
	}
}

// WithRedisClock sets the time source used for the backfill start.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(r *Redis) {
		r.now = now
	}
}

// NewRedis creates a source configured from a Redis URL.
func NewRedis(redisURL, stream string, opts ...RedisOption) (*Redis, error) {
	if redisURL == "" {
		redisURL = DefaultRedisURL
	}
	if stream == "" {
		stream = DefaultStream
	}

	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	redisOpts.MaxRetries = -1
	redisOpts.DialTimeout = 2 * time.Second
	redisOpts.ReadTimeout = 2 * time.Second
	redisOpts.WriteTimeout = 2 * time.Second
	redisOpts.PoolSize = 2

	r := &Redis{
		redis:           redis.NewClient(redisOpts),
		stream:          stream,
		now:             time.Now,
		block:           readBlock,
		displayRedisURL: sanitizeRedisURL(redisURL),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Name implements Source.
func (r *Redis) Name() string {
	return r.displayRedisURL + " " + r.stream
}

func sanitizeRedisURL(redisURL string) string {
	if redisURL == "" {
		return ""
	}
	parsed, err := url.Parse(redisURL)
	if err != nil {
		return redisURL
	}
	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = nil
		} else {
			parsed.User = url.User(username)
		}
	}
	return parsed.String()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.redis.Close()
}

// Add appends one event to the stream. The server assigns the entry ID, so
// the event time is the server clock.
func (r *Redis) Add(ctx context.Context) (string, error) {
	return r.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{"source": "lazychart"},
	}).Result()
}

// Run implements Source. It sends the backfill as one batch, then follows
// the stream with blocking reads.
func (r *Redis) Run(ctx context.Context, out chan<- []bucket.Point) error {
	start := "-"
	if r.since > 0 {
		start = strconv.FormatInt(r.now().Add(-r.since).UnixMilli(), 10)
	}
	entries, err := r.redis.XRange(ctx, r.stream, start, "+").Result()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("read %s: %w", r.stream, err)
	}

	lastID := followID(start, entries)
	batch, err := points(entries)
	if err != nil {
		return err
	}
	if !send(ctx, out, batch) {
		return nil
	}

	for {
		streams, err := r.redis.XRead(ctx, &redis.XReadArgs{
			Streams: []string{r.stream, lastID},
			Count:   readCount,
			Block:   r.block,
		}).Result()
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("follow %s: %w", r.stream, err)
		}
		for _, s := range streams {
			if len(s.Messages) == 0 {
				continue
			}
			lastID = s.Messages[len(s.Messages)-1].ID
			batch, err := points(s.Messages)
			if err != nil {
				return err
			}
			if !send(ctx, out, batch) {
				return nil
			}
		}
	}
}

// followID returns the ID to read after once the backfill is done. A "$"
// would be resolved again on every read, dropping entries added between
// two blocking calls.
func followID(start string, entries []redis.XMessage) string {
	switch {
	case len(entries) > 0:
		return entries[len(entries)-1].ID
	case start == "-":
		return "0-0"
	default:
		return start + "-0"
	}
}

func points(entries []redis.XMessage) ([]bucket.Point, error) {
	batch := make([]bucket.Point, 0, len(entries))
	for _, e := range entries {
		t, err := entryTime(e.ID)
		if err != nil {
			return nil, err
		}
		batch = append(batch, bucket.Point{Time: t})
	}
	return batch, nil
}

// entryTime returns the millisecond timestamp part of a stream entry ID.
func entryTime(id string) (time.Time, error) {
	ms, _, _ := strings.Cut(id, "-")
	v, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("stream entry id %q: %w", id, err)
	}
	return time.UnixMilli(v), nil
}
