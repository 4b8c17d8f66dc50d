package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// commandLogger is a Redis hook that logs commands with their duration.
type commandLogger struct {
	logger *slog.Logger
}

func (h commandLogger) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.logger.DebugContext(ctx, "redis dial failed", "addr", addr, "error", err)
		}
		return conn, err
	}
}

func (h commandLogger) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.record(ctx, cmd, time.Since(start), err)
		return err
	}
}

func (h commandLogger) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		h.logger.DebugContext(ctx, "redis pipeline", "commands", len(cmds), "duration", time.Since(start))
		return err
	}
}

func (h commandLogger) record(ctx context.Context, cmd redis.Cmder, duration time.Duration, err error) {
	attrs := []any{"command", formatCommand(cmd), "duration", duration}
	if err != nil && !errors.Is(err, redis.Nil) {
		attrs = append(attrs, "error", err)
	}
	h.logger.DebugContext(ctx, "redis", attrs...)
}

func formatCommand(cmd redis.Cmder) string {
	args := cmd.Args()
	if len(args) == 0 {
		return cmd.Name()
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, " ")
}
