package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/kpumuk/lazychart/internal/source"
)

func newEmitCommand() *cobra.Command {
	emitCmd := &cobra.Command{
		Use:   "emit",
		Short: "Append synthetic events to the redis stream until interrupted.",
		Args:  cobra.NoArgs,
		RunE:  runEmit,
	}
	emitCmd.Flags().Duration("rate", defaultRate, "event period")
	emitCmd.Flags().Int("count", 0, "stop after this many events (0 means no limit)")
	return emitCmd
}

func runEmit(cmd *cobra.Command, _ []string) error {
	rate, err := cmd.Flags().GetDuration("rate")
	if err != nil {
		return fmt.Errorf("parse rate flag: %w", err)
	}
	if rate <= 0 {
		return fmt.Errorf("rate must be positive")
	}
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return fmt.Errorf("parse count flag: %w", err)
	}
	redisURL, err := cmd.Flags().GetString("redis")
	if err != nil {
		return fmt.Errorf("parse redis flag: %w", err)
	}

	logger, closeLog, err := openLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := newRedis(cmd, redisURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	gen := source.NewSynthetic(0, 0, rate)
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	sent := 0
	for count == 0 || sent < count {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		for range gen.Tick() {
			id, err := src.Add(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("append event: %w", err)
			}
			sent++
			logger.Debug("event appended", "id", id)
		}
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "appended %d events to %s\n", sent, src.Name())
	return err
}
