// Package cmd provides the entrypoint and CLI command configuration for the
// lazychart application.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpumuk/lazychart/internal/dataset"
	"github.com/kpumuk/lazychart/internal/source"
	"github.com/kpumuk/lazychart/internal/ui"
	"github.com/kpumuk/lazychart/internal/ui/views"
)

// Synthetic source defaults: a two minute backfill, then an event every
// half second with half of the ticks dropped.
const (
	defaultBackfill = 100
	defaultSpread   = 2 * time.Minute
	defaultRate     = 500 * time.Millisecond
)

func buildVersion(version, commit, date, builtBy string) string {
	result := version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	result = fmt.Sprintf("%s\ngoos: %s\ngoarch: %s", result, runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		result = fmt.Sprintf("%s\nmodule version: %s, checksum: %s", result, info.Main.Version, info.Main.Sum)
	}

	return result
}

// NewRootCommand builds the command tree without running it.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lazychart",
		Short: "Animated charts in the terminal.",
		Long:  "Animated bar, line, pie and live event charts in the terminal.",
		Args:  cobra.NoArgs,
	}

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`lazychart {{printf "version %s\n" .Version}}`)

	pf := rootCmd.PersistentFlags()
	pf.String("dataset", "", "YAML or XLSX dataset for the static charts (default: built-in sample)")
	pf.String("redis", "", "redis URL to read events from (default: synthetic events)")
	pf.String("stream", source.DefaultStream, "redis stream key")
	pf.String("log-file", "", "write debug logs to file")
	pf.SetNormalizeFunc(normalizeFlag)

	f := rootCmd.Flags()
	f.String("cpuprofile", "", "write cpu profile to file")
	f.BoolP("help", "h", false, "help for lazychart")
	f.Duration("range", time.Minute, "visible range of the stream chart")
	f.Duration("draw-interval", time.Second, "redraw period of the stream chart")
	f.Duration("rate", defaultRate, "synthetic event period")
	f.Int("backfill", defaultBackfill, "synthetic events generated at start")
	f.Float64("inner-radius", 0, "donut hole as a fraction of the pie radius")
	f.SetNormalizeFunc(normalizeFlag)

	rootCmd.RunE = runUI
	rootCmd.AddCommand(newValidateCommand(), newExportCommand(), newEmitCommand())
	return rootCmd
}

func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "window":
		name = "range"
	case "interval":
		name = "draw-interval"
	}
	return pflag.NormalizedName(name)
}

// Execute initializes and runs the lazychart terminal application.
func Execute(version, commit, date, builtBy string) error {
	rootCmd := NewRootCommand(buildVersion(version, commit, date, builtBy))
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rootCmd.Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

func runUI(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	cpuprofile, err := flags.GetString("cpuprofile")
	if err != nil {
		return fmt.Errorf("parse cpuprofile flag: %w", err)
	}
	rangeFlag, err := flags.GetDuration("range")
	if err != nil {
		return fmt.Errorf("parse range flag: %w", err)
	}
	drawInterval, err := flags.GetDuration("draw-interval")
	if err != nil {
		return fmt.Errorf("parse draw-interval flag: %w", err)
	}
	if rangeFlag <= 0 || drawInterval <= 0 {
		return fmt.Errorf("range and draw-interval must be positive")
	}

	logger, closeLog, err := openLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	src, closeSource, err := openSource(cmd, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	if cpuprofile != "" {
		profileFile, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("create cpuprofile file: %w", err)
		}
		if err := pprof.StartCPUProfile(profileFile); err != nil {
			_ = profileFile.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = profileFile.Close()
		}()
	}

	logger.Info("starting", "source", src.Name(), "range", rangeFlag, "drawInterval", drawInterval)
	app := ui.New(ui.Config{
		Dataset:      ds,
		Source:       src,
		Range:        rangeFlag,
		DrawInterval: drawInterval,
		Logger:       logger,
	})
	defer app.Close()

	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run lazychart: %w", err)
	}
	return nil
}

// openLogger returns a debug text logger writing to --log-file, or a logger
// that discards everything.
func openLogger(cmd *cobra.Command) (*slog.Logger, func(), error) {
	path, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return nil, nil, fmt.Errorf("parse log-file flag: %w", err)
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(file), func() { _ = file.Close() }, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadDataset reads --dataset, or the built-in sample, and applies
// --inner-radius when it was given.
func loadDataset(cmd *cobra.Command) (dataset.Dataset, error) {
	path, err := cmd.Flags().GetString("dataset")
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("parse dataset flag: %w", err)
	}
	ds := dataset.Sample()
	if path != "" {
		ds, err = dataset.Load(path)
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("load dataset: %w", err)
		}
	}
	if f := cmd.Flags().Lookup("inner-radius"); f != nil && f.Changed {
		ds.InnerRadius, err = cmd.Flags().GetFloat64("inner-radius")
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("parse inner-radius flag: %w", err)
		}
	}
	return ds, nil
}

// openSource returns the Redis source when --redis is set and synthetic
// events otherwise.
func openSource(cmd *cobra.Command, logger *slog.Logger) (source.Source, func(), error) {
	redisURL, err := cmd.Flags().GetString("redis")
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis flag: %w", err)
	}
	if redisURL == "" {
		rate, err := cmd.Flags().GetDuration("rate")
		if err != nil {
			return nil, nil, fmt.Errorf("parse rate flag: %w", err)
		}
		backfill, err := cmd.Flags().GetInt("backfill")
		if err != nil {
			return nil, nil, fmt.Errorf("parse backfill flag: %w", err)
		}
		return source.NewSynthetic(backfill, defaultSpread, rate), func() {}, nil
	}

	redisSrc, err := newRedis(cmd, redisURL, logger)
	if err != nil {
		return nil, nil, err
	}
	return redisSrc, func() { _ = redisSrc.Close() }, nil
}

func newRedis(cmd *cobra.Command, redisURL string, logger *slog.Logger) (*source.Redis, error) {
	stream, err := cmd.Flags().GetString("stream")
	if err != nil {
		return nil, fmt.Errorf("parse stream flag: %w", err)
	}
	src, err := source.NewRedis(redisURL, stream,
		source.WithBackfill(views.RangePresets[len(views.RangePresets)-1]),
		source.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}
	return src, nil
}
