package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"

	"fastawc/config"
	"fastawc/counter"
	"fastawc/logger"
	"fastawc/output"
	"fastawc/reader"
	"fastawc/stats"
	"fastawc/tracing"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := tracing.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start trace: %v\n", err)
	} else {
		defer tracing.Stop()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastawc: %v\n", err)
		return 1
	}

	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	return scanAll(ctx, cfg)
}

func scanAll(ctx context.Context, cfg *config.Config) int {
	paths := cfg.Paths
	if cfg.FilesFrom != "" {
		names, err := reader.ReadFilesFrom(cfg.FilesFrom)
		if err != nil {
			logger.Errorf("%v", err)
			return 1
		}
		paths = append(paths, names...)
	}
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	sel := cfg.Selection()
	mode := cfg.EngineMode()
	logger.Debugf("using %s engine for %d input(s)", mode, len(paths))

	src := reader.NewSource(reader.Options{
		ChunkSize:         cfg.ChunkSize,
		ReadMode:          cfg.ReadMode,
		MmapMinSize:       cfg.MmapMinSize,
		MaxBytesPerSecond: cfg.MaxBytesPerSecond(),
	})
	out := output.New(os.Stdout)

	var bar *progressbar.ProgressBar
	if cfg.Progress && len(paths) > 1 {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetDescription("Counting"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionFullWidth(),
		)
	}

	start := time.Now()
	var runStats stats.RunStats
	var total counter.Counts

	for _, path := range paths {
		if err := src.Open(path); err != nil {
			logger.Errorf("%v", err)
			runStats.Failures++
			if bar != nil {
				_ = bar.Add(1)
			}
			continue
		}
		endRegion := tracing.StartRegion(ctx, "scan")
		c, n, err := scanStream(ctx, src, mode, sel)
		endRegion()
		src.Close()

		runStats.Streams++
		runStats.BytesScanned += n
		if perr := out.PrintCounts(c, displayLabel(path), sel); perr != nil {
			logger.Errorf("writing output: %v", perr)
			runStats.Failures++
		}
		total.Accumulate(c)

		if err != nil {
			logger.Errorf("reading '%s': %v", path, err)
			runStats.Failures++
			if ctx.Err() != nil {
				break
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	if len(paths) > 1 {
		if err := out.PrintCounts(total, "total", sel); err != nil {
			logger.Errorf("writing output: %v", err)
			runStats.Failures++
		}
	}
	if err := out.Flush(); err != nil {
		logger.Errorf("writing output: %v", err)
		runStats.Failures++
	}

	runStats.Elapsed = time.Since(start)
	if cfg.Stats {
		logger.Info(runStats.Summary())
		if u, err := stats.CurrentProcessUsage(); err == nil {
			logger.Infof("process: %.1f%% cpu, %d bytes rss", u.CPUPercent, u.RSSBytes)
		}
	}

	if runStats.Failures > 0 {
		return 1
	}
	return 0
}

// scanStream feeds one input through a fresh engine. On a mid-stream read
// error the partial counts are still finalized and returned so the caller
// can report them.
func scanStream(ctx context.Context, src *reader.Source, mode counter.Mode, sel counter.Selection) (counter.Counts, uint64, error) {
	var c counter.Counts
	var n uint64
	eng := counter.New(mode, sel)
	for {
		chunk, err := src.ReadChunk(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			eng.Finalize(&c)
			return c, n, err
		}
		n += uint64(len(chunk))
		eng.Process(chunk, &c)
	}
	eng.Finalize(&c)
	return c, n, nil
}

// displayLabel returns the row label for a path; standard input rows carry
// no label.
func displayLabel(path string) string {
	if path == "-" {
		return ""
	}
	return path
}

func handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Interrupt signal received. Shutting down...")
	cancel()
}
