package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/geosafe/impact-cli/internal/config"
)

var (
	batchEventsDir string
	batchMode      string
	batchLimit     int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run impact assessments for every event in a directory",
	Long:  "Each subdirectory of the events directory is one scenario holding a hazard layer (hazard.shp or hazard.asc) and an exposure shapefile (exposure.shp). Failed events are logged and skipped; the batch continues.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mode := batchMode
		if mode == "" {
			mode = cfg.Run.Mode
		}

		events, err := listEvents(batchEventsDir)
		if err != nil {
			return err
		}
		return processBatch(ctx, events, mode, batchLimit, cfg.Batch.MaxConcurrentEvents, cfg.Run)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchEventsDir, "events-dir", "", "directory of event subdirectories")
	batchCmd.Flags().StringVar(&batchMode, "mode", "", "classification mode for all events")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of events to process (0 = all)")
	_ = batchCmd.MarkFlagRequired("events-dir")
	rootCmd.AddCommand(batchCmd)
}

// event is one batch scenario: a directory holding the hazard and exposure
// layers.
type event struct {
	Name     string
	Dir      string
	Hazard   string
	Exposure string
}

// listEvents scans the events directory for runnable scenarios.
func listEvents(dir string) ([]event, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read events dir %s", dir)
	}

	var events []event
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		eventDir := filepath.Join(dir, entry.Name())

		hazard := ""
		for _, candidate := range []string{"hazard.shp", "hazard.asc"} {
			p := filepath.Join(eventDir, candidate)
			if _, statErr := os.Stat(p); statErr == nil {
				hazard = p
				break
			}
		}
		exposure := filepath.Join(eventDir, "exposure.shp")
		if _, statErr := os.Stat(exposure); statErr != nil || hazard == "" {
			zap.L().Warn("batch: skipping directory without hazard/exposure layers",
				zap.String("dir", eventDir),
			)
			continue
		}

		events = append(events, event{
			Name:     entry.Name(),
			Dir:      eventDir,
			Hazard:   hazard,
			Exposure: exposure,
		})
	}
	return events, nil
}

// processBatch runs events concurrently. Individual event failures are
// logged and do not abort the batch; each run operates on its own layers so
// runs are safe to parallelize. Cancelling ctx stops the batch before the
// next event starts.
func processBatch(ctx context.Context, events []event, mode string, limit, concurrency int, rc config.RunConfig) error {
	if len(events) == 0 {
		zap.L().Info("batch: no runnable events found")
		return nil
	}

	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	zap.L().Info("batch: processing events",
		zap.Int("events", len(events)),
		zap.Int("concurrency", concurrency),
		zap.String("mode", mode),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, ev := range events {
		ev := ev
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log := zap.L().With(zap.String("event", ev.Name))

			result, err := runScenario(rc, mode, ev.Hazard, ev.Exposure)
			if err != nil {
				failed.Add(1)
				log.Error("batch: event failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			if err := writeOutputs(result, ev.Dir, cfg.Export.XLSX); err != nil {
				failed.Add(1)
				log.Error("batch: writing outputs failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			log.Info("batch: event complete",
				zap.String("run_id", result.RunID),
				zap.Int("groups", len(result.Stats.Groups)),
				zap.Float64("max_value", result.MaxValue),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch: processing")
	}

	zap.L().Info("batch: complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
