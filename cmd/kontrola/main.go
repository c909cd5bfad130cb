// Command kontrola regenerates the fleet maintenance-obligation report:
// it merges the dispatch-application obligation export with the fleet
// portal's mileage export, categorizes every obligation, carries manual
// notes over from the previous report, and writes one workbook with a
// table per category.
package main

import (
	"context"
	"log"
	"time"

	"kontrola/internal/config"
	"kontrola/internal/metrics"
	"kontrola/internal/metrics/prompush"
	"kontrola/internal/pipeline"
)

func main() {
	cfg := config.Load()

	switch cfg.MetricsBackend {
	case "pushgateway":
		b, err := prompush.NewBackend(cfg.Job, cfg.PushgatewayURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v backend=%v job=%v", cfg.PushgatewayURL, cfg.MetricsBackend, cfg.Job)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}
	case "", "none":
		if cfg.Verbose {
			log.Printf("metrics: disabled (backend=%q)", cfg.MetricsBackend)
		}
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", cfg.MetricsBackend)
	}

	ctx := context.Background()
	start := time.Now()

	if cfg.Verbose {
		log.Printf("pipeline: obligations=%s mileage=%s prior=%s output=%s sink=%s",
			cfg.ObligationsXLSX, cfg.MileageXLSX, cfg.PriorReport, cfg.Output, cfg.SinkDriver)
	}

	if err := pipeline.Run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.Verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}
