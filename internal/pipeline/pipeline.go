// Package pipeline wires the stages together: ingest and mileage-index
// construction (concurrent, they share nothing), classification,
// per-bucket dedup, due evaluation, note carry-forward, report assembly,
// and finally the mileage hand-off to the sink.
//
// All intermediate state lives in an explicit Context value threaded
// through the stages; nothing is accumulated in package globals. The
// report assembler is the only writer of the workbook and runs strictly
// after every bucket is evaluated.
package pipeline

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"kontrola/internal/classify"
	"kontrola/internal/config"
	"kontrola/internal/domain"
	"kontrola/internal/due"
	"kontrola/internal/ingest"
	"kontrola/internal/listify"
	"kontrola/internal/metrics"
	"kontrola/internal/mileage"
	"kontrola/internal/notes"
	"kontrola/internal/report"
	"kontrola/internal/sink"
)

// Context carries the pipeline state from stage to stage.
type Context struct {
	Records map[string][]domain.MaintenanceRecord
	Index   mileage.Index // nil when the stage degraded
	Rows    map[domain.Bucket][]domain.Row
}

// Run executes the whole pipeline. Only a missing or column-less
// obligation export is fatal; the mileage stages degrade and the sink
// failure is reported without invalidating the written report.
func Run(ctx context.Context, cfg *config.Config) error {
	pc := &Context{}

	// Stages 1 and 2 have no data dependency on each other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		records, err := ingest.ReadExport(cfg.ObligationsXLSX)
		metrics.RecordStep(cfg.Job, "ingest", err, time.Since(start))
		if err != nil {
			return err
		}
		n := 0
		for _, recs := range records {
			n += len(recs)
		}
		metrics.RecordRows(cfg.Job, "ingested", int64(n))
		log.Printf("ingest: vehicles=%d records=%d", len(records), n)
		pc.Records = records
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		pc.Index = buildIndex(gctx, cfg)
		metrics.RecordStep(cfg.Job, "mileage", nil, time.Since(start))
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// Classify and dedup.
	cls := classify.New(cfg.SpecialSPZList())
	flat := listify.FlattenAll(cls.Group(pc.Records))

	// Evaluate dues per bucket.
	pc.Rows = make(map[domain.Bucket][]domain.Row, len(domain.Buckets()))
	for _, b := range domain.Buckets() {
		rows := due.Evaluate(b, flat[b], pc.Index)
		pc.Rows[b] = rows
		metrics.RecordRows(cfg.Job, b.TableName(), int64(len(rows)))
	}

	// Carry notes forward from the previous report.
	prior, err := notes.ReadPrior(cfg.PriorReport)
	if err != nil {
		// A corrupt prior report costs the notes, not the run.
		log.Printf("notes: prior report unreadable, notes not carried: %v", err)
	}
	for _, b := range domain.Buckets() {
		prior.Attach(b, pc.Rows[b])
	}

	// Assemble the workbook.
	start := time.Now()
	err = report.Write(cfg.Output, pc.Rows)
	metrics.RecordStep(cfg.Job, "report", err, time.Since(start))
	if err != nil {
		return err
	}
	log.Printf("report: written to %s", cfg.Output)

	// Hand the mileage snapshot off for persistence.
	if err := handoff(ctx, cfg, pc.Index); err != nil {
		log.Printf("sink: hand-off failed (report already written): %v", err)
	}
	return nil
}

// buildIndex runs the time-accuracy gate and loads the portal export.
// Every failure path returns a nil index: downstream falls back to
// unresolved display rather than trusting stale data.
func buildIndex(ctx context.Context, cfg *config.Config) mileage.Index {
	if cfg.MileageXLSX == "" {
		log.Printf("mileage: no export configured; index unavailable")
		return nil
	}
	if cfg.TimeURL == "" {
		log.Printf("mileage: time gate unconfigured; index unavailable")
		return nil
	}
	gate := &mileage.Gate{
		URL:       cfg.TimeURL,
		Tolerance: time.Duration(cfg.TimeToleranceSec) * time.Second,
	}
	ok, err := gate.Check(ctx)
	if err != nil {
		log.Printf("mileage: time gate: %v; index unavailable", err)
		return nil
	}
	if !ok {
		log.Printf("mileage: local clock outside tolerance; index unavailable")
		return nil
	}
	ix, err := mileage.ReadExport(cfg.MileageXLSX)
	if err != nil {
		log.Printf("mileage: %v; index unavailable", err)
		return nil
	}
	log.Printf("mileage: index built, vehicles=%d", len(ix))
	return ix
}

// handoff persists the freshest vehicle→km snapshot: the portal index when
// available, otherwise the secondary fleet export.
func handoff(ctx context.Context, cfg *config.Config, ix mileage.Index) error {
	s, err := sink.New(ctx, cfg.SinkDriver, cfg.SinkDSN)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	defer s.Close(ctx)

	snapshot := ix
	if snapshot == nil && cfg.FleetXLSX != "" {
		snapshot, err = mileage.ReadFleetSnapshot(cfg.FleetXLSX)
		if err != nil {
			return err
		}
	}
	if snapshot == nil {
		log.Printf("sink: no mileage snapshot available; nothing to hand off")
		return nil
	}
	if err := s.Save(ctx, snapshot); err != nil {
		return err
	}
	log.Printf("sink: handed off %d vehicles via %s", len(snapshot), cfg.SinkDriver)
	return nil
}
