package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yatrik/yatrik/pkg/util"
)

type Options struct {
	StartDate   time.Time
	HorizonDays int

	// TripsPerRoutePerDay > 0 fixes the per-route trip count; 0 derives it
	// from the calendar policy.
	TripsPerRoutePerDay int

	StrictAssignment bool

	// DryRun plans the horizon without touching the trips collection.
	DryRun bool

	BatchSize      int
	MaxConcurrency int
}

// RunSummary reports what a scheduling run did. Soft failures accumulate
// here instead of aborting the run.
type RunSummary struct {
	TotalTripsPlanned  int
	TotalTripsInserted int

	PerBatchErrors []BatchError
	DepotsSkipped  []string
}

// Run executes one full scheduling pass: lock, load, plan, persist.
// Fatal prerequisite failures return before anything is deleted.
func Run(ctx context.Context, policyConfig PolicyConfig, options Options) (*RunSummary, error) {
	release, err := acquireRunLock(ctx, runLockTTL(options.HorizonDays))
	if err != nil {
		return nil, err
	}
	defer release()

	loadStart := time.Now()
	catalog, err := LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("routes", len(catalog.Routes)).
		Int("buses", len(catalog.Buses)).
		Int("drivers", len(catalog.Drivers)).
		Int("conductors", len(catalog.Conductors)).
		Int("depots", len(catalog.Depots)).
		Str("duration", time.Since(loadStart).String()).
		Msg("Loaded resource catalog")

	engine := NewEngine(NewCalendarPolicy(policyConfig), EngineConfig{
		TripsPerRoutePerDay: options.TripsPerRoutePerDay,
		StrictAssignment:    options.StrictAssignment,
	})

	plan, err := engine.PlanHorizon(ctx, catalog, options.StartDate, options.HorizonDays)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{
		TotalTripsPlanned: len(plan.Trips),
		DepotsSkipped:     plan.DepotsSkipped,
	}

	log.Info().
		Int("trips", summary.TotalTripsPlanned).
		Strs("depotsSkipped", summary.DepotsSkipped).
		Str("from", util.ISODate(options.StartDate)).
		Int("days", options.HorizonDays).
		Msg("Planned horizon")

	if options.DryRun {
		log.Info().Msg("Dry run, not persisting trips")
		return summary, nil
	}

	sink := NewSink(SinkConfig{
		BatchSize:      options.BatchSize,
		MaxConcurrency: options.MaxConcurrency,
	})

	inserted, batchErrors, err := sink.Replace(ctx, plan.Trips, options.StartDate, options.HorizonDays)
	if err != nil {
		return nil, err
	}

	summary.TotalTripsInserted = inserted
	summary.PerBatchErrors = batchErrors

	log.Info().
		Int("inserted", summary.TotalTripsInserted).
		Int("failedBatches", len(summary.PerBatchErrors)).
		Msg("Persisted horizon trips")

	return summary, nil
}

// runLockTTL scales with the horizon so a crashed run's lock expires on its
// own, but a long yearly run is not unlocked mid-flight.
func runLockTTL(horizonDays int) time.Duration {
	ttl := 10*time.Minute + time.Duration(horizonDays)*time.Minute

	if ttl > 2*time.Hour {
		ttl = 2 * time.Hour
	}

	return ttl
}
