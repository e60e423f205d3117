package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokedex",
		Subsystem: "etl",
		Name:      "records_total",
		Help:      "Records processed by pipeline stage.",
	}, []string{"stage"})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokedex",
		Subsystem: "etl",
		Name:      "runs_total",
		Help:      "Pipeline runs by outcome.",
	}, []string{"outcome"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pokedex",
		Subsystem: "etl",
		Name:      "run_duration_seconds",
		Help:      "Duration of successful pipeline runs.",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
	})
)

// Source yields raw creature records.
type Source interface {
	Extract(ctx context.Context, limit int) ([]*entity.PokemonDetail, error)
}

// Sink persists a validated dataset and reports how many creatures it wrote.
type Sink interface {
	Load(ctx context.Context, ds *Dataset) (int, error)
}

// Metrics summarizes one pipeline run.
type Metrics struct {
	Extracted   int
	Transformed int
	Loaded      int
	Duration    time.Duration
}

// Pipeline runs extract, transform and load in sequence.
type Pipeline struct {
	source Source
	sink   Sink
}

func NewPipeline(source Source, sink Sink) *Pipeline {
	return &Pipeline{source: source, sink: sink}
}

// Run executes the full pipeline for up to limit creatures. Any stage failure
// aborts the run; a transform failure wraps ErrSchemaValidation.
func (p *Pipeline) Run(ctx context.Context, limit int) (*Metrics, error) {
	ctx = logger.WithCorrelationID(ctx, logger.NewCorrelationID())
	logger.CtxInfo(ctx, "[Pipeline] initializing ETL pipeline with limit=%d", limit)
	start := time.Now()
	m := &Metrics{}

	records, err := p.source.Extract(ctx, limit)
	if err != nil {
		return p.fail(ctx, m, "extract", err)
	}
	m.Extracted = len(records)
	recordsTotal.WithLabelValues("extracted").Add(float64(m.Extracted))

	ds, err := Transform(records)
	if err != nil {
		return p.fail(ctx, m, "transform", err)
	}
	m.Transformed = len(ds.Pokemon)
	recordsTotal.WithLabelValues("transformed").Add(float64(m.Transformed))

	loaded, err := p.sink.Load(ctx, ds)
	if err != nil {
		return p.fail(ctx, m, "load", err)
	}
	m.Loaded = loaded
	recordsTotal.WithLabelValues("loaded").Add(float64(m.Loaded))

	m.Duration = time.Since(start)
	runDuration.Observe(m.Duration.Seconds())
	runsTotal.WithLabelValues("success").Inc()
	logger.CtxInfo(ctx, "[Pipeline] ETL pipeline completed in %.2f seconds (extracted=%d, transformed=%d, loaded=%d)",
		m.Duration.Seconds(), m.Extracted, m.Transformed, m.Loaded)
	return m, nil
}

func (p *Pipeline) fail(ctx context.Context, m *Metrics, stage string, err error) (*Metrics, error) {
	runsTotal.WithLabelValues("failure").Inc()
	logger.CtxError(ctx, "[Pipeline] ETL pipeline failed at %s: %v", stage, err)
	return m, fmt.Errorf("%s: %w", stage, err)
}
