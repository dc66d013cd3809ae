// Package pipeline orchestrates one load-normalize-aggregate invocation over
// a dataset category. Each invocation re-reads the source files and owns its
// record set; nothing is cached across invocations.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"aadhaarcli/internal/config"
	"aadhaarcli/internal/dataprocessing"
	"aadhaarcli/internal/errors"
	"aadhaarcli/internal/files"
	"aadhaarcli/internal/infrastructure"
	"aadhaarcli/internal/metrics"
	"aadhaarcli/pkg/contracts/domain"
)

// View selects the aggregation mode of a run.
type View string

const (
	// ViewDate produces the month-by-month time series.
	ViewDate View = "date"
	// ViewState produces the per-state breakdown.
	ViewState View = "state"
)

// Request describes one pipeline invocation. Empty filter strings mean "no
// filter"; that convention stops at this boundary, the aggregators receive
// typed optionals.
type Request struct {
	Category string `validate:"required"`
	View     View   `validate:"required,oneof=date state"`
	// State filters the date view to one canonical state.
	State string `validate:"omitempty,max=100"`
	// StartDate and EndDate bound the state view, ISO formatted, inclusive.
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

// Result is the outcome of one invocation. Exactly one of Series and
// Regions is set, matching the requested view. Meta always describes the
// full unfiltered dataset.
type Result struct {
	Category domain.Category
	View     View
	Series   *domain.TimeSeries
	Regions  *domain.RegionBreakdown
	Meta     domain.Metadata
}

// Pipeline runs analytics queries over the dataset directories below a
// configured data root. It is safe for concurrent use; invocations share no
// mutable state.
type Pipeline struct {
	paths     config.PathsConfig
	loader    *dataprocessing.Loader
	discovery *files.Discovery
	validate  *validator.Validate
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates a pipeline rooted at the configured data directory.
func New(paths config.PathsConfig, logger *slog.Logger, m *metrics.Metrics) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Pipeline{
		paths:     paths,
		loader:    dataprocessing.NewLoader(paths.DataDir, logger),
		discovery: files.NewDiscovery(paths.DataDir),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		metrics:   m,
		logger:    logger,
	}
}

// Datasets lists the dataset subdirectories available under the data root.
func (p *Pipeline) Datasets(ctx context.Context) ([]string, error) {
	datasets, err := p.discovery.ListDatasets()
	if err != nil {
		return nil, errors.NewStorageError("failed to list dataset directories", err)
	}
	return datasets, nil
}

// Run executes one invocation: resolve the category schema, load and
// normalize every source file, then aggregate for the requested view.
// Filters that match nothing yield empty aggregates, not errors.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	ctx = infrastructure.WithInvocationID(ctx, uuid.NewString())
	started := time.Now()

	if err := p.validate.Struct(req); err != nil {
		p.metrics.ObserveRun(req.Category, string(req.View), metrics.StatusInvalidRequest)
		return nil, errors.NewValidationError("invalid pipeline request", err)
	}

	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		p.metrics.ObserveRun(req.Category, string(req.View), metrics.StatusUnknownCategory)
		return nil, errors.NewUnknownCategoryError(req.Category)
	}

	schema, err := dataprocessing.SchemaFor(category)
	if err != nil {
		p.metrics.ObserveRun(string(category), string(req.View), metrics.StatusUnknownCategory)
		return nil, err
	}

	p.logger.InfoContext(ctx, "pipeline run started",
		slog.String("category", string(category)),
		slog.String("view", string(req.View)))

	loadStarted := time.Now()
	records, err := p.loader.Load(ctx, category.Dir(), schema)
	if err != nil {
		p.metrics.ObserveRun(string(category), string(req.View), metrics.StatusLoadFailed)
		return nil, err
	}
	p.metrics.ObserveLoad(string(category), len(records), time.Since(loadStarted))

	result := &Result{
		Category: category,
		View:     req.View,
		// Metadata comes from the full record set, before any filtering.
		Meta: dataprocessing.ComputeMetadata(records),
	}

	switch req.View {
	case ViewDate:
		series := dataprocessing.ByPeriod(schema, records, stateFilter(req.State))
		result.Series = &series
	case ViewState:
		start, err := parseBound(req.StartDate)
		if err != nil {
			p.metrics.ObserveRun(string(category), string(req.View), metrics.StatusInvalidRequest)
			return nil, err
		}
		end, err := parseBound(req.EndDate)
		if err != nil {
			p.metrics.ObserveRun(string(category), string(req.View), metrics.StatusInvalidRequest)
			return nil, err
		}
		breakdown := dataprocessing.ByRegion(schema, records, start, end)
		result.Regions = &breakdown
	}

	p.metrics.ObserveRun(string(category), string(req.View), metrics.StatusOK)
	p.logger.InfoContext(ctx, "pipeline run finished",
		slog.String("category", string(category)),
		slog.String("view", string(req.View)),
		slog.Int("record_count", len(records)),
		slog.Duration("elapsed", time.Since(started)))

	return result, nil
}

// stateFilter maps the boundary convention (empty string means no filter)
// to a typed optional, lowercasing the way the taxonomy does.
func stateFilter(s string) *string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	return &s
}

// parseBound parses an optional ISO date bound.
func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, errors.NewValidationError("invalid date bound", err).
			WithContext("value", s)
	}
	return &t, nil
}
