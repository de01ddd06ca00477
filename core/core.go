// Package core has the metrics ledger and the operations exposed as tools.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"go.uber.org/zap"
)

// Service composes the state store and the renderer into the tool operations.
// Each call is an independent load/mutate/store sequence; concurrent pushes can
// lose updates because nothing serializes them across calls.
type Service struct {
	store    contract.StateStore
	renderer contract.Renderer
	now      func() time.Time
	logger   *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for point timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger. zap.L() is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a Service. A nil renderer makes get_chart report that
// rendering is unavailable.
func NewService(store contract.StateStore, renderer contract.Renderer, opts ...Option) *Service {
	s := &Service{
		store:    store,
		renderer: renderer,
		now:      time.Now,
		logger:   zap.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push appends a point and persists the updated document.
func (s *Service) Push(ctx context.Context, value float64, label string) (schema.PushResult, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return schema.PushResult{}, fmt.Errorf("push: %w", err)
	}
	doc, point := Append(doc, value, label, s.now())
	if err := s.store.Store(ctx, doc); err != nil {
		return schema.PushResult{}, fmt.Errorf("push: %w", err)
	}
	s.logger.Debug("pushed metric point",
		zap.Float64("value", point.Value),
		zap.String("label", point.Label),
		zap.Int("total_points", len(doc.Metrics)))
	return schema.PushResult{Pushed: point, TotalPoints: len(doc.Metrics)}, nil
}

// GetMetrics returns every stored point with its count and last update time.
func (s *Service) GetMetrics(ctx context.Context) (schema.Snapshot, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return schema.Snapshot{}, fmt.Errorf("get metrics: %w", err)
	}
	return TakeSnapshot(doc), nil
}

// ReadDocument returns the stored document as served by the data://metrics resource.
func (s *Service) ReadDocument(ctx context.Context) (schema.MetricsDocument, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return schema.MetricsDocument{}, fmt.Errorf("read document: %w", err)
	}
	if doc.Metrics == nil {
		doc.Metrics = []schema.MetricPoint{}
	}
	return doc, nil
}

// GetChart renders the stored points. Missing data, missing rendering support
// and invalid options come back as a *schema.ToolError result; the error return
// is reserved for store failures.
func (s *Service) GetChart(ctx context.Context, opts schema.ChartOptions) (schema.ChartResult, error) {
	if err := ValidateChartOptions(opts); err != nil {
		return toolResult(err)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chart: %w", err)
	}
	if len(doc.Metrics) == 0 {
		return toolResult(contract.ErrNoData)
	}
	if s.renderer == nil {
		return toolResult(contract.ErrRendererUnavailable)
	}

	png, err := s.renderer.Render(ctx, doc.Metrics, opts)
	if err != nil {
		return toolResult(fmt.Errorf("get chart: %w", err))
	}
	s.logger.Debug("rendered chart",
		zap.String("title", opts.Title),
		zap.Int("points", len(doc.Metrics)),
		zap.Int("bytes", len(png)))
	return schema.ChartImage{PNG: png}, nil
}

// Clear replaces the stored document with an empty one without reading it first.
func (s *Service) Clear(ctx context.Context) (schema.ClearResult, error) {
	if err := s.store.Store(ctx, Reset()); err != nil {
		return schema.ClearResult{}, fmt.Errorf("clear: %w", err)
	}
	s.logger.Debug("cleared metrics document")
	return schema.ClearResult{Cleared: true}, nil
}

// ValidateChartOptions checks chart dimensions and title length.
func ValidateChartOptions(opts schema.ChartOptions) error {
	err := contract.Validator().Struct(opts)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &contract.InvalidInputError{
			Param:  fieldParam(fe.Field()),
			Reason: fmt.Sprintf("must satisfy %s=%s (received %v)", fe.Tag(), fe.Param(), fe.Value()),
		}
	}
	return &contract.InvalidInputError{Param: "chart options", Reason: err.Error()}
}

// fieldParam maps a ChartOptions field to its tool parameter name.
func fieldParam(field string) string {
	switch field {
	case "Title":
		return "title"
	case "Width":
		return "width"
	case "Height":
		return "height"
	default:
		return field
	}
}

// toolResult converts a recoverable error into a ToolError result.
func toolResult(err error) (schema.ChartResult, error) {
	if te, ok := contract.AsToolError(err); ok {
		return te, nil
	}
	return nil, err
}
