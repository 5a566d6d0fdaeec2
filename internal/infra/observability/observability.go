// Package observability provides lightweight in-process tracing and
// Prometheus metrics for the scheduling pipeline. It follows the teacher's
// pattern of a hand-rolled ring-buffer Tracer (no external OTel SDK) plus
// promauto-registered collectors, adapted from forecast/compliance/optimizer
// concerns instead of distributed-scheduler ones. HTTP exposition (promhttp)
// is not wired: metrics are read back via Snapshot for CLI output, since
// serving endpoints is out of scope.
package observability

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Trace Spans ─────────────────────────────────────────────────────────

// SpanStatus indicates success/failure.
type SpanStatus int

const (
	SpanOK SpanStatus = iota
	SpanError
)

// Span represents one stage of a pipeline run (forecast, compliance check,
// solve, apply, publish...).
type Span struct {
	TraceID   string
	SpanID    string
	Operation string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Status    SpanStatus
	Attrs     map[string]string
}

// Tracer stores recent spans in a ring buffer for inspection. In production
// this would wrap a real OTel SDK; here it is enough to answer "what did the
// pipeline do and how long did each stage take".
type Tracer struct {
	mu       sync.Mutex
	spans    []Span
	maxSpans int
	enabled  bool
}

// TracerConfig configures the tracer.
type TracerConfig struct {
	Enabled  bool
	MaxSpans int
}

// DefaultTracerConfig returns production defaults.
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{Enabled: true, MaxSpans: 1000}
}

// NewTracer creates a new tracer.
func NewTracer(cfg TracerConfig) *Tracer {
	return &Tracer{
		spans:    make([]Span, 0, cfg.MaxSpans),
		maxSpans: cfg.MaxSpans,
		enabled:  cfg.Enabled,
	}
}

// StartSpan begins a new span with the given operation name.
func (t *Tracer) StartSpan(ctx context.Context, operation string, attrs map[string]string) *Span {
	if !t.enabled {
		return &Span{Operation: operation}
	}
	return &Span{
		TraceID:   traceIDFromContext(ctx),
		SpanID:    generateID(),
		Operation: operation,
		StartTime: time.Now(),
		Status:    SpanOK,
		Attrs:     attrs,
	}
}

// EndSpan completes a span and records it.
func (t *Tracer) EndSpan(span *Span, err error) {
	if !t.enabled || span == nil {
		return
	}
	span.EndTime = time.Now()
	span.Duration = span.EndTime.Sub(span.StartTime)
	if err != nil {
		span.Status = SpanError
		if span.Attrs == nil {
			span.Attrs = make(map[string]string)
		}
		span.Attrs["error"] = err.Error()
		TraceErrors.Inc()
	}
	TracesRecorded.Inc()

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.spans) >= t.maxSpans {
		t.spans = t.spans[1:]
	}
	t.spans = append(t.spans, *span)
}

// Spans returns a copy of the most recent limit spans (0 = all).
func (t *Tracer) Spans(limit int) []Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	if limit <= 0 || limit > len(t.spans) {
		limit = len(t.spans)
	}
	start := len(t.spans) - limit
	out := make([]Span, limit)
	copy(out, t.spans[start:])
	return out
}

type contextKey string

const traceIDKey contextKey = "scheduler-trace-id"

// WithTraceID returns a context carrying the given trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

func traceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return generateID()
}

var spanCounter atomic.Int64

func generateID() string {
	n := spanCounter.Add(1)
	return fmt.Sprintf("%s-%d", time.Now().Format("20060102150405"), n)
}

// ─── Prometheus Metrics ──────────────────────────────────────────────────

// ForecastsGenerated counts forecast runs by method (§4.2).
var ForecastsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Subsystem: "forecast",
	Name:      "generated_total",
	Help:      "Total forecast batches generated, by method.",
}, []string{"method"})

// ComplianceViolations counts rule violations by code and severity (§4.3).
var ComplianceViolations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Subsystem: "compliance",
	Name:      "violations_total",
	Help:      "Total compliance findings by rule code and severity.",
}, []string{"code", "severity"})

// OptimizerSolves counts solver runs by terminal status (§4.4).
var OptimizerSolves = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Subsystem: "optimizer",
	Name:      "solves_total",
	Help:      "Total optimizer solves by terminal status.",
}, []string{"status"})

// OptimizerSolveDuration tracks solver wall-clock time.
var OptimizerSolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Subsystem: "optimizer",
	Name:      "solve_duration_seconds",
	Help:      "Optimizer solve duration in seconds.",
	Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
})

// SchedulesPublished counts publish operations (§4.5).
var SchedulesPublished = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Subsystem: "lifecycle",
	Name:      "schedules_published_total",
	Help:      "Total schedules transitioned to published.",
})

// CalloutsRecorded counts call-out events.
var CalloutsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Subsystem: "lifecycle",
	Name:      "callouts_total",
	Help:      "Total shifts marked called_out.",
})

// SwapsByStatus counts swap-state transitions.
var SwapsByStatus = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Subsystem: "lifecycle",
	Name:      "swaps_total",
	Help:      "Total swap state transitions, by resulting status.",
}, []string{"status"})

// TracesRecorded counts every span recorded across all tracers.
var TracesRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Subsystem: "traces",
	Name:      "spans_recorded_total",
	Help:      "Total trace spans recorded.",
})

// TraceErrors counts error-status spans.
var TraceErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Subsystem: "traces",
	Name:      "error_spans_total",
	Help:      "Total trace spans with error status.",
})
