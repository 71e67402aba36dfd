// Package usage accounts for generative AI requests made during a session.
// Counts live in memory only and are optionally exported as Prometheus
// collectors.
package usage

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
)

const namespace = "profiler"

type contextKey struct{}

// Tracker manages token usage recording.
type Tracker struct {
	mu      sync.Mutex
	stats   AggregatedStats
	metrics *metrics
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	tokens   *prometheus.CounterVec
}

// NewTracker creates a tracker. When reg is non-nil the tracker's
// collectors are registered on it.
func NewTracker(reg prometheus.Registerer) (*Tracker, error) {
	t := &Tracker{
		stats: AggregatedStats{
			ByModel:     make(map[string]TokenCounts),
			ByOperation: make(map[string]TokenCounts),
		},
	}
	if reg == nil {
		return t, nil
	}

	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Generative AI requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Generative AI request latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"operation"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_total",
			Help:      "Tokens consumed by operation and direction.",
		}, []string{"operation", "direction"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration, m.tokens} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	t.metrics = m
	return t, nil
}

// Track records a request. A nil tracker ignores the call.
func (t *Tracker) Track(ev Event) {
	if t == nil {
		return
	}
	if ev.Outcome == "" {
		ev.Outcome = OutcomeSuccess
	}

	t.mu.Lock()
	t.stats.Requests++
	if ev.Outcome != OutcomeSuccess {
		t.stats.Failures++
	}
	t.stats.Total.Add(ev.InputTokens, ev.OutputTokens)
	addToMap(t.stats.ByModel, ev.Model, ev.InputTokens, ev.OutputTokens)
	addToMap(t.stats.ByOperation, ev.Operation, ev.InputTokens, ev.OutputTokens)
	t.mu.Unlock()

	if m := t.metrics; m != nil {
		m.requests.WithLabelValues(ev.Operation, ev.Outcome).Inc()
		m.duration.WithLabelValues(ev.Operation).Observe(ev.Duration.Seconds())
		m.tokens.WithLabelValues(ev.Operation, "input").Add(float64(ev.InputTokens))
		m.tokens.WithLabelValues(ev.Operation, "output").Add(float64(ev.OutputTokens))
	}

	logging.Get(logging.CategoryUsage).Debug("tracked %s model=%s outcome=%s in=%d out=%d dur=%s",
		ev.Operation, ev.Model, ev.Outcome, ev.InputTokens, ev.OutputTokens, ev.Duration)
}

// Stats returns a copy of the aggregated stats.
func (t *Tracker) Stats() AggregatedStats {
	if t == nil {
		return AggregatedStats{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := t.stats
	stats.ByModel = copyTokenCountsMap(stats.ByModel)
	stats.ByOperation = copyTokenCountsMap(stats.ByOperation)
	return stats
}

func copyTokenCountsMap(src map[string]TokenCounts) map[string]TokenCounts {
	if src == nil {
		return nil
	}
	dst := make(map[string]TokenCounts, len(src))
	for key, counts := range src {
		dst[key] = counts
	}
	return dst
}

func addToMap(m map[string]TokenCounts, key string, input, output int) {
	entry := m[key]
	entry.Add(input, output)
	m[key] = entry
}

// Context Helpers

// NewContext returns a new context carrying the tracker.
func NewContext(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext retrieves the tracker from the context.
func FromContext(ctx context.Context) *Tracker {
	t, _ := ctx.Value(contextKey{}).(*Tracker)
	return t
}
