// Package telemetry holds the Prometheus instruments of the line-item engine.
package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeTimeout = "timeout"
	OutcomeInvalid = "invalid"
)

// Collection kinds used as the "kind" label.
const (
	KindLineItems = "line_items"
	KindTasks     = "tasks"
	KindExpenses  = "expenses"
)

// EngineMetrics records reorder and template activity. A nil *EngineMetrics
// is valid and records nothing.
type EngineMetrics struct {
	reorders          *prometheus.CounterVec
	reorderDuration   *prometheus.HistogramVec
	instantiations    prometheus.Counter
	templatesSaved    prometheus.Counter
	cachedCollections *prometheus.GaugeVec
}

// NewEngineMetrics creates the instruments and registers them with registerer
// (prometheus.DefaultRegisterer when nil).
func NewEngineMetrics(registerer prometheus.Registerer) *EngineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &EngineMetrics{
		reorders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Name:      "reorders_total",
			Help:      "Reorder requests by collection kind and outcome.",
		}, []string{"kind", "outcome"}),
		reorderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "backoffice",
			Name:      "reorder_duration_seconds",
			Help:      "Time from optimistic apply to persistence outcome.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		instantiations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "backoffice",
			Name:      "template_instantiations_total",
			Help:      "Line items created from templates.",
		}),
		templatesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "backoffice",
			Name:      "templates_created_total",
			Help:      "Templates saved from line items or created directly.",
		}),
		cachedCollections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "backoffice",
			Name:      "cached_collections",
			Help:      "Collections currently held in memory.",
		}, []string{"kind"}),
	}

	registerer.MustRegister(m.reorders, m.reorderDuration, m.instantiations, m.templatesSaved, m.cachedCollections)
	return m
}

// ObserveReorder records one reorder attempt.
func (m *EngineMetrics) ObserveReorder(kind string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.reorders.WithLabelValues(kind, ClassifyReorderOutcome(err)).Inc()
	m.reorderDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *EngineMetrics) IncInstantiations() {
	if m == nil {
		return
	}
	m.instantiations.Inc()
}

func (m *EngineMetrics) IncTemplatesSaved() {
	if m == nil {
		return
	}
	m.templatesSaved.Inc()
}

// SetCachedCollections reports how many collections of kind are loaded.
func (m *EngineMetrics) SetCachedCollections(kind string, n int) {
	if m == nil {
		return
	}
	m.cachedCollections.WithLabelValues(kind).Set(float64(n))
}

// ClassifyReorderOutcome maps a reorder result to the outcome label.
func ClassifyReorderOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, apperrors.ErrReorderFailed):
		return OutcomeFailed
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
		return OutcomeInvalid
	default:
		return OutcomeFailed
	}
}
