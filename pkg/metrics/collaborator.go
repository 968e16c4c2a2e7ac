package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CollaboratorMetrics records outcome counts and latencies for the
// generative AI calls. "fallback" covers every absorbed failure:
// missing credential, transport error, or an empty response.
type CollaboratorMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	fallback *prometheus.CounterVec
}

// NewCollaboratorMetrics registers the collaborator metrics on the provided registerer.
func NewCollaboratorMetrics(reg prometheus.Registerer) *CollaboratorMetrics {
	if reg == nil {
		return &CollaboratorMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collaborator_call_duration_seconds",
		Help:    "Duration of generative AI collaborator calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"collaborator"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collaborator_call_success",
		Help: "Collaborator calls that produced a usable result.",
	}, []string{"collaborator"})
	fallback := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collaborator_call_fallback",
		Help: "Collaborator calls resolved with the fallback or no-result outcome.",
	}, []string{"collaborator"})
	reg.MustRegister(duration, success, fallback)
	return &CollaboratorMetrics{
		duration: duration,
		success:  success,
		fallback: fallback,
	}
}

// ObserveDuration records the duration for the named collaborator.
func (c *CollaboratorMetrics) ObserveDuration(collaborator string, elapsed time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(collaborator)).Observe(elapsed.Seconds())
}

// IncSuccess increments the success counter for the named collaborator.
func (c *CollaboratorMetrics) IncSuccess(collaborator string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(collaborator)).Inc()
}

// IncFallback increments the fallback counter for the named collaborator.
func (c *CollaboratorMetrics) IncFallback(collaborator string) {
	if c == nil || c.fallback == nil {
		return
	}
	c.fallback.WithLabelValues(normalizeLabel(collaborator)).Inc()
}
