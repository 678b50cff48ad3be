// Package metrics exposes Prometheus instrumentation for the intake flow.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics counts step transitions and submission outcomes.
type IntakeMetrics struct {
	advanceTotal    *prometheus.CounterVec
	navigationTotal *prometheus.CounterVec
	submissionTotal *prometheus.CounterVec
	detectionTotal  *prometheus.CounterVec
}

// NewIntakeMetrics registers the intake metric family. reg defaults to the
// global registerer.
func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		advanceTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notary",
			Subsystem: "intake",
			Name:      "advance_total",
			Help:      "Advance attempts by step and outcome",
		}, []string{"step", "outcome"}),
		navigationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notary",
			Subsystem: "intake",
			Name:      "navigation_total",
			Help:      "Jump/resolve requests by outcome",
		}, []string{"outcome"}),
		submissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notary",
			Subsystem: "intake",
			Name:      "submission_total",
			Help:      "Intake submissions by outcome",
		}, []string{"outcome"}),
		detectionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notary",
			Subsystem: "tz",
			Name:      "detection_total",
			Help:      "Timezone detections by resolved label",
		}, []string{"label"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.advanceTotal, m.navigationTotal, m.submissionTotal, m.detectionTotal)
	return m
}

// ObserveAdvance records one Advance attempt.
func (m *IntakeMetrics) ObserveAdvance(step string, blocked bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if blocked {
		outcome = "blocked"
	}
	m.advanceTotal.WithLabelValues(step, outcome).Inc()
}

// ObserveNavigation records one jump/resolve request.
func (m *IntakeMetrics) ObserveNavigation(allowed bool) {
	if m == nil {
		return
	}
	outcome := "allowed"
	if !allowed {
		outcome = "redirected"
	}
	m.navigationTotal.WithLabelValues(outcome).Inc()
}

// ObserveSubmission records one submission outcome.
func (m *IntakeMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionTotal.WithLabelValues(outcome).Inc()
}

// ObserveDetection records one timezone detection result.
func (m *IntakeMetrics) ObserveDetection(label string) {
	if m == nil {
		return
	}
	m.detectionTotal.WithLabelValues(label).Inc()
}
