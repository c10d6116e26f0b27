package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"depman/internal/events"
	"depman/pkg/logging"
)

// Command outcomes used as the "outcome" label.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// Metrics collects counters for one depman process. It implements
// events.Sink, so it can be placed next to the output sink in an
// events.Fanout and observe every notification.
type Metrics struct {
	registry *prometheus.Registry

	commandsTotal       *prometheus.CounterVec
	notificationsTotal  *prometheus.CounterVec
	installedComponents prometheus.Gauge
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depman_commands_total",
				Help: "Number of commands processed by keyword and outcome.",
			},
			[]string{"keyword", "outcome"},
		),
		notificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depman_notifications_total",
				Help: "Number of notifications emitted by reason.",
			},
			[]string{"reason"},
		),
		installedComponents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "depman_installed_components",
				Help: "Number of components currently installed.",
			},
		),
	}

	m.registry.MustRegister(
		m.commandsTotal,
		m.notificationsTotal,
		m.installedComponents,
	)
	return m
}

// Registry returns the registry holding depman's collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Emit counts a notification and tracks the installed gauge.
func (m *Metrics) Emit(e events.Event) {
	m.notificationsTotal.WithLabelValues(string(e.Reason)).Inc()
	switch e.Reason {
	case events.ReasonComponentInstalling:
		m.installedComponents.Inc()
	case events.ReasonComponentRemoving:
		m.installedComponents.Dec()
	}
}

// ObserveCommand counts one processed command. A non-nil err counts it as rejected.
func (m *Metrics) ObserveCommand(keyword string, err error) {
	outcome := OutcomeApplied
	if err != nil {
		outcome = OutcomeRejected
	}
	if keyword == "" {
		keyword = "unknown"
	}
	m.commandsTotal.WithLabelValues(keyword, outcome).Inc()
}

// Reset clears all collected values, used when a watched script is re-run
// on a fresh graph.
func (m *Metrics) Reset() {
	m.commandsTotal.Reset()
	m.notificationsTotal.Reset()
	m.installedComponents.Set(0)
}

// WriteTextfile writes the current values in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return err
	}
	logging.Info("Metrics", "Wrote metrics to %s", path)
	return nil
}
