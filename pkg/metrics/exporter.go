// Package metrics publishes supervisor counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psantana5/procwatch/pkg/runner"
)

// Exporter counts child spawns and exits per slot. It implements the
// supervisor Observer interface and serves its own registry, so tests and
// multiple instances never collide on global state.
type Exporter struct {
	registry *prometheus.Registry
	spawns   *prometheus.CounterVec
	exits    *prometheus.CounterVec
	live     prometheus.Gauge
}

// NewExporter creates an exporter with a private registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		spawns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procwatch_child_spawns_total",
				Help: "Total child spawn attempts per slot, including attempts that fail to start (reason spawn_error in procwatch_child_exits_total)",
			},
			[]string{"slot"},
		),
		exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procwatch_child_exits_total",
				Help: "Total child process exits per slot and reason",
			},
			[]string{"slot", "reason"},
		),
		live: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "procwatch_children_live",
				Help: "Number of currently live child processes",
			},
		),
	}

	startTime := time.Now()
	uptime := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "procwatch_uptime_seconds",
			Help: "Time since the supervisor started",
		},
		func() float64 { return time.Since(startTime).Seconds() },
	)

	e.registry.MustRegister(e.spawns, e.exits, e.live, uptime)
	return e
}

// Handler returns the /metrics HTTP handler for this exporter's registry.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// ChildStarted implements the supervisor Observer interface. It counts
// spawn attempts: a command that cannot start still increments the counter
// and is immediately balanced by a spawn_error exit.
func (e *Exporter) ChildStarted(slot string) {
	e.spawns.WithLabelValues(slot).Inc()
	e.live.Inc()
}

// ChildExited implements the supervisor Observer interface.
func (e *Exporter) ChildExited(slot string, status runner.Status) {
	e.live.Dec()
	e.exits.WithLabelValues(slot, string(status.Reason)).Inc()
}
