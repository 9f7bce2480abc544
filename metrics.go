package main

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const METRICS_NAMESPACE = "sniffvlan"

// sessionMetrics are collected for one run and optionally written as a
// node_exporter textfile once the run is over.
type sessionMetrics struct {
	registry *prometheus.Registry

	packets       *prometheus.CounterVec
	captureErrors *prometheus.CounterVec
	vlanSeen      *prometheus.GaugeVec
	interfaces    prometheus.Gauge
}

func newSessionMetrics() *sessionMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &sessionMetrics{
		registry: reg,
		packets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "packets_total",
			Help:      "Tagged packets received per interface.",
		}, []string{"interface"}),
		captureErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "capture_errors_total",
			Help:      "Capture failures per interface and stage.",
		}, []string{"interface", "stage"}),
		vlanSeen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "vlan_seen",
			Help:      "Set to 1 for every VLAN observed on an interface.",
		}, []string{"interface", "vlan"}),
		interfaces: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: METRICS_NAMESPACE,
			Name:      "observed_interfaces",
			Help:      "Number of interfaces captured on.",
		}),
	}
}

// recordReport exports the final report as vlan_seen series.
func (m *sessionMetrics) recordReport(r *Report) {
	for name, ids := range r.Snapshot() {
		for _, id := range ids {
			m.vlanSeen.WithLabelValues(name, strconv.Itoa(int(id))).Set(1)
		}
	}
}

func (m *sessionMetrics) writeTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
