package importer

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var rowsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kassenbuch_import_rows_total",
		Help: "How many CSV rows were processed, partitioned by result.",
	},
	[]string{"result"},
)

var jobsProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kassenbuch_import_jobs_total",
		Help: "How many import jobs finished, partitioned by final status.",
	},
	[]string{"status"},
)

var metrics = []prometheus.Collector{
	rowsTotal,
	jobsProcessed,
}

// RegisterMetrics registers all import metrics with the default
// Prometheus registry.
func RegisterMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus", c)
		}
	}

	return nil
}

// UnregisterMetrics unregisters all import metrics.
//
// This is needed to cleanly exit.
func UnregisterMetrics() bool {
	for _, c := range metrics {
		if ok := prometheus.Unregister(c); !ok {
			return false
		}
	}

	return true
}
