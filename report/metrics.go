package report

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "benchmon"

// WriteMetrics dumps the results as gauges in the Prometheus text format, for
// node_exporter's textfile collector.
func (a *Aggregator) WriteMetrics(path string) error {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string) *prometheus.GaugeVec {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: prometheus.Labels{"run_id": a.RunID},
		}, []string{"case"})
		reg.MustRegister(g)
		return g
	}

	runtime := gauge("case_runtime_seconds", "Wall-clock runtime of the checker.")
	cpu := gauge("case_cpu_average_percent", "Average sampled CPU usage.")
	memory := gauge("case_memory_peak_megabytes", "Peak sampled resident memory.")
	threads := gauge("case_threads_max", "Maximum sampled thread count.")
	exit := gauge("case_exit_code", "Exit code of the checker.")
	failed := gauge("case_failed", "1 if the case could not be measured.")

	for _, r := range a.results {
		label := strconv.Itoa(r.CaseID)
		runtime.WithLabelValues(label).Set(r.RuntimeSeconds)
		cpu.WithLabelValues(label).Set(r.AvgCPU)
		memory.WithLabelValues(label).Set(r.PeakMemoryMB)
		threads.WithLabelValues(label).Set(float64(r.MaxThreads))
		exit.WithLabelValues(label).Set(float64(r.Metric.ExitCode))
		if r.Failed {
			failed.WithLabelValues(label).Set(1)
		} else {
			failed.WithLabelValues(label).Set(0)
		}
	}

	return prometheus.WriteToTextfile(path, reg)
}
