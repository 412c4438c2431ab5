package tpresult

import "github.com/prometheus/client_golang/prometheus"

// Metrics mirrors a Result's counters as process-local Prometheus gauges,
// for the optional `--metrics-addr` live-inspection surface of cmd/tplex.
// It never gates correctness: a solver run that never touches Metrics still
// produces a fully valid Result.
type Metrics struct {
	Iterations   prometheus.Gauge
	BasisChanges prometheus.Gauge
	FullPricings prometheus.Gauge
	ObjValue     prometheus.Gauge
	RunTime      prometheus.Gauge
}

// NewMetrics registers a fresh set of gauges on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tplex", Name: "iterations", Help: "Macro-iterations executed by the current run.",
		}),
		BasisChanges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tplex", Name: "basis_changes", Help: "Basis changes (pivots) executed by the current run.",
		}),
		FullPricings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tplex", Name: "full_pricings", Help: "Full-scan pricing passes executed by the current run.",
		}),
		ObjValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tplex", Name: "objective_value", Help: "Current objective value of the running basis.",
		}),
		RunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tplex", Name: "run_time_seconds", Help: "Wall-clock time elapsed in the current run.",
		}),
	}
	reg.MustRegister(m.Iterations, m.BasisChanges, m.FullPricings, m.ObjValue, m.RunTime)
	return m
}

// Update pushes r's counters into the gauges.
func (m *Metrics) Update(r *Result) {
	m.Iterations.Set(float64(r.Iterations))
	m.BasisChanges.Set(float64(r.BasisChanges))
	m.FullPricings.Set(float64(r.FullPricings))
	m.ObjValue.Set(r.ObjValue)
	m.RunTime.Set(r.RunTime)
}
