package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payroll"

// Payslip sources.
const (
	SourceCompute  = "compute"
	SourceEmployee = "employee"
	SourceRegister = "register"
)

var (
	PayslipsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payslips_generated_total",
		Help:      "Payslips computed, by source and outcome.",
	}, []string{"source", "status"})

	PunchesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_punches_skipped_total",
		Help:      "Attendance punches that could not be parsed or ended before they started.",
	})

	RegisterDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "register_generation_seconds",
		Help:      "Time spent generating a payroll register.",
		Buckets:   prometheus.DefBuckets,
	})
)

// ObservePayslip counts one payslip attempt.
func ObservePayslip(source string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	PayslipsGenerated.WithLabelValues(source, status).Inc()
}
