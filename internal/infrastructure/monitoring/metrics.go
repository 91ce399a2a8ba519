package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	AccountsCreatedTotal   prometheus.Counter
	PaymentsRecordedTotal  prometheus.Counter
	RolloverCyclesTotal    prometheus.Counter
	RolloverAccountsTotal  prometheus.Counter
	ReportsGeneratedTotal  *prometheus.CounterVec
	RolloverSweepDuration  prometheus.Histogram
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "isp_ledger_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		AccountsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "isp_ledger_accounts_created_total",
				Help: "Total number of customer accounts created.",
			},
		),
		PaymentsRecordedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "isp_ledger_payments_recorded_total",
				Help: "Total number of payments recorded in the ledger.",
			},
		),
		RolloverCyclesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "isp_ledger_rollover_cycles_total",
				Help: "Total number of billing cycles accrued by the rollover sweep.",
			},
		),
		RolloverAccountsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "isp_ledger_rollover_accounts_total",
				Help: "Total number of accounts advanced by the rollover sweep.",
			},
		),
		ReportsGeneratedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "isp_ledger_reports_generated_total",
				Help: "Total number of PDF reports generated.",
			},
			[]string{"kind"},
		),
		RolloverSweepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "isp_ledger_rollover_sweep_duration_seconds",
				Help:    "Histogram of full rollover sweep durations.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordPaymentRecorded() {
	Business.PaymentsRecordedTotal.Inc()
}

func RecordAccountCreated() {
	Business.AccountsCreatedTotal.Inc()
}

func RecordRollover(cycles int) {
	Business.RolloverAccountsTotal.Inc()
	Business.RolloverCyclesTotal.Add(float64(cycles))
}

func RecordReportGenerated(kind string) {
	Business.ReportsGeneratedTotal.WithLabelValues(kind).Inc()
}
