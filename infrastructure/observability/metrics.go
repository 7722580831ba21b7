package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointdesk_http_requests_total",
		Help: "HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pointdesk_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	settlementGames = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointdesk_settlement_games_total",
		Help: "Settlement outcomes per game",
	}, []string{"outcome"})

	settlementRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pointdesk_settlement_runs_total",
		Help: "Completed settlement runs",
	})

	settlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pointdesk_settlement_run_duration_seconds",
		Help:    "Settlement run latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	settlementPayouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pointdesk_settlement_payout_points_total",
		Help: "Points paid out by settlement",
	})

	ledgerDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pointdesk_ledger_decisions_total",
		Help: "Ledger entry approval decisions",
	}, []string{"decision"})
)

// RecordHTTPRequest records one handled HTTP request
func RecordHTTPRequest(method, path, status string, started time.Time) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(time.Since(started).Seconds())
}

// RecordSettlementRun records the outcome counters of one settlement run
func RecordSettlementRun(settled, skipped, errored int, totalPayout int64, started time.Time) {
	settlementRuns.Inc()
	settlementGames.WithLabelValues("settled").Add(float64(settled))
	settlementGames.WithLabelValues("skipped").Add(float64(skipped))
	settlementGames.WithLabelValues("errored").Add(float64(errored))
	settlementPayouts.Add(float64(totalPayout))
	settlementDuration.Observe(time.Since(started).Seconds())
}

// RecordLedgerDecision records one approve or reject decision
func RecordLedgerDecision(decision string) {
	ledgerDecisions.WithLabelValues(decision).Inc()
}
