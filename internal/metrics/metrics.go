// Package metrics exposes Prometheus collectors for the RoomMate server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "roommate"

// Metrics holds the server's collectors. A nil *Metrics records nothing,
// so services can run without a registry.
type Metrics struct {
	rpcRequests     *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	expensesCreated *prometheus.CounterVec
	expenseFailures *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPCs handled, by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		expensesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_created_total",
			Help:      "Expenses recorded, by kind (solo or shared).",
		}, []string{"kind"}),
		expenseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expense_create_failures_total",
			Help:      "Expense creations rejected or failed, by reason.",
		}, []string{"reason"}),
	}
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(seconds)
}

// ExpenseCreated counts a committed expense.
func (m *Metrics) ExpenseCreated(shared bool) {
	if m == nil {
		return
	}
	kind := "solo"
	if shared {
		kind = "shared"
	}
	m.expensesCreated.WithLabelValues(kind).Inc()
}

// ExpenseFailed counts an expense that was not recorded.
// reason is one of "forbidden", "invalid", "storage".
func (m *Metrics) ExpenseFailed(reason string) {
	if m == nil {
		return
	}
	m.expenseFailures.WithLabelValues(reason).Inc()
}
