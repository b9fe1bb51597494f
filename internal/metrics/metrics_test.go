package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ExpenseCreated(true)
	m.ExpenseCreated(true)
	m.ExpenseCreated(false)
	m.ExpenseFailed("forbidden")
	m.ObserveRPC("/roommate.v1.ExpenseService/CreateExpense", "ok", 0.01)

	if got := testutil.ToFloat64(m.expensesCreated.WithLabelValues("shared")); got != 2 {
		t.Errorf("shared expenses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.expensesCreated.WithLabelValues("solo")); got != 1 {
		t.Errorf("solo expenses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.expenseFailures.WithLabelValues("forbidden")); got != 1 {
		t.Errorf("forbidden failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/roommate.v1.ExpenseService/CreateExpense", "ok")); got != 1 {
		t.Errorf("rpc requests = %v, want 1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ExpenseCreated(true)
	m.ExpenseFailed("storage")
	m.ObserveRPC("/x", "ok", 1)
}
