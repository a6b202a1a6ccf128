package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.VoteCast("approve")
	m.VoteCast("approve")
	m.VoteCast("reject")
	m.Transition("approved")
	m.TransactionCreated("deposit")
	m.ObserveRPC("/groupwallet.v1.GroupService/GetGroup", "ok", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.votes.WithLabelValues("approve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.votes.WithLabelValues("reject")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactions.WithLabelValues("deposit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.rpcRequests.WithLabelValues("/groupwallet.v1.GroupService/GetGroup", "ok")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.VoteCast("approve")
		m.Transition("paid")
		m.TransactionCreated("withdrawal")
		m.ObserveRPC("p", "ok", time.Second)
		m.LockWaited(time.Millisecond)
	})
	assert.Nil(t, m.Registry())
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Transition("paid")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `groupwallet_transaction_transitions_total{status="paid"} 1`), body)
}
