package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordToolCall("get_quote", "ok")
	r.RecordToolCall("get_quote", "ok")
	r.RecordToolCall("get_quote", "error")
	r.RecordUpstreamRequest("quote", 200, 0.1)
	r.RecordUpstreamRequest("quote", 0, 0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("get_quote", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("get_quote", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstreamRequests.WithLabelValues("quote", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstreamRequests.WithLabelValues("quote", "error")))
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
