package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncTransferExecuted(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncTransferExecuted(3, 2, 1)
	m.IncTransferExecuted(1, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransfersExecuted))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.RecordsCarried))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsDropped.WithLabelValues("out_of_range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsDropped.WithLabelValues("collision")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncTransferExecuted(1, 1, 1)
		m.IncTransferRejected("conflict")
		m.IncGridCache("hit")
	})
}
