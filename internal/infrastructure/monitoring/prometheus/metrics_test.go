package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRun(6, 4, 3, 1, 2.5)
	m.ObserveRun(2, 2, 2, 0, 0.5)

	assert.Equal(t, 8.0, testutil.ToFloat64(m.subPathwaysGenerated))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.uniquePathways))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.selectedPathways))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emptyMasterPathways))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(1, 1, 1, 0, 0.1)
	})
}
