package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRun("enrolment", "date", StatusOK)
	m.ObserveRun("enrolment", "date", StatusOK)
	m.ObserveRun("biometric", "state", StatusLoadFailed)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.PipelineRuns.WithLabelValues("enrolment", "date", StatusOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.PipelineRuns.WithLabelValues("biometric", "state", StatusLoadFailed)))
}

func TestObserveLoad(t *testing.T) {
	m := NewNop()

	m.ObserveLoad("enrolment", 120, 50*time.Millisecond)
	m.ObserveLoad("enrolment", 30, 20*time.Millisecond)

	assert.Equal(t, float64(150), testutil.ToFloat64(
		m.RecordsLoaded.WithLabelValues("enrolment")))
}
