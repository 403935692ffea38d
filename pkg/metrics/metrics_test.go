package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	m := NewWithRegisterer("car-rental", prometheus.NewRegistry())

	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 10*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 20*time.Millisecond)

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201"))
	assert.Equal(t, float64(2), got)
}

func TestMetrics_ObserveDBQueryCountsErrors(t *testing.T) {
	m := NewWithRegisterer("car-rental", prometheus.NewRegistry())

	m.ObserveDBQuery("select", time.Millisecond, nil)
	m.ObserveDBQuery("select", time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("select")))
}
