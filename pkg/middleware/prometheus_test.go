package middleware

import (
	"testing"

	"github.com/Suhaibinator/SHook/pkg/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewMetrics(MetricsConfig{Registerer: registry, Namespace: "test"})
	require.NoError(t, err)

	counter := Counter[*testService](m, "get")
	for range 3 {
		_, err := call(t, counter, request.New(nil))
		require.NoError(t, err)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.Calls("get")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Calls("list")))
	assert.Equal(t, 2, testutil.CollectAndCount(registry, "test_hook_calls_total"))
}

func TestNewMetricsReusesRegisteredCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	first, err := NewMetrics(MetricsConfig{Registerer: registry})
	require.NoError(t, err)
	second, err := NewMetrics(MetricsConfig{Registerer: registry})
	require.NoError(t, err)

	first.Calls("get").Inc()
	second.Calls("get").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(first.Calls("get")))
}

func TestNewMetricsConflict(t *testing.T) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hook_calls_total",
		Help: "conflicting collector",
	}))

	_, err := NewMetrics(MetricsConfig{Registerer: registry})
	assert.Error(t, err)
}
