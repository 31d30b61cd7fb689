package middleware

import (
	"context"
	"errors"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/hook"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig defines the configuration for Prometheus metrics.
type MetricsConfig struct {
	Registerer prometheus.Registerer // Registry to register collectors with; nil uses prometheus.DefaultRegisterer
	Namespace  string                // Namespace for metrics
	Subsystem  string                // Subsystem for metrics
}

// Metrics holds the Prometheus collectors updated by the Counter callback.
type Metrics struct {
	calls *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them. Registering the same
// collectors twice on one registry reuses the existing ones.
func NewMetrics(config MetricsConfig) (*Metrics, error) {
	registerer := config.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Subsystem: config.Subsystem,
		Name:      "hook_calls_total",
		Help:      "Number of decorated method calls that reached their before-callback.",
	}, []string{"method"})

	if err := registerer.Register(calls); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		calls = existing
	}

	return &Metrics{calls: calls}, nil
}

// Calls returns the call counter for method.
func (m *Metrics) Calls(method string) prometheus.Counter {
	return m.calls.WithLabelValues(method)
}

// Counter creates a callback that counts calls of the named method
func Counter[S any](m *Metrics, method string) hook.BeforeFunc[S] {
	counter := m.Calls(method)
	return func(ctx context.Context, req *common.Request, caller S) error {
		counter.Inc()
		return nil
	}
}
