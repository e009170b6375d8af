package middleware

import (
	"context"
	"errors"

	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/aretw0/seedbed/pkg/observability"
	"github.com/aretw0/seedbed/pkg/ports"
)

const metricsComponent = "artifactstore"

type metricsMiddleware struct {
	next    ports.ArtifactStore
	metrics *observability.Metrics
}

// NewMetricsMiddleware counts store operations by outcome and records payload
// sizes. A miss on Get is counted as skipped, not as an error.
func NewMetricsMiddleware(m *observability.Metrics) Middleware {
	return func(next ports.ArtifactStore) ports.ArtifactStore {
		return &metricsMiddleware{next: next, metrics: m}
	}
}

func (m *metricsMiddleware) Put(ctx context.Context, key string, data []byte) error {
	err := m.next.Put(ctx, key, data)
	m.metrics.ObserveResult(metricsComponent, "put", err)
	if err == nil {
		m.metrics.ObserveBytes("put", len(data))
	}
	return err
}

func (m *metricsMiddleware) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := m.next.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrArtifactNotFound):
		m.metrics.Observe(metricsComponent, "get", observability.OutcomeSkipped)
	case err != nil:
		m.metrics.Observe(metricsComponent, "get", observability.OutcomeError)
	default:
		m.metrics.Observe(metricsComponent, "get", observability.OutcomeOK)
		m.metrics.ObserveBytes("get", len(data))
	}
	return data, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, key string) error {
	err := m.next.Delete(ctx, key)
	m.metrics.ObserveResult(metricsComponent, "delete", err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	keys, err := m.next.List(ctx)
	m.metrics.ObserveResult(metricsComponent, "list", err)
	return keys, err
}
