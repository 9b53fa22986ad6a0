package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckAllHealthy(t *testing.T) {
	provider := &fakeEmbeddingProvider{}
	index := &fakeIndexClient{healthy: true}

	svc := NewHealthService(provider, index, true, true)
	res := svc.Check(context.Background())

	assert.Equal(t, "ok", res.Status)
	assert.True(t, res.Overall)
	require.Contains(t, res.Services, "embedding_backend")
	require.Contains(t, res.Services, "vector_backend")
	assert.True(t, res.Services["embedding_backend"].Healthy)
	assert.True(t, res.Services["vector_backend"].Healthy)
}

func TestHealthCheckDegradedWhenIndexDown(t *testing.T) {
	provider := &fakeEmbeddingProvider{}
	index := &fakeIndexClient{healthy: false}

	svc := NewHealthService(provider, index, true, true)
	res := svc.Check(context.Background())

	assert.Equal(t, "degraded", res.Status)
	assert.False(t, res.Overall)
	assert.True(t, res.Services["embedding_backend"].Healthy)
	assert.False(t, res.Services["vector_backend"].Healthy)
}

func TestHealthCheckDegradedWhenProviderDown(t *testing.T) {
	provider := &fakeEmbeddingProvider{err: assert.AnError}
	index := &fakeIndexClient{healthy: true}

	svc := NewHealthService(provider, index, true, true)
	res := svc.Check(context.Background())

	assert.Equal(t, "degraded", res.Status)
	assert.False(t, res.Overall)
	assert.False(t, res.Services["embedding_backend"].Healthy)
}

func TestHealthCheckUnconfiguredBackendNotProbed(t *testing.T) {
	provider := &fakeEmbeddingProvider{err: assert.AnError}
	index := &fakeIndexClient{healthy: false}

	// Neither backend is configured, so neither down state degrades the
	// service.
	svc := NewHealthService(provider, index, false, false)
	res := svc.Check(context.Background())

	assert.Equal(t, "ok", res.Status)
	assert.False(t, res.Overall, "unprobed backends cannot claim overall health")
	assert.False(t, res.Services["embedding_backend"].Configured)
	assert.False(t, res.Services["vector_backend"].Configured)
	assert.False(t, res.Services["embedding_backend"].Healthy)
	assert.False(t, res.Services["vector_backend"].Healthy)
	assert.Zero(t, index.queryCount)
}
