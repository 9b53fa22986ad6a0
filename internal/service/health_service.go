package service

import (
	"context"
	"time"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/pkg/embedding"
	"ai-roadmap-be/pkg/vectorindex"
)

const healthCheckTimeout = 5 * time.Second

type IHealthService interface {
	// Check probes each external backend independently and reports the
	// outcome as data. A down backend never turns into an error here.
	Check(ctx context.Context) *dto.HealthResponse
}

type healthService struct {
	embeddingProvider   embedding.Provider
	indexClient         vectorindex.Client
	embeddingConfigured bool
	indexConfigured     bool
}

func NewHealthService(
	embeddingProvider embedding.Provider,
	indexClient vectorindex.Client,
	embeddingConfigured bool,
	indexConfigured bool,
) IHealthService {
	return &healthService{
		embeddingProvider:   embeddingProvider,
		indexClient:         indexClient,
		embeddingConfigured: embeddingConfigured,
		indexConfigured:     indexConfigured,
	}
}

func (hs *healthService) Check(ctx context.Context) *dto.HealthResponse {
	checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	embeddingHealth := dto.ServiceHealth{Configured: hs.embeddingConfigured}
	if hs.embeddingConfigured {
		embeddingHealth.Healthy = hs.embeddingProvider.Healthy(checkCtx)
	}

	indexHealth := dto.ServiceHealth{Configured: hs.indexConfigured}
	if hs.indexConfigured {
		indexHealth.Healthy = hs.indexClient.HealthCheck(checkCtx)
	}

	status := "ok"
	if (hs.embeddingConfigured && !embeddingHealth.Healthy) ||
		(hs.indexConfigured && !indexHealth.Healthy) {
		status = "degraded"
	}

	return &dto.HealthResponse{
		Status:  status,
		Overall: embeddingHealth.Healthy && indexHealth.Healthy,
		Services: map[string]dto.ServiceHealth{
			"embedding_backend": embeddingHealth,
			"vector_backend":    indexHealth,
		},
	}
}
