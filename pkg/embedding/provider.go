package embedding

import "context"

// Task types passed to providers that distinguish document vs query vectors.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Result is one generated embedding with its processing metrics.
type Result struct {
	Values     []float32
	Dimension  int
	TokenCount int
}

// Provider defines the interface for generating text embeddings.
// Implementations must bound every request with a timeout and tag failures
// via apperrors.ServiceError so callers can tell retryable conditions apart.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) (*Result, error)
	ModelName() string
	Healthy(ctx context.Context) bool
}
