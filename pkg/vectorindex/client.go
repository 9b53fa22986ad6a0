package vectorindex

import "context"

// Match is one similarity hit. Score is cosine similarity in [-1, 1] for
// both backends (pgvector's `<=>` distance is converted; Pinecone indexes
// here are created with the cosine metric). Results are ordered descending
// by score; exact-tie order is whatever the backend returns.
type Match struct {
	Id       string
	Score    float64
	Metadata map[string]interface{}
}

// Client wraps a vector database. Upsert is idempotent per (namespace, id):
// a repeated call with the same id overwrites in place, so re-embedding never
// accumulates stale duplicates.
type Client interface {
	Upsert(ctx context.Context, namespace string, id string, values []float32, metadata map[string]interface{}) error
	Query(ctx context.Context, namespace string, values []float32, topK int) ([]Match, error)
	HealthCheck(ctx context.Context) bool
}
