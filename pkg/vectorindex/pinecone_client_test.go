package vectorindex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-roadmap-be/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *PineconeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPineconeClient("test-key", srv.URL, 5*time.Second).(*PineconeClient)
}

func TestPineconeUpsertSendsNamespaceAndId(t *testing.T) {
	var got pineconeUpsertRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vectors/upsert", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"upsertedCount":1}`))
	})

	err := c.Upsert(context.Background(), "course-embeddings", "course_abc",
		[]float32{0.1, 0.2}, map[string]interface{}{"kind": "course", "published": true})
	require.NoError(t, err)

	assert.Equal(t, "course-embeddings", got.Namespace)
	require.Len(t, got.Vectors, 1)
	assert.Equal(t, "course_abc", got.Vectors[0].Id)
	assert.Equal(t, "course", got.Vectors[0].Metadata["kind"])
}

func TestPineconeUpsertEmptyVectorRejected(t *testing.T) {
	c := NewPineconeClient("k", "http://unused", time.Second)

	err := c.Upsert(context.Background(), "ns", "id", nil, nil)
	require.Error(t, err)
	assert.False(t, apperrors.IsRetryable(err))
}

func TestPineconeQueryPreservesMatchOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		w.Write([]byte(`{"matches":[
			{"id":"course_1","score":0.91,"metadata":{"kind":"course"}},
			{"id":"course_2","score":0.72,"metadata":{"kind":"course"}},
			{"id":"course_3","score":0.41,"metadata":{"kind":"course"}}
		]}`))
	})

	matches, err := c.Query(context.Background(), "course-embeddings", []float32{0.5, 0.5}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "course_1", matches[0].Id)
	assert.Equal(t, "course_3", matches[2].Id)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i].Score, matches[i-1].Score,
			"scores must be non-increasing")
	}
}

func TestPineconeQueryDefaultsTopK(t *testing.T) {
	var got pineconeQueryRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"matches":[]}`))
	})

	_, err := c.Query(context.Background(), "ns", []float32{0.1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TopK)
	assert.True(t, got.IncludeMetadata)
}

func TestPineconeQueryServerErrorRetryable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Query(context.Background(), "ns", []float32{0.1}, 5)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestPineconeHealthCheck(t *testing.T) {
	healthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/describe_index_stats", r.URL.Path)
		w.Write([]byte(`{"dimension":768}`))
	})
	assert.True(t, healthy.HealthCheck(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.False(t, down.HealthCheck(context.Background()))

	unconfigured := NewPineconeClient("", "", time.Second)
	assert.False(t, unconfigured.HealthCheck(context.Background()))
}
