package embedding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-roadmap-be/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*GeminiProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewGeminiProvider("test-key", timeout).(*GeminiProvider)
	p.BaseURL = srv.URL
	return p, srv
}

func TestGeminiGenerateSuccess(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`))
	}, 5*time.Second)

	res, err := p.Generate(context.Background(), "intro to go concurrency", TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Dimension)
	assert.Len(t, res.Values, 3)
	assert.Greater(t, res.TokenCount, 0)
}

func TestGeminiGenerateEmptyTextNonRetryable(t *testing.T) {
	p := NewGeminiProvider("test-key", time.Second)

	_, err := p.Generate(context.Background(), "", TaskRetrievalQuery)
	require.Error(t, err)
	assert.False(t, apperrors.IsRetryable(err))
}

func TestGeminiGenerateRateLimitRetryable(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, 5*time.Second)

	_, err := p.Generate(context.Background(), "some text", TaskRetrievalQuery)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestGeminiGenerateServerErrorRetryable(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, 5*time.Second)

	_, err := p.Generate(context.Background(), "some text", TaskRetrievalQuery)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestGeminiGenerateBadRequestNonRetryable(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, 5*time.Second)

	_, err := p.Generate(context.Background(), "some text", TaskRetrievalQuery)
	require.Error(t, err)
	assert.False(t, apperrors.IsRetryable(err))
}

func TestGeminiGenerateTimeoutRetryable(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"embedding":{"values":[0.1]}}`))
	}, 20*time.Millisecond)

	_, err := p.Generate(context.Background(), "some text", TaskRetrievalQuery)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestGeminiHealthy(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"name":"models/text-embedding-004"}`))
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	}, 5*time.Second)

	assert.True(t, p.Healthy(context.Background()))
}

func TestGeminiUnhealthyOnAuthFailure(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, 5*time.Second)

	assert.False(t, p.Healthy(context.Background()))
}
