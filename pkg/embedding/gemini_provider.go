package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-roadmap-be/pkg/apperrors"
)

const geminiModelName = "text-embedding-004"

type geminiRequestContentPart struct {
	Text string `json:"text"`
}

type geminiRequestContent struct {
	Parts []geminiRequestContentPart `json:"parts"`
}

type geminiRequest struct {
	Model    string               `json:"model"`
	Content  geminiRequestContent `json:"content"`
	TaskType string               `json:"task_type,omitempty"`
}

type geminiResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type geminiResponse struct {
	Embedding geminiResponseEmbedding `json:"embedding"`
}

// GeminiProvider generates embeddings with Google's text-embedding-004
// (768 dimensions).
type GeminiProvider struct {
	ApiKey string
	// BaseURL overrides the Google endpoint, used by tests.
	BaseURL string
	client  *http.Client
}

func NewGeminiProvider(apiKey string, timeout time.Duration) Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiProvider{
		ApiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *GeminiProvider) ModelName() string {
	return geminiModelName
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) (*Result, error) {
	if text == "" {
		return nil, apperrors.NewEmbeddingServiceError(errors.New("empty text"), false)
	}

	geminiReq := geminiRequest{
		Model: geminiModelName,
		Content: geminiRequestContent{
			Parts: []geminiRequestContentPart{
				{Text: text},
			},
		},
		TaskType: taskType,
	}
	geminiReqJson, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, apperrors.NewEmbeddingServiceError(err, false)
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:embedContent",
		geminiModelName,
	)
	if p.BaseURL != "" {
		endpoint = fmt.Sprintf("%s/v1/models/%s:embedContent", p.BaseURL, geminiModelName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(geminiReqJson))
	if err != nil {
		return nil, apperrors.NewEmbeddingServiceError(err, false)
	}

	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		// Network failures and client timeouts are transient.
		return nil, apperrors.NewEmbeddingServiceError(err, true)
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.NewEmbeddingServiceError(err, true)
	}

	if res.StatusCode != http.StatusOK {
		err := fmt.Errorf("gemini response code %d, body %s", res.StatusCode, string(resByte))
		return nil, apperrors.NewEmbeddingServiceError(err, retryableStatus(res.StatusCode))
	}

	var resEmbedding geminiResponse
	if err := json.Unmarshal(resByte, &resEmbedding); err != nil {
		return nil, apperrors.NewEmbeddingServiceError(err, false)
	}
	if len(resEmbedding.Embedding.Values) == 0 {
		return nil, apperrors.NewEmbeddingServiceError(errors.New("gemini returned empty embedding"), false)
	}

	return &Result{
		Values:     resEmbedding.Embedding.Values,
		Dimension:  len(resEmbedding.Embedding.Values),
		TokenCount: estimateTokens(text),
	}, nil
}

// Healthy checks that the model metadata endpoint is reachable with the
// configured key. Failures are reported as data, never raised.
func (p *GeminiProvider) Healthy(ctx context.Context) bool {
	base := "https://generativelanguage.googleapis.com"
	if p.BaseURL != "" {
		base = p.BaseURL
	}
	endpoint := fmt.Sprintf("%s/v1/models/%s", base, geminiModelName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)

	res, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	return res.StatusCode == http.StatusOK
}

// retryableStatus reports whether an HTTP status indicates a transient
// upstream condition worth a later retry.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// estimateTokens approximates the token count from the character length.
// The embedding APIs used here do not report usage, and 4 chars/token is the
// usual ballpark for English text.
func estimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		n = 1
	}
	return n
}
