package vectorindex

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

// PineconeClient talks to a hosted Pinecone index over its REST data plane.
// IndexHost is the per-index endpoint (e.g. https://my-index-abc123.svc.us-east-1.pinecone.io).
type PineconeClient struct {
	ApiKey    string
	IndexHost string
	client    *http.Client
}

func NewPineconeClient(apiKey string, indexHost string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PineconeClient{
		ApiKey:    apiKey,
		IndexHost: indexHost,
		client:    &http.Client{Timeout: timeout},
	}
}

type pineconeVector struct {
	Id       string                 `json:"id"`
	Values   []float32              `json:"values"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type pineconeUpsertRequest struct {
	Vectors   []pineconeVector `json:"vectors"`
	Namespace string           `json:"namespace,omitempty"`
}

type pineconeQueryRequest struct {
	Namespace       string    `json:"namespace,omitempty"`
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type pineconeQueryMatch struct {
	Id       string                 `json:"id"`
	Score    float64                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

type pineconeQueryResponse struct {
	Matches []pineconeQueryMatch `json:"matches"`
}

func (c *PineconeClient) Upsert(ctx context.Context, namespace string, id string, values []float32, metadata map[string]interface{}) error {
	if len(values) == 0 {
		return apperrors.NewIndexServiceError(errors.New("empty vector"), false)
	}

	reqBody := pineconeUpsertRequest{
		Vectors: []pineconeVector{
			{Id: id, Values: values, Metadata: metadata},
		},
		Namespace: namespace,
	}

	_, err := c.post(ctx, "/vectors/upsert", reqBody)
	return err
}

func (c *PineconeClient) Query(ctx context.Context, namespace string, values []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 5
	}

	reqBody := pineconeQueryRequest{
		Namespace:       namespace,
		Vector:          values,
		TopK:            topK,
		IncludeMetadata: true,
	}

	resByte, err := c.post(ctx, "/query", reqBody)
	if err != nil {
		return nil, err
	}

	var queryRes pineconeQueryResponse
	if err := json.Unmarshal(resByte, &queryRes); err != nil {
		return nil, apperrors.NewIndexServiceError(err, false)
	}

	matches := make([]Match, len(queryRes.Matches))
	for i, m := range queryRes.Matches {
		matches[i] = Match{
			Id:       m.Id,
			Score:    m.Score,
			Metadata: m.Metadata,
		}
	}
	return matches, nil
}

// HealthCheck pings the index stats endpoint. Failure is reported as false,
// never as an error.
func (c *PineconeClient) HealthCheck(ctx context.Context) bool {
	if c.ApiKey == "" || c.IndexHost == "" {
		return false
	}
	_, err := c.post(ctx, "/describe_index_stats", map[string]interface{}{})
	return err == nil
}

func (c *PineconeClient) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	bodyJson, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.NewIndexServiceError(err, false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.IndexHost+path, bytes.NewBuffer(bodyJson))
	if err != nil {
		return nil, apperrors.NewIndexServiceError(err, false)
	}
	req.Header.Set("Api-Key", c.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewIndexServiceError(err, true)
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.NewIndexServiceError(err, true)
	}

	if res.StatusCode != http.StatusOK {
		err := fmt.Errorf("pinecone %s response code %d, body %s", path, res.StatusCode, string(resByte))
		return nil, apperrors.NewIndexServiceError(err, retryableStatus(res.StatusCode))
	}

	return resByte, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
