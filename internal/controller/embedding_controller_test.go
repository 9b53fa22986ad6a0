package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbeddingService struct {
	statusResult *dto.EmbeddingStatusResponse
}

func (s *stubEmbeddingService) ProcessEntity(ctx context.Context, kind entity.EntityKind, entityId, ownerId uuid.UUID) error {
	return nil
}

func (s *stubEmbeddingService) Status(ctx context.Context, entityId, ownerId uuid.UUID) (*dto.EmbeddingStatusResponse, error) {
	if s.statusResult != nil {
		return s.statusResult, nil
	}
	return &dto.EmbeddingStatusResponse{EntityId: entityId, Status: entity.EmbeddingStateNotFound}, nil
}

type stubPublisher struct {
	published [][]byte
	err       error
}

func (s *stubPublisher) Publish(ctx context.Context, payload []byte) error {
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, payload)
	return nil
}

func newEmbeddingTestApp(t *testing.T, publisher *stubPublisher) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	ctrl := NewEmbeddingController(&stubEmbeddingService{}, publisher)
	ctrl.RegisterRoutes(app.Group("/api"))
	return app
}

func signedToken(t *testing.T, secret string, ownerId uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": ownerId.String(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func reembedRequest(t *testing.T, token string, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/embedding/v1/reembed", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestReembedQueuesMessage(t *testing.T) {
	publisher := &stubPublisher{}
	app := newEmbeddingTestApp(t, publisher)

	ownerId := uuid.New()
	entityId := uuid.New()

	resp, err := app.Test(reembedRequest(t, signedToken(t, "test-secret", ownerId), dto.ReembedRequest{
		EntityId: entityId,
		Kind:     "course",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, publisher.published, 1)
	var msg dto.PublishEmbedMessage
	require.NoError(t, json.Unmarshal(publisher.published[0], &msg))
	assert.Equal(t, entityId, msg.EntityId)
	assert.Equal(t, ownerId, msg.OwnerId)
	assert.Equal(t, entity.KindCourse, msg.EntityKind)
}

func TestReembedRejectsUnknownKind(t *testing.T) {
	publisher := &stubPublisher{}
	app := newEmbeddingTestApp(t, publisher)

	resp, err := app.Test(reembedRequest(t, signedToken(t, "test-secret", uuid.New()), dto.ReembedRequest{
		EntityId: uuid.New(),
		Kind:     "playlist",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, publisher.published)
}

func TestReembedRequiresToken(t *testing.T) {
	publisher := &stubPublisher{}
	app := newEmbeddingTestApp(t, publisher)

	resp, err := app.Test(reembedRequest(t, "", dto.ReembedRequest{
		EntityId: uuid.New(),
		Kind:     "course",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, publisher.published)
}

func TestReembedRejectsForgedToken(t *testing.T) {
	publisher := &stubPublisher{}
	app := newEmbeddingTestApp(t, publisher)

	resp, err := app.Test(reembedRequest(t, signedToken(t, "wrong-secret", uuid.New()), dto.ReembedRequest{
		EntityId: uuid.New(),
		Kind:     "course",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, publisher.published)
}
