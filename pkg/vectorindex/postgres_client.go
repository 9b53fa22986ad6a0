package vectorindex

import (
	"context"
	"encoding/json"
	"errors"

	"ai-roadmap-be/pkg/apperrors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VectorEntry is the row backing one embedding key when the index runs
// inside Postgres (pgvector) instead of a hosted backend.
type VectorEntry struct {
	EmbeddingKey string          `gorm:"primaryKey"`
	Namespace    string          `gorm:"index;not null"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"`
	Metadata     datatypes.JSON
}

func (VectorEntry) TableName() string {
	return "vector_entries"
}

// PostgresClient implements Client on pgvector. Namespaces are a column, not
// separate tables; cosine similarity is computed as 1 - (embedding <=> query).
type PostgresClient struct {
	db *gorm.DB
}

func NewPostgresClient(db *gorm.DB) Client {
	return &PostgresClient{db: db}
}

func (c *PostgresClient) Upsert(ctx context.Context, namespace string, id string, values []float32, metadata map[string]interface{}) error {
	if len(values) == 0 {
		return apperrors.NewIndexServiceError(errors.New("empty vector"), false)
	}

	metaJson, err := json.Marshal(metadata)
	if err != nil {
		return apperrors.NewIndexServiceError(err, false)
	}

	entry := VectorEntry{
		EmbeddingKey: id,
		Namespace:    namespace,
		Embedding:    pgvector.NewVector(values),
		Metadata:     datatypes.JSON(metaJson),
	}

	err = c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "embedding_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"namespace", "embedding", "metadata"}),
	}).Create(&entry).Error
	if err != nil {
		return apperrors.NewIndexServiceError(err, true)
	}
	return nil
}

func (c *PostgresClient) Query(ctx context.Context, namespace string, values []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = 5
	}

	type row struct {
		EmbeddingKey string
		Score        float64
		Metadata     datatypes.JSON
	}
	var rows []row

	queryVector := pgvector.NewVector(values)

	err := c.db.WithContext(ctx).
		Table("vector_entries").
		Select("embedding_key, 1 - (embedding <=> ?) as score, metadata", queryVector).
		Where("namespace = ?", namespace).
		Order("score DESC").
		Limit(topK).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewIndexServiceError(err, true)
	}

	matches := make([]Match, len(rows))
	for i, r := range rows {
		var meta map[string]interface{}
		if len(r.Metadata) > 0 {
			// Corrupt metadata should not sink the whole query.
			_ = json.Unmarshal(r.Metadata, &meta)
		}
		matches[i] = Match{
			Id:       r.EmbeddingKey,
			Score:    r.Score,
			Metadata: meta,
		}
	}
	return matches, nil
}

func (c *PostgresClient) HealthCheck(ctx context.Context) bool {
	sqlDB, err := c.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
