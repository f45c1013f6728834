package contract

import (
	"context"

	"helpdesk-ai-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredKBEmbedding wraps a KBEmbedding with its similarity score
type ScoredKBEmbedding struct {
	Embedding  *entity.KBEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type KBDocumentRepository interface {
	Create(ctx context.Context, doc *entity.KBDocument) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.KBDocument, error)
	FindAll(ctx context.Context) ([]*entity.KBDocument, error)
	DeleteBySource(ctx context.Context, source string) error
	Count(ctx context.Context) (int64, error)
}

type KBEmbeddingRepository interface {
	Create(ctx context.Context, emb *entity.KBEmbedding, vector []float32) error
	CreateBulk(ctx context.Context, embs []*entity.KBEmbedding, vectors [][]float32) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores,
	// filtered by threshold
	SearchSimilarWithScore(ctx context.Context, vector []float32, limit int, threshold float64) ([]*ScoredKBEmbedding, error)
}
