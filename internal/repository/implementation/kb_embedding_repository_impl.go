package implementation

import (
	"context"
	"fmt"

	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/mapper"
	"helpdesk-ai-be/internal/model"
	"helpdesk-ai-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KBEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KBEmbeddingMapper
}

func NewKBEmbeddingRepository(db *gorm.DB) contract.KBEmbeddingRepository {
	return &KBEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewKBEmbeddingMapper(),
	}
}

func (r *KBEmbeddingRepositoryImpl) Create(ctx context.Context, emb *entity.KBEmbedding, vector []float32) error {
	m := r.toModel(emb, vector)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*emb = *r.mapper.ToEntity(m)
	return nil
}

func (r *KBEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embs []*entity.KBEmbedding, vectors [][]float32) error {
	if len(embs) != len(vectors) {
		return fmt.Errorf("embedding count (%d) does not match vector count (%d)", len(embs), len(vectors))
	}
	if len(embs) == 0 {
		return nil
	}

	models := make([]*model.KBEmbedding, len(embs))
	for i, emb := range embs {
		models[i] = r.toModel(emb, vectors[i])
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *KBEmbeddingRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.KBEmbedding{}).Error
}

func (r *KBEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KBEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold
func (r *KBEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int, threshold float64) ([]*contract.ScoredKBEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.KBEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("kb_embeddings").
		Select("kb_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("kb_embeddings.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKBEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredKBEmbedding{
			Embedding:  r.mapper.ToEntity(&res.KBEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *KBEmbeddingRepositoryImpl) toModel(emb *entity.KBEmbedding, vector []float32) *model.KBEmbedding {
	return &model.KBEmbedding{
		Id:             emb.Id,
		DocumentId:     emb.DocumentId,
		Chunk:          emb.Chunk,
		ChunkIndex:     emb.ChunkIndex,
		Source:         emb.Source,
		DocType:        emb.DocType,
		Category:       emb.Category,
		EmbeddingValue: pgvector.NewVector(vector),
		CreatedAt:      emb.CreatedAt,
	}
}
