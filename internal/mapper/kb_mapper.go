package mapper

import (
	"time"

	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/model"
)

type KBDocumentMapper struct{}

func NewKBDocumentMapper() *KBDocumentMapper {
	return &KBDocumentMapper{}
}

func (m *KBDocumentMapper) ToEntity(d *model.KBDocument) *entity.KBDocument {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.KBDocument{
		Id:        d.Id,
		Source:    d.Source,
		DocType:   d.DocType,
		Category:  d.Category,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KBDocumentMapper) ToModel(d *entity.KBDocument) *model.KBDocument {
	if d == nil {
		return nil
	}

	out := &model.KBDocument{
		Id:        d.Id,
		Source:    d.Source,
		DocType:   d.DocType,
		Category:  d.Category,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
	if d.UpdatedAt != nil {
		out.UpdatedAt = *d.UpdatedAt
	}
	return out
}

type KBEmbeddingMapper struct{}

func NewKBEmbeddingMapper() *KBEmbeddingMapper {
	return &KBEmbeddingMapper{}
}

func (m *KBEmbeddingMapper) ToEntity(e *model.KBEmbedding) *entity.KBEmbedding {
	if e == nil {
		return nil
	}

	return &entity.KBEmbedding{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		Chunk:      e.Chunk,
		ChunkIndex: e.ChunkIndex,
		Source:     e.Source,
		DocType:    e.DocType,
		Category:   e.Category,
		CreatedAt:  e.CreatedAt,
	}
}
