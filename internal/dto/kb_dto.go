package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestDocumentRequest struct {
	Source   string `json:"source" validate:"required"`
	DocType  string `json:"doc_type" validate:"required"`
	Category string `json:"category"`
	Content  string `json:"content" validate:"required"`
}

type IngestDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type KBSearchResponse struct {
	Content   string  `json:"content"`
	Source    string  `json:"source"`
	DocType   string  `json:"doc_type"`
	Category  string  `json:"category,omitempty"`
	Relevance float64 `json:"relevance"`
}

type KBDocumentResponse struct {
	Id        uuid.UUID  `json:"id"`
	Source    string     `json:"source"`
	DocType   string     `json:"doc_type"`
	Category  string     `json:"category,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// PublishEmbedDocumentMessage is the payload queued for async embedding.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
