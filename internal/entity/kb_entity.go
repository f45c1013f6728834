package entity

import (
	"time"

	"github.com/google/uuid"
)

// KBDocument is a knowledge-base source document (troubleshooting guide,
// installation guide, category metadata, policy section).
type KBDocument struct {
	Id        uuid.UUID
	Source    string
	DocType   string
	Category  string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// KBEmbedding is one embedded chunk of a knowledge document. Source, doc type
// and category are denormalized so similarity search needs no join.
type KBEmbedding struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Chunk      string
	ChunkIndex int
	Source     string
	DocType    string
	Category   string
	CreatedAt  time.Time
}
