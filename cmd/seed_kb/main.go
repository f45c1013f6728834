package main

import (
	"context"
	"flag"
	"time"

	"helpdesk-ai-be/internal/config"
	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/repository/implementation"
	"helpdesk-ai-be/pkg/database"
	"helpdesk-ai-be/pkg/embedding"
	"helpdesk-ai-be/pkg/knowledge"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seeds the knowledge base from a directory of guide files: parses, embeds
// each chunk synchronously and writes documents + vectors to Postgres.
func main() {
	dir := flag.String("dir", "", "knowledge directory (default: KNOWLEDGE_DIR)")
	flag.Parse()

	cfg := config.Load()
	if *dir == "" {
		*dir = cfg.Helpdesk.KnowledgeDir
	}

	color.Cyan("Seeding knowledge base from %s", *dir)

	docs, err := knowledge.LoadDir(*dir)
	if err != nil {
		color.Red("Failed to load knowledge directory: %v", err)
		return
	}
	if len(docs) == 0 {
		color.Yellow("No knowledge documents found in %s", *dir)
		return
	}
	color.Green("Parsed %d chunks", len(docs))

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		return
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	documentRepo := implementation.NewKBDocumentRepository(db)
	embeddingRepo := implementation.NewKBEmbeddingRepository(db)
	ctx := context.Background()

	// Group chunks by source so re-seeding replaces a file's content wholesale.
	bySource := make(map[string][]knowledge.Document)
	var sources []string
	for _, doc := range docs {
		if _, ok := bySource[doc.Source]; !ok {
			sources = append(sources, doc.Source)
		}
		bySource[doc.Source] = append(bySource[doc.Source], doc)
	}

	for _, source := range sources {
		chunks := bySource[source]
		color.Yellow("Seeding %s (%d chunks)", source, len(chunks))

		if err := documentRepo.DeleteBySource(ctx, source); err != nil {
			color.Red("Failed to clear existing documents for %s: %v", source, err)
			return
		}

		for _, chunk := range chunks {
			doc := entity.KBDocument{
				Id:        uuid.New(),
				Source:    chunk.Source,
				DocType:   chunk.DocType,
				Category:  chunk.Category,
				Content:   chunk.Content,
				CreatedAt: time.Now(),
			}
			if err := documentRepo.Create(ctx, &doc); err != nil {
				color.Red("Failed to store document: %v", err)
				return
			}

			res, err := provider.Generate(chunk.Content, embedding.TaskRetrievalDocument)
			if err != nil {
				color.Red("Failed to embed chunk from %s: %v", source, err)
				return
			}

			emb := entity.KBEmbedding{
				Id:         uuid.New(),
				DocumentId: doc.Id,
				Chunk:      chunk.Content,
				ChunkIndex: 0,
				Source:     chunk.Source,
				DocType:    chunk.DocType,
				Category:   chunk.Category,
				CreatedAt:  time.Now(),
			}
			if err := embeddingRepo.Create(ctx, &emb, res.Embedding.Values); err != nil {
				color.Red("Failed to store embedding: %v", err)
				return
			}
		}
	}

	count, _ := embeddingRepo.Count(ctx)
	color.Green("Knowledge base seeded: %d embeddings total", count)
}
