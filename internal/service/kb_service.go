package service

import (
	"context"
	"encoding/json"
	"time"

	"helpdesk-ai-be/internal/dto"
	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/repository/contract"
	"helpdesk-ai-be/pkg/knowledge"

	"github.com/google/uuid"
)

type IKBService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	Search(ctx context.Context, query string, topK int) ([]*dto.KBSearchResponse, error)
	ListDocuments(ctx context.Context) ([]*dto.KBDocumentResponse, error)
}

type kbService struct {
	documentRepo     contract.KBDocumentRepository
	retriever        *knowledge.Retriever
	publisherService IPublisherService
}

func NewKBService(
	documentRepo contract.KBDocumentRepository,
	retriever *knowledge.Retriever,
	publisherService IPublisherService,
) IKBService {
	return &kbService{
		documentRepo:     documentRepo,
		retriever:        retriever,
		publisherService: publisherService,
	}
}

func (s *kbService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	doc := entity.KBDocument{
		Id:        uuid.New(),
		Source:    req.Source,
		DocType:   req.DocType,
		Category:  req.Category,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := s.documentRepo.Create(ctx, &doc); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedDocumentMessage{
		DocumentId: doc.Id,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.IngestDocumentResponse{Id: doc.Id}, nil
}

func (s *kbService) Search(ctx context.Context, query string, topK int) ([]*dto.KBSearchResponse, error) {
	snippets, err := s.retriever.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.KBSearchResponse, 0, len(snippets))
	for _, sn := range snippets {
		res = append(res, &dto.KBSearchResponse{
			Content:   sn.Content,
			Source:    sn.Source,
			DocType:   sn.DocType,
			Category:  sn.Category,
			Relevance: sn.Relevance,
		})
	}
	return res, nil
}

func (s *kbService) ListDocuments(ctx context.Context) ([]*dto.KBDocumentResponse, error) {
	docs, err := s.documentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.KBDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		res = append(res, &dto.KBDocumentResponse{
			Id:        doc.Id,
			Source:    doc.Source,
			DocType:   doc.DocType,
			Category:  doc.Category,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return res, nil
}
