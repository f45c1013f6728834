package knowledge

import (
	"context"
	"strings"
	"testing"

	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/repository/contract"
	"helpdesk-ai-be/pkg/embedding"

	"github.com/google/uuid"
)

type stubProvider struct {
	calls int
}

func (s *stubProvider) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	s.calls++
	resp := &embedding.EmbeddingResponse{}
	resp.Embedding.Values = []float32{0.1, 0.2, 0.3}
	return resp, nil
}

type stubRepo struct {
	results []*contract.ScoredKBEmbedding
	limit   int
}

func (s *stubRepo) Create(ctx context.Context, emb *entity.KBEmbedding, vector []float32) error {
	return nil
}

func (s *stubRepo) CreateBulk(ctx context.Context, embs []*entity.KBEmbedding, vectors [][]float32) error {
	return nil
}

func (s *stubRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}

func (s *stubRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.results)), nil
}

func (s *stubRepo) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int, threshold float64) ([]*contract.ScoredKBEmbedding, error) {
	s.limit = limit
	return s.results, nil
}

func scoredChunk(chunk, source string, similarity float64) *contract.ScoredKBEmbedding {
	return &contract.ScoredKBEmbedding{
		Embedding: &entity.KBEmbedding{
			Chunk:   chunk,
			Source:  source,
			DocType: DocTypeTroubleshooting,
		},
		Similarity: similarity,
	}
}

func TestSearchRanksByBoostedRelevance(t *testing.T) {
	repo := &stubRepo{
		results: []*contract.ScoredKBEmbedding{
			// Higher raw similarity, no keyword overlap with the query.
			scoredChunk("printer toner replacement procedure for the mail room", "a", 0.70),
			// Lower similarity, strong overlap: boost should rerank it first.
			scoredChunk("reset your password from the password portal login page", "b", 0.60),
		},
	}
	provider := &stubProvider{}
	r := NewRetriever(provider, repo, 0.3, nil)

	got, err := r.Search(context.Background(), "reset password login", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Source != "b" {
		t.Errorf("top result = %s, want b (keyword-boosted)", got[0].Source)
	}
	if got[0].Relevance <= got[1].Relevance {
		t.Errorf("relevance not descending: %.2f then %.2f", got[0].Relevance, got[1].Relevance)
	}
}

func TestSearchOverFetchesAndTruncates(t *testing.T) {
	repo := &stubRepo{
		results: []*contract.ScoredKBEmbedding{
			scoredChunk("chunk one", "a", 0.9),
			scoredChunk("chunk two", "b", 0.8),
			scoredChunk("chunk three", "c", 0.7),
			scoredChunk("chunk four", "d", 0.6),
		},
	}
	r := NewRetriever(&stubProvider{}, repo, 0.3, nil)

	got, err := r.Search(context.Background(), "anything", 3)
	if err != nil {
		t.Fatal(err)
	}
	if repo.limit != 6 {
		t.Errorf("fetch limit = %d, want topK*2 = 6", repo.limit)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want topK = 3", len(got))
	}
}

func TestSearchCachesQueryEmbedding(t *testing.T) {
	provider := &stubProvider{}
	r := NewRetriever(provider, &stubRepo{}, 0.3, nil)

	for i := 0; i < 3; i++ {
		if _, err := r.Search(context.Background(), "same question every time", 3); err != nil {
			t.Fatal(err)
		}
	}
	if provider.calls != 1 {
		t.Errorf("embedding calls = %d, want 1 (cached)", provider.calls)
	}
}

func TestExpandQuery(t *testing.T) {
	got := expandQuery("I forgot my password")
	if !strings.Contains(got, "I forgot my password") {
		t.Errorf("expanded query lost original text: %q", got)
	}
	if !strings.Contains(got, "login") {
		t.Errorf("expanded query missing related term: %q", got)
	}

	// No group touched: query unchanged.
	if got := expandQuery("zzz qqq"); got != "zzz qqq" {
		t.Errorf("expandQuery(no match) = %q, want unchanged", got)
	}

	// Same input must expand identically every time.
	first := expandQuery("password and wifi and email problems")
	for i := 0; i < 5; i++ {
		if again := expandQuery("password and wifi and email problems"); again != first {
			t.Fatalf("expansion unstable: %q vs %q", again, first)
		}
	}
}

func TestBoostRelevanceCap(t *testing.T) {
	// Full overlap would give +0.5 uncapped; cap is 0.3.
	got := boostRelevance(0.5, "password reset", "password reset")
	if got != 0.8 {
		t.Errorf("boosted = %.2f, want 0.8 (0.5 + capped 0.3)", got)
	}

	// Boost never pushes relevance above 1.
	if got := boostRelevance(0.95, "password reset", "password reset"); got != 1 {
		t.Errorf("boosted = %.2f, want clamp at 1", got)
	}

	// No overlap: similarity unchanged.
	if got := boostRelevance(0.6, "alpha beta", "gamma delta"); got != 0.6 {
		t.Errorf("boosted = %.2f, want 0.6", got)
	}
}
