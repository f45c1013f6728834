package knowledge

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"helpdesk-ai-be/internal/repository/contract"
	"helpdesk-ai-be/pkg/embedding"

	"github.com/patrickmn/go-cache"
)

// Snippet is one retrieved knowledge-base chunk with its relevance score.
type Snippet struct {
	Content   string  `json:"content"`
	Source    string  `json:"source"`
	DocType   string  `json:"doc_type"`
	Category  string  `json:"category"`
	Relevance float64 `json:"relevance"`
}

// keywordGroups expand a query with related terms before embedding, which
// pulls in documents that use synonyms the user didn't.
var keywordGroups = map[string][]string{
	"password": {"password", "login", "authenticate", "reset", "forgot", "locked", "access"},
	"wifi":     {"wifi", "wireless", "network", "internet", "connection", "connect"},
	"software": {"install", "software", "application", "app", "download", "setup"},
	"email":    {"email", "outlook", "mail", "smtp", "imap", "exchange"},
	"hardware": {"hardware", "computer", "laptop", "printer", "monitor", "device"},
}

// Retriever performs similarity search over the embedded knowledge base.
// Query embeddings are memoized so repeated questions skip the embedding API.
type Retriever struct {
	provider   embedding.EmbeddingProvider
	repo       contract.KBEmbeddingRepository
	queryCache *cache.Cache
	threshold  float64
	logger     *log.Logger
}

// NewRetriever wires a retriever. threshold filters out chunks below the given
// cosine similarity; zero uses a permissive default.
func NewRetriever(provider embedding.EmbeddingProvider, repo contract.KBEmbeddingRepository, threshold float64, logger *log.Logger) *Retriever {
	if threshold <= 0 {
		threshold = 0.3
	}
	return &Retriever{
		provider:   provider,
		repo:       repo,
		queryCache: cache.New(30*time.Minute, 10*time.Minute),
		threshold:  threshold,
		logger:     logger,
	}
}

// Search returns the topK most relevant snippets for query, reranked by
// keyword overlap on top of vector similarity.
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]Snippet, error) {
	if topK <= 0 {
		topK = 3
	}

	expanded := expandQuery(query)

	vector, err := r.embedQuery(expanded)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// Over-fetch so keyword reranking has candidates to work with.
	initial := topK * 2
	if initial > 20 {
		initial = 20
	}

	scored, err := r.repo.SearchSimilarWithScore(ctx, vector, initial, r.threshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	snippets := make([]Snippet, 0, len(scored))
	for _, s := range scored {
		snippets = append(snippets, Snippet{
			Content:   s.Embedding.Chunk,
			Source:    s.Embedding.Source,
			DocType:   s.Embedding.DocType,
			Category:  s.Embedding.Category,
			Relevance: boostRelevance(s.Similarity, query, s.Embedding.Chunk),
		})
	}

	sort.SliceStable(snippets, func(i, j int) bool {
		return snippets[i].Relevance > snippets[j].Relevance
	})
	if len(snippets) > topK {
		snippets = snippets[:topK]
	}

	if r.logger != nil {
		r.logger.Printf("[RETRIEVER] query=%q results=%d", query, len(snippets))
	}
	return snippets, nil
}

func (r *Retriever) embedQuery(query string) ([]float32, error) {
	if cached, found := r.queryCache.Get(query); found {
		return cached.([]float32), nil
	}

	resp, err := r.provider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	vector := resp.Embedding.Values
	r.queryCache.Set(query, vector, cache.DefaultExpiration)
	return vector, nil
}

// expandQuery appends related terms for every keyword group the query touches.
func expandQuery(query string) string {
	lower := strings.ToLower(query)
	seen := make(map[string]bool)
	var expanded []string

	// Sorted group order keeps the expanded query stable, which keeps the
	// embedding cache effective.
	groups := make([]string, 0, len(keywordGroups))
	for name := range keywordGroups {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	for _, name := range groups {
		keywords := keywordGroups[name]
		matched := false
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for _, keyword := range keywords[:3] {
			if !seen[keyword] {
				seen[keyword] = true
				expanded = append(expanded, keyword)
			}
		}
	}

	if len(expanded) == 0 {
		return query
	}
	return query + " " + strings.Join(expanded, " ")
}

// boostRelevance adds a capped keyword-overlap bonus to the base similarity.
func boostRelevance(similarity float64, query, content string) float64 {
	queryWords := fieldsSet(query)
	if len(queryWords) == 0 {
		return clamp01(similarity)
	}
	contentWords := fieldsSet(content)

	overlapping := 0
	for word := range queryWords {
		if contentWords[word] {
			overlapping++
		}
	}
	overlap := float64(overlapping) / float64(len(queryWords))

	boost := overlap * 0.5
	if boost > 0.3 {
		boost = 0.3
	}
	return clamp01(similarity + boost)
}

func fieldsSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		set[word] = true
	}
	return set
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
