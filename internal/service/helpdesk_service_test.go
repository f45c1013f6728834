package service

import (
	"context"
	"errors"
	"testing"

	"helpdesk-ai-be/internal/dto"
	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/pkg/mailer"
	"helpdesk-ai-be/pkg/classifier"
	"helpdesk-ai-be/pkg/escalation"
	"helpdesk-ai-be/pkg/knowledge"
	"helpdesk-ai-be/pkg/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTicketRepo struct {
	created []*entity.Ticket
}

func (s *stubTicketRepo) Create(ctx context.Context, ticket *entity.Ticket) error {
	s.created = append(s.created, ticket)
	return nil
}

func (s *stubTicketRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	for _, t := range s.created {
		if t.Id == id {
			return t, nil
		}
	}
	return nil, nil
}

func (s *stubTicketRepo) FindRecent(ctx context.Context, limit int) ([]*entity.Ticket, error) {
	if limit > len(s.created) {
		limit = len(s.created)
	}
	return s.created[:limit], nil
}

func (s *stubTicketRepo) CountByCategory(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, t := range s.created {
		counts[t.Category]++
	}
	return counts, nil
}

type stubSearcher struct {
	snippets []knowledge.Snippet
	err      error
	queries  []string
}

func (s *stubSearcher) Search(ctx context.Context, query string, topK int) ([]knowledge.Snippet, error) {
	s.queries = append(s.queries, query)
	return s.snippets, s.err
}

type stubMailer struct {
	notices []string
}

func (s *stubMailer) SendEscalationNotice(toEmail, ticketId, category, level, slaDeadline, requestText string) error {
	s.notices = append(s.notices, toEmail)
	return nil
}

func newHelpdeskServiceForTest(t *testing.T, searcher *stubSearcher, mail *stubMailer) (IHelpdeskService, *stubTicketRepo, IMetricsService) {
	t.Helper()

	store := escalation.NewStore()
	for _, r := range escalation.DefaultRules() {
		require.NoError(t, store.Add(r))
	}
	engine := escalation.NewEngine(store, escalation.DefaultBusinessHours, nil)

	// A nil *stubMailer must become a nil interface, or the service would
	// call methods on a nil receiver.
	var emailService mailer.IEmailService
	if mail != nil {
		emailService = mail
	}

	repo := &stubTicketRepo{}
	metrics := NewMetricsService()
	svc := NewHelpdeskService(
		classifier.MustNew(classifier.DefaultMinConfidence),
		engine,
		searcher,
		response.NewGenerator(nil, nil),
		repo,
		metrics,
		nil,
		emailService,
		noopLogger{},
		3,
	)
	return svc, repo, metrics
}

func TestProcessRequestHappyPath(t *testing.T) {
	searcher := &stubSearcher{snippets: []knowledge.Snippet{
		{
			Content:   "1. Open the password portal\n2. Follow the reset wizard and contact support if it fails",
			Source:    "troubleshooting#password_reset",
			DocType:   knowledge.DocTypeTroubleshooting,
			Relevance: 0.9,
		},
	}}
	svc, repo, metrics := newHelpdeskServiceForTest(t, searcher, nil)

	res, err := svc.ProcessRequest(context.Background(), &dto.ProcessRequestRequest{
		Text:      "I forgot my password and can't log in",
		UserEmail: "user@company.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "password_reset", res.Classification.Category)
	assert.GreaterOrEqual(t, res.Classification.Confidence, 0.3)
	assert.Contains(t, res.Answer, "password portal")
	assert.Nil(t, res.Escalation)
	assert.Equal(t, []string{"troubleshooting#password_reset"}, res.Sources)

	require.Len(t, repo.created, 1)
	ticket := repo.created[0]
	assert.Equal(t, "password_reset", ticket.Category)
	assert.Equal(t, "user@company.com", ticket.UserEmail)
	assert.False(t, ticket.ShouldEscalate)
	assert.Nil(t, ticket.SLADeadline)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.TotalRequests)
	assert.Equal(t, int64(0), snap.EscalatedRequests)
	assert.Equal(t, int64(1), snap.RequestsByCategory["password_reset"])
}

func TestProcessRequestEscalates(t *testing.T) {
	searcher := &stubSearcher{}
	mail := &stubMailer{}
	svc, repo, metrics := newHelpdeskServiceForTest(t, searcher, mail)

	res, err := svc.ProcessRequest(context.Background(), &dto.ProcessRequestRequest{
		Text: "I got a suspicious email on my work computer, I think I was hacked",
	})
	require.NoError(t, err)

	assert.Equal(t, "security_incident", res.Classification.Category)
	require.NotNil(t, res.Escalation)
	assert.True(t, res.Escalation.ShouldEscalate)
	assert.Equal(t, "security-incident", res.Escalation.MatchedRuleId)
	assert.Equal(t, "security_team", res.Escalation.EscalationLevel)
	require.NotNil(t, res.Escalation.SLADeadline)
	assert.Contains(t, res.Answer, "security-team@company.com")

	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].ShouldEscalate)
	assert.NotNil(t, repo.created[0].SLADeadline)

	assert.Equal(t, []string{"security-team@company.com"}, mail.notices)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.EscalatedRequests)
	assert.Equal(t, int64(1), snap.EscalationsByLevel["security_team"])
}

func TestProcessRequestSkipsRetrievalForNonIT(t *testing.T) {
	searcher := &stubSearcher{}
	svc, _, _ := newHelpdeskServiceForTest(t, searcher, nil)

	res, err := svc.ProcessRequest(context.Background(), &dto.ProcessRequestRequest{
		Text: "What is the cafeteria menu for lunch today?",
	})
	require.NoError(t, err)

	assert.Equal(t, "non_it_request", res.Classification.Category)
	assert.Empty(t, searcher.queries, "retrieval should be skipped for non-IT requests")
}

func TestProcessRequestRetrievalFailureDegrades(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("vector store unavailable")}
	svc, repo, _ := newHelpdeskServiceForTest(t, searcher, nil)

	res, err := svc.ProcessRequest(context.Background(), &dto.ProcessRequestRequest{
		Text: "I forgot my password and can't log in",
	})
	require.NoError(t, err, "retrieval failure must not fail the request")
	assert.NotEmpty(t, res.Answer)
	require.Len(t, repo.created, 1)
}

func TestClassifyAndEvaluateEndpoints(t *testing.T) {
	svc, _, _ := newHelpdeskServiceForTest(t, &stubSearcher{}, nil)

	cls, err := svc.Classify(context.Background(), &dto.ClassifyRequest{Text: "my laptop screen is flickering"})
	require.NoError(t, err)
	assert.Equal(t, "hardware_failure", cls.Category)

	esc, err := svc.EvaluateEscalation(context.Background(), &dto.EvaluateEscalationRequest{
		Text:       "my laptop screen is flickering",
		Category:   cls.Category,
		Confidence: cls.Confidence,
	})
	require.NoError(t, err)
	assert.True(t, esc.ShouldEscalate)
	assert.Equal(t, "hardware-failure", esc.MatchedRuleId)
}

func TestShowTicketNotFound(t *testing.T) {
	svc, _, _ := newHelpdeskServiceForTest(t, &stubSearcher{}, nil)

	_, err := svc.ShowTicket(context.Background(), uuid.New())
	require.ErrorIs(t, err, escalation.ErrNotFound)
}
