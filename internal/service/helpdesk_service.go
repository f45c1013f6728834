package service

import (
	"context"
	"time"

	"helpdesk-ai-be/internal/dto"
	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/pkg/logger"
	"helpdesk-ai-be/internal/pkg/mailer"
	"helpdesk-ai-be/internal/repository/contract"
	"helpdesk-ai-be/pkg/classifier"
	"helpdesk-ai-be/pkg/escalation"
	"helpdesk-ai-be/pkg/events"
	"helpdesk-ai-be/pkg/knowledge"
	pktNats "helpdesk-ai-be/pkg/nats"
	"helpdesk-ai-be/pkg/response"

	"github.com/google/uuid"
)

type IHelpdeskService interface {
	Classify(ctx context.Context, req *dto.ClassifyRequest) (*dto.ClassifyResponse, error)
	EvaluateEscalation(ctx context.Context, req *dto.EvaluateEscalationRequest) (*dto.EvaluateEscalationResponse, error)
	ProcessRequest(ctx context.Context, req *dto.ProcessRequestRequest) (*dto.ProcessRequestResponse, error)
	ShowTicket(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error)
	RecentTickets(ctx context.Context, limit int) ([]*dto.TicketResponse, error)
}

// SnippetSearcher is the slice of the knowledge retriever the pipeline needs.
type SnippetSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]knowledge.Snippet, error)
}

type helpdeskService struct {
	classifier     *classifier.Classifier
	engine         *escalation.Engine
	retriever      SnippetSearcher
	generator      *response.Generator
	ticketRepo     contract.TicketRepository
	metrics        IMetricsService
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	log            logger.ILogger
	topK           int
}

func NewHelpdeskService(
	cls *classifier.Classifier,
	engine *escalation.Engine,
	retriever SnippetSearcher,
	generator *response.Generator,
	ticketRepo contract.TicketRepository,
	metrics IMetricsService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
	topK int,
) IHelpdeskService {
	if topK <= 0 {
		topK = 3
	}
	return &helpdeskService{
		classifier:     cls,
		engine:         engine,
		retriever:      retriever,
		generator:      generator,
		ticketRepo:     ticketRepo,
		metrics:        metrics,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		log:            log,
		topK:           topK,
	}
}

func (s *helpdeskService) Classify(ctx context.Context, req *dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	result := s.classifier.Classify(req.Text)
	return toClassifyResponse(result), nil
}

func (s *helpdeskService) EvaluateEscalation(ctx context.Context, req *dto.EvaluateEscalationRequest) (*dto.EvaluateEscalationResponse, error) {
	decision := s.engine.Evaluate(escalation.EvalInput{
		Text:       req.Text,
		Category:   req.Category,
		Confidence: req.Confidence,
		Priority:   req.Priority,
	})
	return toEscalationResponse(decision), nil
}

// ProcessRequest runs the full pipeline: classify, evaluate escalation,
// retrieve knowledge, assemble the answer, persist the ticket.
func (s *helpdeskService) ProcessRequest(ctx context.Context, req *dto.ProcessRequestRequest) (*dto.ProcessRequestResponse, error) {
	now := time.Now()

	classification := s.classifier.Classify(req.Text)

	decision := s.engine.Evaluate(escalation.EvalInput{
		Text:       req.Text,
		Category:   string(classification.Category),
		Confidence: classification.Confidence,
		Priority:   req.Priority,
		Now:        now,
	})

	// Retrieval is skipped for requests the classifier could not place:
	// an answer built from unrelated snippets is worse than the fallback.
	var snippets []knowledge.Snippet
	if classification.Category != classifier.CategoryUnknown && classification.Category != classifier.CategoryNonITRequest {
		found, err := s.retriever.Search(ctx, req.Text, s.topK)
		if err != nil {
			s.log.Warn("helpdesk_service", "Knowledge retrieval failed, answering without context", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			snippets = found
		}
	}

	assembled := s.generator.Assemble(ctx, response.AssembleInput{
		Query:      req.Text,
		Category:   classification.Category,
		Snippets:   snippets,
		Escalation: decision,
	})

	ticket := entity.Ticket{
		Id:                 uuid.New(),
		RequestText:        req.Text,
		UserEmail:          req.UserEmail,
		Category:           string(classification.Category),
		Confidence:         classification.Confidence,
		KeywordsMatched:    classification.KeywordsMatched,
		Reasoning:          classification.Reasoning,
		ShouldEscalate:     decision.ShouldEscalate,
		MatchedRuleId:      decision.MatchedRuleID,
		EscalationLevel:    string(decision.Level),
		ContactInfo:        decision.ContactInfo,
		Answer:             assembled.Answer,
		ResponseConfidence: assembled.Confidence,
		CreatedAt:          now,
	}
	if decision.ShouldEscalate {
		deadline := decision.SLADeadline
		ticket.SLADeadline = &deadline
	}

	if err := s.ticketRepo.Create(ctx, &ticket); err != nil {
		return nil, err
	}

	s.metrics.RecordRequest(string(classification.Category), classification.Confidence)
	s.metrics.RecordResponse(assembled.Confidence)
	if decision.ShouldEscalate {
		s.metrics.RecordEscalation(string(decision.Level))
		s.notifyEscalation(ctx, &ticket, decision)
	}

	res := &dto.ProcessRequestResponse{
		TicketId:           ticket.Id,
		Classification:     *toClassifyResponse(classification),
		Answer:             assembled.Answer,
		ResponseConfidence: assembled.Confidence,
		Sources:            assembled.Sources,
		CreatedAt:          now,
	}
	if decision.ShouldEscalate {
		res.Escalation = toEscalationResponse(decision)
	}
	return res, nil
}

func (s *helpdeskService) ShowTicket(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error) {
	ticket, err := s.ticketRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, escalation.ErrNotFound
	}
	return toTicketResponse(ticket), nil
}

func (s *helpdeskService) RecentTickets(ctx context.Context, limit int) ([]*dto.TicketResponse, error) {
	tickets, err := s.ticketRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		res = append(res, toTicketResponse(t))
	}
	return res, nil
}

// notifyEscalation fires the event and email best-effort: a broken broker or
// SMTP server never fails the request.
func (s *helpdeskService) notifyEscalation(ctx context.Context, ticket *entity.Ticket, decision escalation.Decision) {
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type:       "ESCALATION_TRIGGERED",
			OccurredAt: time.Now(),
			Data: map[string]interface{}{
				"ticket_id":        ticket.Id.String(),
				"category":         ticket.Category,
				"matched_rule_id":  decision.MatchedRuleID,
				"escalation_level": string(decision.Level),
				"sla_deadline":     decision.SLADeadline.Format(time.RFC3339),
			},
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("helpdesk_service", "Failed to publish escalation event", map[string]interface{}{
				"ticket_id": ticket.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	if s.emailService != nil && decision.ContactInfo != "" {
		err := s.emailService.SendEscalationNotice(
			decision.ContactInfo,
			ticket.Id.String(),
			ticket.Category,
			string(decision.Level),
			decision.SLADeadline.Format(time.RFC1123),
			ticket.RequestText,
		)
		if err != nil {
			s.log.Warn("helpdesk_service", "Failed to send escalation email", map[string]interface{}{
				"ticket_id": ticket.Id.String(),
				"contact":   decision.ContactInfo,
				"error":     err.Error(),
			})
		}
	}
}

func toClassifyResponse(result classifier.Result) *dto.ClassifyResponse {
	return &dto.ClassifyResponse{
		Category:        string(result.Category),
		Confidence:      result.Confidence,
		KeywordsMatched: result.KeywordsMatched,
		Reasoning:       result.Reasoning,
	}
}

func toEscalationResponse(decision escalation.Decision) *dto.EvaluateEscalationResponse {
	res := &dto.EvaluateEscalationResponse{
		ShouldEscalate:  decision.ShouldEscalate,
		MatchedRuleId:   decision.MatchedRuleID,
		EscalationLevel: string(decision.Level),
		ContactInfo:     decision.ContactInfo,
		Priority:        decision.Priority,
		ResponseTimeSLA: decision.ResponseTimeSLA,
		NextBusinessDay: decision.NextBusinessDay,
		Diagnostics:     decision.Diagnostics,
	}
	if decision.ShouldEscalate {
		deadline := decision.SLADeadline
		res.SLADeadline = &deadline
	}
	return res
}

func toTicketResponse(t *entity.Ticket) *dto.TicketResponse {
	return &dto.TicketResponse{
		Id:                 t.Id,
		RequestText:        t.RequestText,
		UserEmail:          t.UserEmail,
		Category:           t.Category,
		Confidence:         t.Confidence,
		ShouldEscalate:     t.ShouldEscalate,
		EscalationLevel:    t.EscalationLevel,
		SLADeadline:        t.SLADeadline,
		Answer:             t.Answer,
		ResponseConfidence: t.ResponseConfidence,
		CreatedAt:          t.CreatedAt,
	}
}
