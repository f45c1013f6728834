package mapper

import (
	"strings"

	"helpdesk-ai-be/internal/entity"
	"helpdesk-ai-be/internal/model"
)

type TicketMapper struct{}

func NewTicketMapper() *TicketMapper {
	return &TicketMapper{}
}

func (m *TicketMapper) ToEntity(t *model.Ticket) *entity.Ticket {
	if t == nil {
		return nil
	}

	var keywords []string
	if t.KeywordsMatched != "" {
		keywords = strings.Split(t.KeywordsMatched, "\n")
	}

	return &entity.Ticket{
		Id:                 t.Id,
		RequestText:        t.RequestText,
		UserEmail:          t.UserEmail,
		Category:           t.Category,
		Confidence:         t.Confidence,
		KeywordsMatched:    keywords,
		Reasoning:          t.Reasoning,
		ShouldEscalate:     t.ShouldEscalate,
		MatchedRuleId:      t.MatchedRuleId,
		EscalationLevel:    t.EscalationLevel,
		ContactInfo:        t.ContactInfo,
		SLADeadline:        t.SLADeadline,
		Answer:             t.Answer,
		ResponseConfidence: t.ResponseConfidence,
		CreatedAt:          t.CreatedAt,
	}
}

func (m *TicketMapper) ToModel(t *entity.Ticket) *model.Ticket {
	if t == nil {
		return nil
	}

	return &model.Ticket{
		Id:                 t.Id,
		RequestText:        t.RequestText,
		UserEmail:          t.UserEmail,
		Category:           t.Category,
		Confidence:         t.Confidence,
		KeywordsMatched:    strings.Join(t.KeywordsMatched, "\n"),
		Reasoning:          t.Reasoning,
		ShouldEscalate:     t.ShouldEscalate,
		MatchedRuleId:      t.MatchedRuleId,
		EscalationLevel:    t.EscalationLevel,
		ContactInfo:        t.ContactInfo,
		SLADeadline:        t.SLADeadline,
		Answer:             t.Answer,
		ResponseConfidence: t.ResponseConfidence,
		CreatedAt:          t.CreatedAt,
	}
}
