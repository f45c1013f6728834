package dto

import (
	"time"

	"github.com/google/uuid"
)

type ClassifyRequest struct {
	Text string `json:"text" validate:"required"`
}

type ClassifyResponse struct {
	Category        string   `json:"category"`
	Confidence      float64  `json:"confidence"`
	KeywordsMatched []string `json:"keywords_matched"`
	Reasoning       string   `json:"reasoning"`
}

type EvaluateEscalationRequest struct {
	Text       string  `json:"text" validate:"required"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Priority   string  `json:"priority"`
}

type EvaluateEscalationResponse struct {
	ShouldEscalate  bool       `json:"should_escalate"`
	MatchedRuleId   string     `json:"matched_rule_id,omitempty"`
	EscalationLevel string     `json:"escalation_level,omitempty"`
	ContactInfo     string     `json:"contact_info,omitempty"`
	Priority        int        `json:"priority,omitempty"`
	ResponseTimeSLA int        `json:"response_time_sla_minutes,omitempty"`
	SLADeadline     *time.Time `json:"sla_deadline,omitempty"`
	NextBusinessDay bool       `json:"next_business_day,omitempty"`
	Diagnostics     []string   `json:"diagnostics,omitempty"`
}

type ProcessRequestRequest struct {
	Text      string `json:"text" validate:"required"`
	UserEmail string `json:"user_email" validate:"omitempty,email"`
	Priority  string `json:"priority"`
}

type ProcessRequestResponse struct {
	TicketId           uuid.UUID                   `json:"ticket_id"`
	Classification     ClassifyResponse            `json:"classification"`
	Escalation         *EvaluateEscalationResponse `json:"escalation,omitempty"`
	Answer             string                      `json:"answer"`
	ResponseConfidence float64                     `json:"response_confidence"`
	Sources            []string                    `json:"sources,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
}

type TicketResponse struct {
	Id                 uuid.UUID  `json:"id"`
	RequestText        string     `json:"request_text"`
	UserEmail          string     `json:"user_email,omitempty"`
	Category           string     `json:"category"`
	Confidence         float64    `json:"confidence"`
	ShouldEscalate     bool       `json:"should_escalate"`
	EscalationLevel    string     `json:"escalation_level,omitempty"`
	SLADeadline        *time.Time `json:"sla_deadline,omitempty"`
	Answer             string     `json:"answer"`
	ResponseConfidence float64    `json:"response_confidence"`
	CreatedAt          time.Time  `json:"created_at"`
}
