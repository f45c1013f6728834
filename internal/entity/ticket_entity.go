package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is one processed help-desk request, kept for auditing and metrics.
type Ticket struct {
	Id                 uuid.UUID
	RequestText        string
	UserEmail          string
	Category           string
	Confidence         float64
	KeywordsMatched    []string
	Reasoning          string
	ShouldEscalate     bool
	MatchedRuleId      string
	EscalationLevel    string
	ContactInfo        string
	SLADeadline        *time.Time
	Answer             string
	ResponseConfidence float64
	CreatedAt          time.Time
}
