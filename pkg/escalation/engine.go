package escalation

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// BusinessHours bounds the working day for rules flagged business-hours-only.
// EndHour is exclusive: {9, 17} means 09:00 up to but not including 17:00.
type BusinessHours struct {
	StartHour int
	EndHour   int
}

// DefaultBusinessHours is 9 to 5.
var DefaultBusinessHours = BusinessHours{StartHour: 9, EndHour: 17}

// Contains reports whether t falls inside the working day.
func (h BusinessHours) Contains(t time.Time) bool {
	hour := t.Hour()
	return hour >= h.StartHour && hour < h.EndHour
}

// EvalInput carries the signals a rule can test against.
type EvalInput struct {
	Text       string
	Category   string
	Confidence float64
	// Priority is an optional caller-supplied urgency hint ("critical" etc.),
	// distinct from rule priority.
	Priority string
	// Now overrides the evaluation clock; the zero value means time.Now().
	Now time.Time
}

// Decision is the outcome of one evaluation pass. It is derived state, never
// persisted.
type Decision struct {
	ShouldEscalate  bool      `json:"should_escalate"`
	MatchedRuleID   string    `json:"matched_rule_id,omitempty"`
	Level           Level     `json:"escalation_level,omitempty"`
	ContactInfo     string    `json:"contact_info,omitempty"`
	Priority        int       `json:"priority,omitempty"`
	ResponseTimeSLA int       `json:"response_time_sla_minutes,omitempty"`
	SLADeadline     time.Time `json:"sla_deadline,omitempty"`
	// NextBusinessDay is set when the matched rule is business-hours-only and
	// the evaluation happened outside business hours.
	NextBusinessDay bool `json:"next_business_day,omitempty"`
	// Diagnostics records rules skipped as malformed during this pass.
	Diagnostics []string `json:"-"`
}

// Engine evaluates classified requests against the rule store. Evaluation is a
// read-only pass over a store snapshot; one malformed rule is skipped with a
// diagnostic, never a failure.
type Engine struct {
	store  *Store
	hours  BusinessHours
	logger *log.Logger
}

// NewEngine creates an engine over the given store. A nil logger silences
// skip diagnostics (they are still returned on the Decision).
func NewEngine(store *Store, hours BusinessHours, logger *log.Logger) *Engine {
	if hours.EndHour <= hours.StartHour {
		hours = DefaultBusinessHours
	}
	return &Engine{store: store, hours: hours, logger: logger}
}

// Evaluate selects the matching rule with the lowest priority value, ties
// broken by insertion order. No match means no escalation.
func (e *Engine) Evaluate(input EvalInput) Decision {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	var decision Decision
	text := strings.ToLower(input.Text)

	// List is already priority-then-insertion ordered, so the first match is
	// the selected rule.
	for _, rule := range e.store.List() {
		if err := rule.Validate(); err != nil {
			diag := fmt.Sprintf("skipped malformed rule: %v", err)
			decision.Diagnostics = append(decision.Diagnostics, diag)
			if e.logger != nil {
				e.logger.Printf("[WARN] %s", diag)
			}
			continue
		}
		if !e.matches(rule, input, text) {
			continue
		}

		decision.ShouldEscalate = true
		decision.MatchedRuleID = rule.ID
		decision.Level = rule.Level
		decision.ContactInfo = rule.ContactInfo
		decision.Priority = rule.Priority
		decision.ResponseTimeSLA = rule.ResponseTimeSLA
		decision.SLADeadline = now.Add(time.Duration(rule.ResponseTimeSLA) * time.Minute)
		if rule.BusinessHoursOnly && !e.hours.Contains(now) {
			decision.NextBusinessDay = true
		}
		return decision
	}

	return decision
}

func (e *Engine) matches(rule Rule, input EvalInput, text string) bool {
	if rule.Category != CategoryWildcard && rule.Category != input.Category {
		return false
	}
	for _, cond := range rule.Conditions {
		if !evaluateCondition(cond, input, text) {
			return false
		}
	}
	return true
}

func evaluateCondition(cond Condition, input EvalInput, text string) bool {
	switch cond.Field {
	case FieldCategory:
		return cond.Op == OpEquals && input.Category == cond.Value
	case FieldConfidence:
		switch cond.Op {
		case OpLessThan:
			return input.Confidence < cond.Threshold
		case OpGreaterThan:
			return input.Confidence > cond.Threshold
		}
		return false
	case FieldKeyword:
		if cond.Op != OpContainsAny {
			return false
		}
		for _, keyword := range cond.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				return true
			}
		}
		return false
	case FieldPriority:
		return cond.Op == OpEquals && input.Priority == cond.Value
	}
	// Unknown fields fail closed: a rule with a condition the engine cannot
	// evaluate must not fire.
	return false
}
