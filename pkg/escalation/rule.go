package escalation

import (
	"errors"
	"fmt"
)

// Level names the team a request escalates to.
type Level string

const (
	LevelOne      Level = "level_1"
	LevelTwo      Level = "level_2"
	LevelThree    Level = "level_3"
	SecurityTeam  Level = "security_team"
	Management    Level = "management"
	VendorSupport Level = "vendor_support"
)

// CategoryWildcard matches any classification category.
const CategoryWildcard = "*"

// Condition field and operator names used in rule documents.
const (
	FieldCategory   = "category"
	FieldConfidence = "confidence"
	FieldKeyword    = "keyword"
	FieldPriority   = "priority"

	OpEquals      = "eq"
	OpLessThan    = "lt"
	OpGreaterThan = "gt"
	OpContainsAny = "contains_any"
)

// Condition is one trigger predicate of a rule. All of a rule's conditions
// must hold for the rule to match.
type Condition struct {
	Field     string   `json:"field"`
	Op        string   `json:"op"`
	Value     string   `json:"value,omitempty"`
	Threshold float64  `json:"threshold,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
}

// Rule is one configured escalation rule. Priority orders rule selection
// (lower wins); ties fall back to insertion order in the store.
type Rule struct {
	ID                string      `json:"-"`
	Category          string      `json:"category"`
	Conditions        []Condition `json:"trigger_conditions,omitempty"`
	Priority          int         `json:"priority"`
	Level             Level       `json:"escalation_level"`
	ContactInfo       string      `json:"contact_info"`
	ResponseTimeSLA   int         `json:"response_time_sla_minutes"`
	BusinessHoursOnly bool        `json:"business_hours_only,omitempty"`
}

// Store mutation errors.
var (
	ErrDuplicateID = errors.New("rule id already exists")
	ErrNotFound    = errors.New("rule not found")
)

// ValidationError reports which rule and field made a rule document invalid.
type ValidationError struct {
	RuleID string
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rule %q: missing or invalid field %q", e.RuleID, e.Field)
}

// Validate checks the fields a rule needs to be evaluable. Priority uses the
// convention that configured priorities start at 1, so zero means unset.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return &ValidationError{RuleID: r.ID, Field: "id"}
	}
	if r.Category == "" {
		return &ValidationError{RuleID: r.ID, Field: "category"}
	}
	if r.Priority <= 0 {
		return &ValidationError{RuleID: r.ID, Field: "priority"}
	}
	if r.Level == "" {
		return &ValidationError{RuleID: r.ID, Field: "escalation_level"}
	}
	if r.ContactInfo == "" {
		return &ValidationError{RuleID: r.ID, Field: "contact_info"}
	}
	if r.ResponseTimeSLA < 0 {
		return &ValidationError{RuleID: r.ID, Field: "response_time_sla_minutes"}
	}
	return nil
}
