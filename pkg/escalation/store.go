package escalation

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
)

type storedRule struct {
	rule Rule
	seq  int
}

// Store holds escalation rules keyed by ID. A single mutex guards mutation and
// List copies under the lock, so an evaluation pass never observes a
// partially applied Add/Update/Remove.
type Store struct {
	mu      sync.Mutex
	rules   map[string]*storedRule
	nextSeq int
}

// NewStore returns an empty rule store.
func NewStore() *Store {
	return &Store{rules: make(map[string]*storedRule)}
}

// Add inserts a rule. It fails with ErrDuplicateID if the ID is taken; it does
// not validate rule contents (the engine skips unevaluable rules, and Load is
// the strict path for documents).
func (s *Store) Add(rule Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[rule.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, rule.ID)
	}
	s.rules[rule.ID] = &storedRule{rule: rule, seq: s.nextSeq}
	s.nextSeq++
	return nil
}

// Update replaces the rule stored under id, keeping its insertion position.
func (s *Store) Update(id string, rule Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rules[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	rule.ID = id
	existing.rule = rule
	return nil
}

// Remove deletes the rule stored under id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.rules, id)
	return nil
}

// Get returns a copy of the rule stored under id.
func (s *Store) Get(id string) (Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rules[id]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return stored.rule, nil
}

// List returns a snapshot of all rules ordered by priority ascending, ties
// broken by insertion order. The returned slice is owned by the caller.
func (s *Store) List() []Rule {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*storedRule, 0, len(s.rules))
	for _, stored := range s.rules {
		snapshot = append(snapshot, stored)
	}
	sort.SliceStable(snapshot, func(i, j int) bool {
		if snapshot[i].rule.Priority != snapshot[j].rule.Priority {
			return snapshot[i].rule.Priority < snapshot[j].rule.Priority
		}
		return snapshot[i].seq < snapshot[j].seq
	})

	rules := make([]Rule, len(snapshot))
	for i, stored := range snapshot {
		rules[i] = stored.rule
	}
	return rules
}

// Len returns the number of stored rules.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rules)
}

// ruleDocument is the wire form of a rule. Pointer fields distinguish a
// missing key from a zero value during Load validation.
type ruleDocument struct {
	Category          *string     `json:"category"`
	Conditions        []Condition `json:"trigger_conditions,omitempty"`
	Priority          *int        `json:"priority"`
	Level             *Level      `json:"escalation_level"`
	ContactInfo       *string     `json:"contact_info"`
	ResponseTimeSLA   *int        `json:"response_time_sla_minutes"`
	BusinessHoursOnly bool        `json:"business_hours_only,omitempty"`
}

// Load replaces the store contents with the rules in a JSON document mapping
// id to rule. Every rule is validated before any is installed, so a malformed
// document leaves the store untouched. Unknown fields are ignored.
func (s *Store) Load(r io.Reader) error {
	var docs map[string]ruleDocument
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return fmt.Errorf("decode rule document: %w", err)
	}

	// JSON object keys carry no order, so assign insertion sequence by sorted
	// ID to keep tie-breaking deterministic across loads.
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rules := make([]Rule, 0, len(docs))
	for _, id := range ids {
		doc := docs[id]
		rule, err := doc.toRule(id)
		if err != nil {
			return err
		}
		rules = append(rules, rule)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = make(map[string]*storedRule, len(rules))
	s.nextSeq = 0
	for _, rule := range rules {
		s.rules[rule.ID] = &storedRule{rule: rule, seq: s.nextSeq}
		s.nextSeq++
	}
	return nil
}

// Save writes the store contents as a JSON document mapping id to rule.
func (s *Store) Save(w io.Writer) error {
	rules := s.List()

	docs := make(map[string]Rule, len(rules))
	for _, rule := range rules {
		docs[rule.ID] = rule
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func (d ruleDocument) toRule(id string) (Rule, error) {
	if d.Category == nil || *d.Category == "" {
		return Rule{}, &ValidationError{RuleID: id, Field: "category"}
	}
	if d.Priority == nil {
		return Rule{}, &ValidationError{RuleID: id, Field: "priority"}
	}
	if d.Level == nil || *d.Level == "" {
		return Rule{}, &ValidationError{RuleID: id, Field: "escalation_level"}
	}
	if d.ContactInfo == nil || *d.ContactInfo == "" {
		return Rule{}, &ValidationError{RuleID: id, Field: "contact_info"}
	}
	if d.ResponseTimeSLA == nil || *d.ResponseTimeSLA < 0 {
		return Rule{}, &ValidationError{RuleID: id, Field: "response_time_sla_minutes"}
	}

	rule := Rule{
		ID:                id,
		Category:          *d.Category,
		Conditions:        d.Conditions,
		Priority:          *d.Priority,
		Level:             *d.Level,
		ContactInfo:       *d.ContactInfo,
		ResponseTimeSLA:   *d.ResponseTimeSLA,
		BusinessHoursOnly: d.BusinessHoursOnly,
	}
	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}
