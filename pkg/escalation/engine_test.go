package escalation

import (
	"strings"
	"testing"
	"time"
)

func defaultsStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	for _, r := range DefaultRules() {
		if err := s.Add(r); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

// Tuesday 10:00, inside default business hours.
var insideHours = time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)

// Tuesday 22:00, outside default business hours.
var outsideHours = time.Date(2025, time.March, 4, 22, 0, 0, 0, time.UTC)

func TestEvaluateDefaults(t *testing.T) {
	engine := NewEngine(defaultsStore(t), DefaultBusinessHours, nil)

	tests := []struct {
		name         string
		input        EvalInput
		wantEscalate bool
		wantRule     string
		wantLevel    Level
	}{
		{
			name: "security incident outranks keyword rules",
			input: EvalInput{
				Text:       "our server is down after a security breach",
				Category:   "security_incident",
				Confidence: 0.9,
				Now:        insideHours,
			},
			wantEscalate: true,
			wantRule:     "security-incident",
			wantLevel:    SecurityTeam,
		},
		{
			name: "system outage keyword on any category",
			input: EvalInput{
				Text:       "the email system is down for everyone",
				Category:   "email_configuration",
				Confidence: 0.8,
				Now:        insideHours,
			},
			wantEscalate: true,
			wantRule:     "system-outage",
			wantLevel:    LevelThree,
		},
		{
			name: "critical priority hint with low confidence",
			input: EvalInput{
				Text:       "everything is broken please help",
				Category:   "unknown",
				Confidence: 0.2,
				Priority:   "critical",
				Now:        insideHours,
			},
			wantEscalate: true,
			wantRule:     "critical-unclassified",
		},
		{
			name: "hardware failure category match",
			input: EvalInput{
				Text:       "my laptop screen is flickering",
				Category:   "hardware_failure",
				Confidence: 0.8,
				Now:        insideHours,
			},
			wantEscalate: true,
			wantRule:     "hardware-failure",
			wantLevel:    LevelTwo,
		},
		{
			name: "vip keyword",
			input: EvalInput{
				Text:       "the CEO cannot open his email",
				Category:   "email_configuration",
				Confidence: 0.7,
				Now:        insideHours,
			},
			wantEscalate: true,
			wantRule:     "vip-user",
		},
		{
			name: "confident routine request does not escalate",
			input: EvalInput{
				Text:       "how do I install zoom on my work laptop",
				Category:   "software_installation",
				Confidence: 0.85,
				Now:        insideHours,
			},
			wantEscalate: false,
		},
		{
			name: "low confidence falls through to level 2",
			input: EvalInput{
				Text:       "something is odd with my machine",
				Category:   "unknown",
				Confidence: 0.1,
				Now:        insideHours,
			},
			wantEscalate: true,
			wantRule:     "low-confidence",
			wantLevel:    LevelTwo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Evaluate(tt.input)

			if got.ShouldEscalate != tt.wantEscalate {
				t.Fatalf("ShouldEscalate = %v, want %v (rule %s)", got.ShouldEscalate, tt.wantEscalate, got.MatchedRuleID)
			}
			if !tt.wantEscalate {
				return
			}
			if got.MatchedRuleID != tt.wantRule {
				t.Errorf("MatchedRuleID = %s, want %s", got.MatchedRuleID, tt.wantRule)
			}
			if tt.wantLevel != "" && got.Level != tt.wantLevel {
				t.Errorf("Level = %s, want %s", got.Level, tt.wantLevel)
			}
		})
	}
}

func TestEvaluateSLADeadline(t *testing.T) {
	engine := NewEngine(defaultsStore(t), DefaultBusinessHours, nil)

	got := engine.Evaluate(EvalInput{
		Text:       "phishing attack on my account",
		Category:   "security_incident",
		Confidence: 0.9,
		Now:        insideHours,
	})

	if !got.ShouldEscalate {
		t.Fatal("expected escalation")
	}
	wantDeadline := insideHours.Add(15 * time.Minute)
	if !got.SLADeadline.Equal(wantDeadline) {
		t.Errorf("SLADeadline = %v, want %v", got.SLADeadline, wantDeadline)
	}
	if got.NextBusinessDay {
		t.Error("NextBusinessDay set for a rule without business hours restriction")
	}
}

func TestEvaluateBusinessHoursOnly(t *testing.T) {
	engine := NewEngine(defaultsStore(t), DefaultBusinessHours, nil)

	input := EvalInput{
		Text:       "something vague",
		Category:   "unknown",
		Confidence: 0.1,
	}

	input.Now = insideHours
	if got := engine.Evaluate(input); got.NextBusinessDay {
		t.Error("NextBusinessDay set during business hours")
	}

	input.Now = outsideHours
	got := engine.Evaluate(input)
	if got.MatchedRuleID != "low-confidence" {
		t.Fatalf("MatchedRuleID = %s, want low-confidence", got.MatchedRuleID)
	}
	if !got.NextBusinessDay {
		t.Error("NextBusinessDay not set outside business hours")
	}
}

func TestEvaluatePriorityTieBreaksOnInsertion(t *testing.T) {
	s := NewStore()
	first := validRule("first", 1)
	first.Category = CategoryWildcard
	second := validRule("second", 1)
	second.Category = CategoryWildcard
	if err := s.Add(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(second); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(s, DefaultBusinessHours, nil)
	got := engine.Evaluate(EvalInput{Category: "anything", Now: insideHours})
	if got.MatchedRuleID != "first" {
		t.Errorf("MatchedRuleID = %s, want first (insertion order tie-break)", got.MatchedRuleID)
	}
}

func TestEvaluateSkipsMalformedRule(t *testing.T) {
	s := NewStore()
	broken := validRule("broken", 1)
	broken.Category = CategoryWildcard
	broken.Priority = 0 // unset by convention
	if err := s.Add(broken); err != nil {
		t.Fatal(err)
	}
	good := validRule("good", 2)
	good.Category = CategoryWildcard
	if err := s.Add(good); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(s, DefaultBusinessHours, nil)
	got := engine.Evaluate(EvalInput{Category: "anything", Now: insideHours})

	if got.MatchedRuleID != "good" {
		t.Errorf("MatchedRuleID = %s, want good", got.MatchedRuleID)
	}
	if len(got.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %v, want one skip entry", got.Diagnostics)
	}
	if !strings.Contains(got.Diagnostics[0], "broken") || !strings.Contains(got.Diagnostics[0], "priority") {
		t.Errorf("Diagnostics[0] = %q, want rule id and field name", got.Diagnostics[0])
	}
}

func TestEvaluateNoMatch(t *testing.T) {
	s := NewStore()
	rule := validRule("hw", 1)
	if err := s.Add(rule); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(s, DefaultBusinessHours, nil)
	got := engine.Evaluate(EvalInput{
		Category:   "password_reset",
		Confidence: 0.9,
		Now:        insideHours,
	})

	if got.ShouldEscalate {
		t.Errorf("ShouldEscalate = true for non-matching category, rule %s", got.MatchedRuleID)
	}
	if got.MatchedRuleID != "" {
		t.Errorf("MatchedRuleID = %s, want empty", got.MatchedRuleID)
	}
}

func TestEvaluateUnknownConditionFailsClosed(t *testing.T) {
	s := NewStore()
	rule := validRule("odd", 1)
	rule.Category = CategoryWildcard
	rule.Conditions = []Condition{{Field: "sentiment", Op: OpEquals, Value: "angry"}}
	if err := s.Add(rule); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(s, DefaultBusinessHours, nil)
	got := engine.Evaluate(EvalInput{Category: "anything", Confidence: 0.9, Now: insideHours})
	if got.ShouldEscalate {
		t.Error("rule with unevaluable condition fired")
	}
}

func TestBusinessHoursContains(t *testing.T) {
	h := BusinessHours{StartHour: 9, EndHour: 17}

	tests := []struct {
		hour int
		want bool
	}{
		{8, false},
		{9, true},
		{12, true},
		{16, true},
		{17, false},
		{22, false},
	}

	for _, tt := range tests {
		ts := time.Date(2025, time.March, 4, tt.hour, 30, 0, 0, time.UTC)
		if got := h.Contains(ts); got != tt.want {
			t.Errorf("Contains(%02d:30) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}
