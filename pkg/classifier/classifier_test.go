package classifier

import (
	"testing"
)

func TestClassify(t *testing.T) {
	c := MustNew(DefaultMinConfidence)

	tests := []struct {
		name          string
		text          string
		wantCategory  Category
		wantKeywords  []string
		wantReasoning string
	}{
		{
			name:         "password reset",
			text:         "I forgot my password and can't log in",
			wantCategory: CategoryPasswordReset,
			wantKeywords: []string{"password", "forgot"},
		},
		{
			name:          "empty request",
			text:          "",
			wantCategory:  CategoryUnknown,
			wantReasoning: "Empty or invalid request",
		},
		{
			name:          "whitespace only",
			text:          "   \t\n  ",
			wantCategory:  CategoryUnknown,
			wantReasoning: "Empty or invalid request",
		},
		{
			name:         "non-IT request",
			text:         "What is the cafeteria menu for lunch today?",
			wantCategory: CategoryNonITRequest,
		},
		{
			name:          "no IT signal",
			text:          "xyzzy plugh quux",
			wantCategory:  CategoryUnknown,
			wantReasoning: "No matching IT-related keywords or patterns found",
		},
		{
			name:         "security incident",
			text:         "I received a suspicious email on my work computer, I think I got hacked",
			wantCategory: CategorySecurityIncident,
			wantKeywords: []string{"suspicious"},
		},
		{
			name:         "network connectivity",
			text:         "The office wifi is down and I can't connect to the VPN",
			wantCategory: CategoryNetworkConnectivity,
			wantKeywords: []string{"wifi", "vpn"},
		},
		{
			name:         "hardware failure",
			text:         "My laptop screen is flickering and the keyboard stopped working",
			wantCategory: CategoryHardwareFailure,
			wantKeywords: []string{"laptop", "screen"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)

			if got.Category != tt.wantCategory {
				t.Errorf("Classify(%q) category = %s, want %s", tt.text, got.Category, tt.wantCategory)
			}
			if tt.wantReasoning != "" && got.Reasoning != tt.wantReasoning {
				t.Errorf("Classify(%q) reasoning = %q, want %q", tt.text, got.Reasoning, tt.wantReasoning)
			}
			for _, keyword := range tt.wantKeywords {
				if !containsString(got.KeywordsMatched, keyword) {
					t.Errorf("Classify(%q) keywords = %v, missing %q", tt.text, got.KeywordsMatched, keyword)
				}
			}
			if got.Category != CategoryUnknown && got.Category != CategoryNonITRequest {
				if got.Confidence < DefaultMinConfidence {
					t.Errorf("Classify(%q) confidence = %.2f, want >= %.2f", tt.text, got.Confidence, DefaultMinConfidence)
				}
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := MustNew(DefaultMinConfidence)
	text := "I forgot my password and can't log in to my work computer"

	first := c.Classify(text)
	for i := 0; i < 10; i++ {
		got := c.Classify(text)
		if got.Category != first.Category || got.Confidence != first.Confidence {
			t.Fatalf("run %d: got %s/%.2f, first run gave %s/%.2f",
				i, got.Category, got.Confidence, first.Category, first.Confidence)
		}
		if len(got.KeywordsMatched) != len(first.KeywordsMatched) {
			t.Fatalf("run %d: keyword count changed: %v vs %v", i, got.KeywordsMatched, first.KeywordsMatched)
		}
	}
}

func TestClassifyBelowThreshold(t *testing.T) {
	c, err := New(nil, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	// A single keyword match scores 1 -> confidence 0.35, under the 0.5
	// threshold here. The category degrades but the evidence is kept.
	got := c.Classify("vpn acting strange")
	if got.Category != CategoryUnknown {
		t.Errorf("category = %s, want %s", got.Category, CategoryUnknown)
	}
	if got.Confidence != 0.35 {
		t.Errorf("confidence = %.2f, want 0.35", got.Confidence)
	}
	if !containsString(got.KeywordsMatched, "vpn") {
		t.Errorf("keywords = %v, want to include vpn", got.KeywordsMatched)
	}
}

func TestScoreToConfidence(t *testing.T) {
	tests := []struct {
		score int
		want  float64
	}{
		{0, 0},
		{1, 0.35},
		{2, 0.55},
		{3, 0.65},
		{4, 0.75},
		{5, 0.80},
		{6, 0.85},
		{8, 0.89},
		{11, 0.95},
		{20, 0.95},
	}

	for _, tt := range tests {
		got := scoreToConfidence(tt.score)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("scoreToConfidence(%d) = %.4f, want %.4f", tt.score, got, tt.want)
		}
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	table := PatternTable{
		CategoryPasswordReset: {Keywords: []string{"password"}},
	}
	if _, err := New(table, DefaultMinConfidence); err != nil {
		t.Fatalf("valid table rejected: %v", err)
	}

	bad := PatternTable{
		CategoryPasswordReset: {Patterns: []string{"[unclosed"}},
	}
	if _, err := New(bad, DefaultMinConfidence); err == nil {
		t.Fatal("expected error for invalid regex pattern")
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
