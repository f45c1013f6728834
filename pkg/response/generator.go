package response

import (
	"context"
	"fmt"
	"log"
	"strings"

	"helpdesk-ai-be/pkg/classifier"
	"helpdesk-ai-be/pkg/escalation"
	"helpdesk-ai-be/pkg/knowledge"
	"helpdesk-ai-be/pkg/llm"
)

// AssembleInput bundles everything the final answer is built from.
type AssembleInput struct {
	Query      string
	Category   classifier.Category
	Snippets   []knowledge.Snippet
	Escalation escalation.Decision
}

// Result is the assembled answer with its confidence and the sources used.
type Result struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

// quality indicators scored against the generated answer text.
var qualityIndicators = map[string][]string{
	"step_by_step":        {"step", "steps", "follow", "first", "then", "next", "finally"},
	"specific_urls":       {"http", "www", ".com", "portal", "website"},
	"escalation_guidance": {"contact", "escalate", "support", "help desk", "if", "when"},
}

// Generator assembles the final response from category, knowledge snippets and
// the escalation decision. A nil LLM provider degrades to templated answers.
type Generator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewGenerator(provider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{provider: provider, logger: logger}
}

// Assemble builds the final response text. It never fails: LLM errors fall
// back to the templated answer.
func (g *Generator) Assemble(ctx context.Context, in AssembleInput) Result {
	answer := g.generate(ctx, in)

	confidence := responseConfidence(in.Snippets, answer)

	if in.Escalation.ShouldEscalate {
		answer += "\n\n" + escalationNotice(in.Escalation)
	}

	sources := make([]string, 0, len(in.Snippets))
	for _, s := range in.Snippets {
		sources = append(sources, s.Source)
	}

	return Result{
		Answer:     answer,
		Confidence: confidence,
		Sources:    sources,
	}
}

func (g *Generator) generate(ctx context.Context, in AssembleInput) string {
	if len(in.Snippets) == 0 {
		return fallbackAnswer
	}
	if g.provider == nil {
		return templatedAnswer(in.Snippets)
	}

	prompt := buildPrompt(in.Query, in.Category, in.Snippets)

	answer, err := g.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		if g.logger != nil {
			g.logger.Printf("[WARN] Response generation failed, using template fallback: %v", err)
		}
		return templatedAnswer(in.Snippets)
	}
	return strings.TrimSpace(answer)
}

// buildPrompt organizes snippets by document type and fills the category
// template.
func buildPrompt(query string, category classifier.Category, snippets []knowledge.Snippet) string {
	byType := make(map[string][]knowledge.Snippet)
	var typeOrder []string
	limit := len(snippets)
	if limit > 5 {
		limit = 5
	}
	for _, s := range snippets[:limit] {
		if _, seen := byType[s.DocType]; !seen {
			typeOrder = append(typeOrder, s.DocType)
		}
		byType[s.DocType] = append(byType[s.DocType], s)
	}

	var contextBuilder strings.Builder
	for _, docType := range typeOrder {
		fmt.Fprintf(&contextBuilder, "\n=== %s INFORMATION ===\n", strings.ToUpper(docType))
		for _, s := range byType[docType] {
			fmt.Fprintf(&contextBuilder, "Source: %s\n%s\n\n", s.Source, s.Content)
		}
	}

	template := promptTemplates[TemplateFor(category)]
	return fmt.Sprintf(template, contextBuilder.String(), query)
}

// templatedAnswer produces a deterministic answer straight from the best
// snippets when no LLM is available.
func templatedAnswer(snippets []knowledge.Snippet) string {
	var b strings.Builder
	b.WriteString("Based on the knowledge base, the following may help:\n")
	limit := len(snippets)
	if limit > 3 {
		limit = 3
	}
	for _, s := range snippets[:limit] {
		fmt.Fprintf(&b, "\n[%s]\n%s\n", s.Source, s.Content)
	}
	b.WriteString("\nIf these steps do not resolve the issue, contact IT support.")
	return b.String()
}

func escalationNotice(d escalation.Decision) string {
	notice := fmt.Sprintf(
		"This request has been escalated to %s (%s). Expected response within %d minutes.",
		d.Level, d.ContactInfo, d.ResponseTimeSLA,
	)
	if d.NextBusinessDay {
		notice += " Note: outside business hours, response will begin next business day."
	}
	return notice
}

// contextQuality scores retrieved context on relevance, completeness
// (document type diversity) and specificity (content volume).
func contextQuality(snippets []knowledge.Snippet) (relevance, completeness, specificity float64) {
	if len(snippets) == 0 {
		return 0, 0, 0
	}

	top := len(snippets)
	if top > 3 {
		top = 3
	}
	var sum float64
	for _, s := range snippets[:top] {
		sum += s.Relevance
	}
	relevance = sum / float64(top)

	types := make(map[string]bool)
	for _, s := range snippets {
		types[s.DocType] = true
	}
	completeness = float64(len(types)) / 3
	if completeness > 1 {
		completeness = 1
	}

	var totalLen int
	for _, s := range snippets[:top] {
		totalLen += len(s.Content)
	}
	specificity = float64(totalLen) / 1000
	if specificity > 1 {
		specificity = 1
	}
	return relevance, completeness, specificity
}

// responseConfidence combines context quality with indicators of a usable
// answer, clamped to [0,1].
func responseConfidence(snippets []knowledge.Snippet, answer string) float64 {
	if len(snippets) == 0 {
		return 0.1
	}

	relevance, completeness, specificity := contextQuality(snippets)
	confidence := relevance*0.5 + completeness*0.3 + specificity*0.2

	lower := strings.ToLower(answer)
	if containsAny(lower, qualityIndicators["step_by_step"]) {
		confidence += 0.15
	}
	if containsAny(lower, qualityIndicators["specific_urls"]) {
		confidence += 0.10
	}
	if containsAny(lower, qualityIndicators["escalation_guidance"]) {
		confidence += 0.10
	}
	if len(answer) >= 50 && len(answer) <= 800 {
		confidence += 0.05
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
