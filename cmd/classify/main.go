package main

import (
	"flag"
	"os"
	"strings"

	"helpdesk-ai-be/pkg/classifier"
	"helpdesk-ai-be/pkg/escalation"

	"github.com/fatih/color"
)

// One-shot classification from the command line, for tuning pattern tables
// without a running server. Uses the built-in escalation defaults.
func main() {
	priority := flag.String("priority", "", "urgency hint (e.g. critical)")
	minConfidence := flag.Float64("min-confidence", classifier.DefaultMinConfidence, "classification confidence threshold")
	flag.Parse()

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		color.Red("Usage: classify [-priority critical] <request text>")
		os.Exit(1)
	}

	cls := classifier.MustNew(*minConfidence)
	result := cls.Classify(text)

	color.Cyan("Request: %s", text)
	color.Green("Category:   %s", result.Category)
	color.Green("Confidence: %.2f", result.Confidence)
	if len(result.KeywordsMatched) > 0 {
		color.Green("Keywords:   %s", strings.Join(result.KeywordsMatched, ", "))
	}
	color.Green("Reasoning:  %s", result.Reasoning)

	store := escalation.NewStore()
	for _, rule := range escalation.DefaultRules() {
		if err := store.Add(rule); err != nil {
			color.Red("Failed to load default rules: %v", err)
			os.Exit(1)
		}
	}
	engine := escalation.NewEngine(store, escalation.DefaultBusinessHours, nil)

	decision := engine.Evaluate(escalation.EvalInput{
		Text:       text,
		Category:   string(result.Category),
		Confidence: result.Confidence,
		Priority:   *priority,
	})

	if !decision.ShouldEscalate {
		color.Yellow("Escalation: none")
		return
	}

	color.Yellow("Escalation: %s (rule %s)", decision.Level, decision.MatchedRuleID)
	color.Yellow("Contact:    %s", decision.ContactInfo)
	color.Yellow("SLA:        %d minutes (respond by %s)", decision.ResponseTimeSLA, decision.SLADeadline.Format("15:04 Mon"))
	if decision.NextBusinessDay {
		color.Yellow("Note:       outside business hours, response starts next business day")
	}
}
