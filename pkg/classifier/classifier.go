package classifier

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	keywordWeight = 1
	patternWeight = 3

	// DefaultMinConfidence is the threshold below which a classification
	// degrades to CategoryUnknown.
	DefaultMinConfidence = 0.3
)

// Result is the immutable outcome of classifying one request.
type Result struct {
	Category        Category `json:"category"`
	Confidence      float64  `json:"confidence"`
	KeywordsMatched []string `json:"keywords_matched"`
	Reasoning       string   `json:"reasoning"`
}

type compiledCategory struct {
	category        Category
	keywords        []string
	patterns        []*regexp.Regexp
	patternSources  []string
	requiredContext []string
}

// Classifier maps free-text support requests to categories using per-category
// keyword and regex tables. It is safe for concurrent use: all state is
// immutable after construction.
type Classifier struct {
	categories    []compiledCategory
	nonITPatterns []*regexp.Regexp
	minConfidence float64
}

// New builds a classifier from the given pattern table. A nil table uses the
// built-in defaults. Invalid regex patterns are reported, not silently dropped.
func New(table PatternTable, minConfidence float64) (*Classifier, error) {
	if table == nil {
		table = DefaultPatternTable()
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	c := &Classifier{minConfidence: minConfidence}

	for _, cat := range categoryOrder {
		patterns, ok := table[cat]
		if !ok {
			continue
		}
		compiled := compiledCategory{
			category:        cat,
			keywords:        lowerAll(patterns.Keywords),
			requiredContext: lowerAll(patterns.RequiredContext),
		}
		for _, src := range patterns.Patterns {
			re, err := regexp.Compile(src)
			if err != nil {
				return nil, fmt.Errorf("category %s: compile pattern %q: %w", cat, src, err)
			}
			compiled.patterns = append(compiled.patterns, re)
			compiled.patternSources = append(compiled.patternSources, src)
		}
		c.categories = append(c.categories, compiled)
	}

	for _, src := range nonITPatterns {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compile non-IT pattern %q: %w", src, err)
		}
		c.nonITPatterns = append(c.nonITPatterns, re)
	}

	return c, nil
}

// MustNew is New for the default table; it panics only on a broken built-in
// pattern, which is a programming error.
func MustNew(minConfidence float64) *Classifier {
	c, err := New(nil, minConfidence)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify maps text to a category with a confidence score and the keywords
// that matched. It never fails: malformed or empty input degrades to
// CategoryUnknown with confidence 0.
func (c *Classifier) Classify(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{
			Category:        CategoryUnknown,
			Confidence:      0,
			KeywordsMatched: []string{},
			Reasoning:       "Empty or invalid request",
		}
	}

	lower := strings.ToLower(trimmed)

	if c.isNonIT(lower) {
		return Result{
			Category:        CategoryNonITRequest,
			Confidence:      0,
			KeywordsMatched: []string{},
			Reasoning:       "Non-IT related request - outside scope of IT support",
		}
	}

	var (
		bestCategory Category
		bestScore    int
		bestKeywords []string
	)

	// Fixed iteration order: a later category never displaces an earlier one
	// on an equal score, so results are reproducible.
	for _, cat := range c.categories {
		if !hasContext(lower, cat.requiredContext) {
			continue
		}

		score := 0
		var matched []string
		for _, keyword := range cat.keywords {
			if strings.Contains(lower, keyword) {
				score += keywordWeight
				matched = append(matched, keyword)
			}
		}
		for i, re := range cat.patterns {
			if re.MatchString(lower) {
				score += patternWeight
				matched = append(matched, "pattern: "+cat.patternSources[i])
			}
		}

		if score > bestScore {
			bestCategory = cat.category
			bestScore = score
			bestKeywords = matched
		}
	}

	if bestScore == 0 {
		return Result{
			Category:        CategoryUnknown,
			Confidence:      0,
			KeywordsMatched: []string{},
			Reasoning:       "No matching IT-related keywords or patterns found",
		}
	}

	confidence := scoreToConfidence(bestScore)
	reasoning := fmt.Sprintf("Matched %d IT-related indicators for %s", bestScore, bestCategory)

	category := bestCategory
	if confidence < c.minConfidence {
		// Keep the runner-up evidence for diagnostics, but the category is
		// too uncertain to act on.
		category = CategoryUnknown
	}

	return Result{
		Category:        category,
		Confidence:      confidence,
		KeywordsMatched: bestKeywords,
		Reasoning:       reasoning,
	}
}

// MinConfidence returns the configured degradation threshold.
func (c *Classifier) MinConfidence() float64 {
	return c.minConfidence
}

func (c *Classifier) isNonIT(lower string) bool {
	hits := 0
	for _, indicator := range nonITIndicators {
		if strings.Contains(lower, indicator) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	for _, re := range c.nonITPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// scoreToConfidence maps a weighted match score to [0,1]. The step table comes
// from observed help-desk data: pattern hits dominate, so scores climb fast.
func scoreToConfidence(score int) float64 {
	var confidence float64
	switch {
	case score >= 6:
		confidence = 0.85 + float64(score-6)*0.02
		if confidence > 0.95 {
			confidence = 0.95
		}
	case score >= 4:
		confidence = 0.75 + float64(score-4)*0.05
	case score >= 2:
		confidence = 0.55 + float64(score-2)*0.10
	case score == 1:
		confidence = 0.35
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func hasContext(lower string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, term := range required {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}
