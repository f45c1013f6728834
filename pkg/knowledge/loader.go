package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Document types stored in the knowledge base.
const (
	DocTypeTroubleshooting = "troubleshooting"
	DocTypeInstallation    = "installation"
	DocTypeCategory        = "category"
	DocTypePolicy          = "policy"
)

// minChunkLength drops fragments too short to be a useful retrieval unit.
const minChunkLength = 50

// Document is one parsed knowledge-base chunk, ready for embedding.
type Document struct {
	Content  string
	Source   string
	DocType  string
	Category string
}

type troubleshootingFile struct {
	TroubleshootingSteps map[string]struct {
		Category string   `json:"category"`
		Steps    []string `json:"steps"`
		Symptoms []string `json:"symptoms"`
		// Escalation hints travel with the guide text so the assembler can
		// surface them.
		EscalationTrigger string `json:"escalation_trigger"`
		EscalationContact string `json:"escalation_contact"`
	} `json:"troubleshooting_steps"`
}

type installationFile struct {
	SoftwareGuides map[string]struct {
		Title        string   `json:"title"`
		Steps        []string `json:"steps"`
		Requirements string   `json:"requirements"`
	} `json:"software_guides"`
}

type categoriesFile struct {
	Categories map[string]struct {
		Description           string   `json:"description"`
		TypicalResolutionTime string   `json:"typical_resolution_time"`
		CommonIssues          []string `json:"common_issues"`
	} `json:"categories"`
}

// ParseTroubleshooting converts a troubleshooting database JSON document into
// retrievable chunks.
func ParseTroubleshooting(data []byte) ([]Document, error) {
	var file troubleshootingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse troubleshooting file: %w", err)
	}

	var docs []Document
	for issue, details := range file.TroubleshootingSteps {
		var b strings.Builder
		fmt.Fprintf(&b, "Troubleshooting Guide: %s\n", issue)
		fmt.Fprintf(&b, "Problem: %s\nCategory: %s\n\n", issue, details.Category)
		b.WriteString("Troubleshooting Steps:\n")
		for i, step := range details.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		if len(details.Symptoms) > 0 {
			fmt.Fprintf(&b, "\nCommon Symptoms: %s", strings.Join(details.Symptoms, ", "))
		}
		if details.EscalationTrigger != "" {
			fmt.Fprintf(&b, "\nEscalate when: %s (contact %s)", details.EscalationTrigger, details.EscalationContact)
		}

		docs = append(docs, chunkContent(b.String(), "troubleshooting#"+issue, DocTypeTroubleshooting, details.Category)...)
	}
	return docs, nil
}

// ParseInstallationGuides converts an installation guides JSON document into
// retrievable chunks.
func ParseInstallationGuides(data []byte) ([]Document, error) {
	var file installationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse installation guides: %w", err)
	}

	var docs []Document
	for app, guide := range file.SoftwareGuides {
		var b strings.Builder
		fmt.Fprintf(&b, "Software Installation: %s\n%s\n", app, guide.Title)
		fmt.Fprintf(&b, "Application: %s\nType: Installation Guide\n\n", app)
		b.WriteString("Installation Steps:\n")
		for i, step := range guide.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		if guide.Requirements != "" {
			fmt.Fprintf(&b, "\nSystem Requirements: %s", guide.Requirements)
		}

		docs = append(docs, chunkContent(b.String(), "installation#"+app, DocTypeInstallation, app)...)
	}
	return docs, nil
}

// ParseCategories converts the category metadata JSON document into one chunk
// per category.
func ParseCategories(data []byte) ([]Document, error) {
	var file categoriesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	var docs []Document
	for cat, info := range file.Categories {
		var b strings.Builder
		fmt.Fprintf(&b, "Support Category: %s\n", cat)
		fmt.Fprintf(&b, "Description: %s\n", info.Description)
		fmt.Fprintf(&b, "Typical Resolution Time: %s\n", info.TypicalResolutionTime)
		if len(info.CommonIssues) > 0 {
			fmt.Fprintf(&b, "Common Issues: %s", strings.Join(info.CommonIssues, ", "))
		}

		docs = append(docs, Document{
			Content:  b.String(),
			Source:   "categories#" + cat,
			DocType:  DocTypeCategory,
			Category: cat,
		})
	}
	return docs, nil
}

var markdownHeaderRe = regexp.MustCompile(`(?m)^#{1,3}\s+(.+)$`)

// ParseMarkdown splits a markdown policy document into per-section chunks.
func ParseMarkdown(name string, data []byte) []Document {
	content := string(data)

	headers := markdownHeaderRe.FindAllStringSubmatchIndex(content, -1)
	if len(headers) == 0 {
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return chunkContent(content, name, DocTypePolicy, "general")
	}

	var docs []Document
	for i, match := range headers {
		title := strings.TrimSpace(content[match[2]:match[3]])
		start := match[1]
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		body := strings.TrimSpace(content[start:end])
		if body == "" {
			continue
		}
		full := fmt.Sprintf("# %s\n\n%s", title, body)
		docs = append(docs, chunkContent(full, name+"#"+title, DocTypePolicy, title)...)
	}
	return docs
}

var numberedLineRe = regexp.MustCompile(`^\d+\.`)

// splitNumbered breaks content at lines that start a numbered step, keeping
// the step with the lines that follow it.
func splitNumbered(content string) []string {
	var sections []string
	var current strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if numberedLineRe.MatchString(line) && current.Len() > 0 {
			sections = append(sections, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		sections = append(sections, current.String())
	}
	return sections
}

// chunkContent splits large content into meaningful sections so each embedded
// chunk answers a narrower question.
func chunkContent(content, source, docType, category string) []Document {
	var sections []string
	switch {
	case strings.Contains(content, "\n\n"):
		for _, s := range strings.Split(content, "\n\n") {
			if strings.TrimSpace(s) != "" {
				sections = append(sections, strings.TrimSpace(s))
			}
		}
	case numberedLineRe.MatchString(content) || strings.Contains(content, "\n1."):
		sections = splitNumbered(content)
	default:
		sections = []string{content}
	}

	var docs []Document
	for i, section := range sections {
		if len(section) < minChunkLength {
			continue
		}
		chunkSource := source
		if len(sections) > 1 {
			chunkSource = fmt.Sprintf("%s_chunk_%d", source, i)
		}
		docs = append(docs, Document{
			Content:  section,
			Source:   chunkSource,
			DocType:  docType,
			Category: category,
		})
	}
	return docs
}

// LoadDir parses every recognized knowledge file in dir. Missing files are
// skipped; a malformed file is an error, not a silent drop.
func LoadDir(dir string) ([]Document, error) {
	type fileSpec struct {
		name  string
		parse func([]byte) ([]Document, error)
	}
	files := []fileSpec{
		{"troubleshooting_database.json", ParseTroubleshooting},
		{"installation_guides.json", ParseInstallationGuides},
		{"categories.json", ParseCategories},
	}

	var docs []Document
	for _, spec := range files {
		data, err := os.ReadFile(filepath.Join(dir, spec.name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		parsed, err := spec.parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.name, err)
		}
		docs = append(docs, parsed...)
	}

	markdowns, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	for _, path := range markdowns {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, ParseMarkdown(filepath.Base(path), data)...)
	}

	return docs, nil
}
