package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const troubleshootingJSON = `{
	"troubleshooting_steps": {
		"printer_not_working": {
			"category": "hardware_failure",
			"symptoms": ["no output", "error light blinking"],
			"steps": [
				"Check that the printer is powered on and connected to the network",
				"Clear the print queue and restart the print spooler service",
				"Reinstall the printer driver from the IT portal"
			],
			"escalation_trigger": "hardware error persists after driver reinstall",
			"escalation_contact": "hardware-support@company.com"
		}
	}
}`

const installationJSON = `{
	"software_guides": {
		"zoom": {
			"title": "Installing Zoom Desktop Client",
			"steps": [
				"Download the installer from the approved software portal",
				"Run the installer with your standard user account",
				"Sign in with your company SSO credentials"
			],
			"requirements": "Windows 10 or later, 4GB RAM"
		}
	}
}`

const categoriesJSON = `{
	"categories": {
		"password_reset": {
			"description": "Account access and password issues",
			"typical_resolution_time": "15 minutes",
			"common_issues": ["forgotten password", "locked account"]
		}
	}
}`

func TestParseTroubleshooting(t *testing.T) {
	docs, err := ParseTroubleshooting([]byte(troubleshootingJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) == 0 {
		t.Fatal("no documents parsed")
	}

	joined := joinContents(docs)
	for _, want := range []string{
		"printer_not_working",
		"1. Check that the printer is powered on",
		"error light blinking",
		"Escalate when: hardware error persists",
		"hardware-support@company.com",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("parsed content missing %q", want)
		}
	}
	for _, doc := range docs {
		if doc.DocType != DocTypeTroubleshooting {
			t.Errorf("DocType = %s, want %s", doc.DocType, DocTypeTroubleshooting)
		}
		if doc.Category != "hardware_failure" {
			t.Errorf("Category = %s, want hardware_failure", doc.Category)
		}
		if !strings.HasPrefix(doc.Source, "troubleshooting#printer_not_working") {
			t.Errorf("Source = %s, want troubleshooting#printer_not_working prefix", doc.Source)
		}
	}
}

func TestParseInstallationGuides(t *testing.T) {
	docs, err := ParseInstallationGuides([]byte(installationJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) == 0 {
		t.Fatal("no documents parsed")
	}

	joined := joinContents(docs)
	for _, want := range []string{"Installing Zoom Desktop Client", "approved software portal", "Windows 10 or later"} {
		if !strings.Contains(joined, want) {
			t.Errorf("parsed content missing %q", want)
		}
	}
	if docs[0].DocType != DocTypeInstallation {
		t.Errorf("DocType = %s, want %s", docs[0].DocType, DocTypeInstallation)
	}
}

func TestParseCategories(t *testing.T) {
	docs, err := ParseCategories([]byte(categoriesJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	doc := docs[0]
	if doc.Source != "categories#password_reset" {
		t.Errorf("Source = %s", doc.Source)
	}
	if !strings.Contains(doc.Content, "15 minutes") || !strings.Contains(doc.Content, "forgotten password") {
		t.Errorf("content incomplete: %q", doc.Content)
	}
}

func TestParseMarkdown(t *testing.T) {
	md := `# Acceptable Use Policy

Company devices are for business use. Limited personal use is permitted
as long as it does not interfere with work duties or company security.

## Software Installation

Only software from the approved catalog may be installed on company
devices. Requests for other software go through your manager.
`

	docs := ParseMarkdown("it_policies.md", []byte(md))
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if !strings.HasPrefix(docs[0].Source, "it_policies.md#Acceptable Use Policy") {
		t.Errorf("Source = %s", docs[0].Source)
	}
	if docs[0].DocType != DocTypePolicy {
		t.Errorf("DocType = %s, want %s", docs[0].DocType, DocTypePolicy)
	}
	if !strings.Contains(docs[1].Content, "approved catalog") {
		t.Errorf("second section content = %q", docs[1].Content)
	}
}

func TestParseMalformedJSON(t *testing.T) {
	if _, err := ParseTroubleshooting([]byte(`{"troubleshooting_steps": [`)); err == nil {
		t.Error("ParseTroubleshooting accepted malformed JSON")
	}
	if _, err := ParseInstallationGuides([]byte(`not json`)); err == nil {
		t.Error("ParseInstallationGuides accepted malformed JSON")
	}
}

func TestChunkContentDropsShortFragments(t *testing.T) {
	content := "Header\n\ntiny\n\n" + strings.Repeat("long enough section text ", 5)
	docs := chunkContent(content, "src", DocTypePolicy, "general")
	for _, doc := range docs {
		if len(doc.Content) < minChunkLength {
			t.Errorf("chunk under minimum length survived: %q", doc.Content)
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "troubleshooting_database.json", troubleshootingJSON)
	writeFile(t, dir, "categories.json", categoriesJSON)
	writeFile(t, dir, "it_policies.md", "# Passwords\n\nPasswords must be rotated every 90 days and never shared with anyone.")

	docs, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	types := map[string]bool{}
	for _, doc := range docs {
		types[doc.DocType] = true
	}
	for _, want := range []string{DocTypeTroubleshooting, DocTypeCategory, DocTypePolicy} {
		if !types[want] {
			t.Errorf("LoadDir missing doc type %s", want)
		}
	}
	// installation_guides.json absent: skipped, not an error
	if types[DocTypeInstallation] {
		t.Error("unexpected installation documents")
	}
}

func TestLoadDirMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "troubleshooting_database.json", "{broken")

	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func joinContents(docs []Document) string {
	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(doc.Content)
		b.WriteString("\n")
	}
	return b.String()
}
