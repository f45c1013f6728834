package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// CategoryPatterns is the declarative matching table for one category.
// Keywords are matched as case-insensitive substrings (weight 1 each),
// Patterns as regular expressions (weight 3 each). RequiredContext lists terms
// of which at least one must be present for the category to be considered at
// all; an empty list means no context gate.
type CategoryPatterns struct {
	Keywords        []string `json:"keywords"`
	Patterns        []string `json:"patterns"`
	RequiredContext []string `json:"required_context"`
}

// PatternTable maps every classifiable category to its matching table.
type PatternTable map[Category]CategoryPatterns

// LoadPatternTable reads a pattern table from a JSON file. Unknown category
// keys are rejected so a typo in the config cannot silently create a category.
func LoadPatternTable(path string) (PatternTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern table: %w", err)
	}

	var raw map[string]CategoryPatterns
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse pattern table: %w", err)
	}

	table := make(PatternTable, len(raw))
	for key, patterns := range raw {
		cat := Category(key)
		if !cat.IsValid() || cat == CategoryUnknown || cat == CategoryNonITRequest {
			return nil, fmt.Errorf("parse pattern table: unknown category %q", key)
		}
		table[cat] = patterns
	}
	return table, nil
}

// DefaultPatternTable returns the built-in matching tables.
func DefaultPatternTable() PatternTable {
	return PatternTable{
		CategoryPasswordReset: {
			Keywords: []string{
				"password", "login", "forgot", "reset", "unlock", "locked out",
				"account locked", "sign in", "authentication", "credentials",
				"can't log in", "unable to login", "access denied",
			},
			Patterns: []string{
				`forgot.*password`, `can't.*log.*in`, `unable.*to.*log`,
				`reset.*password`, `locked.*out`, `login.*problem`,
				`password.*expired`, `authentication.*fail`,
			},
			RequiredContext: []string{"computer", "system", "account", "work", "login", "access", "password"},
		},
		CategorySoftwareInstallation: {
			Keywords: []string{
				"install", "setup", "software", "application", "app", "program",
				"download", "upgrade", "update", "configure", "installation",
				"installer", "setup wizard", "deploy",
			},
			Patterns: []string{
				`install.*software`, `setup.*application`, `installation.*error`,
				`can't.*install`, `need.*to.*install`, `how.*to.*install`,
				`software.*installation`,
			},
			RequiredContext: []string{"software", "program", "application", "computer", "work", "laptop", "install"},
		},
		CategoryHardwareFailure: {
			Keywords: []string{
				"laptop", "computer", "screen", "monitor", "keyboard", "mouse",
				"broken", "damaged", "hardware", "device", "flickering",
				"black screen", "not working", "died", "failed", "malfunction",
			},
			Patterns: []string{
				`screen.*flickering`, `laptop.*broken`, `computer.*not.*working`,
				`hardware.*failure`, `monitor.*black`, `device.*malfunction`,
				`won't.*turn.*on`,
			},
			RequiredContext: []string{"computer", "laptop", "device", "work", "office", "screen", "monitor"},
		},
		CategoryNetworkConnectivity: {
			Keywords: []string{
				"network", "internet", "wifi", "connection", "connectivity", "vpn",
				"can't connect", "no internet", "offline", "disconnect",
				"ethernet", "network adapter",
			},
			Patterns: []string{
				`can't.*connect`, `no.*internet`, `wifi.*problem`, `network.*issue`,
				`vpn.*not.*working`, `connection.*failed`, `internet.*down`,
			},
			RequiredContext: []string{"network", "internet", "wifi", "connection", "work", "office", "vpn"},
		},
		CategoryEmailConfiguration: {
			Keywords: []string{
				"email", "outlook", "mail", "sync", "syncing", "configuration",
				"distribution list", "mailbox", "messages", "receiving",
				"exchange", "smtp", "imap",
			},
			Patterns: []string{
				`email.*not.*sync`, `outlook.*problem`, `not.*receiving.*email`,
				`mail.*configuration`, `distribution.*list`, `email.*setup`,
			},
			RequiredContext: []string{"email", "outlook", "mail", "work", "office", "business"},
		},
		CategorySecurityIncident: {
			Keywords: []string{
				"security", "virus", "malware", "suspicious", "hacked", "hack",
				"phishing", "spam", "pop-up", "suspicious email", "incident",
				"breach", "threat", "attack",
			},
			Patterns: []string{
				`suspicious.*email`, `think.*hacked`, `security.*incident`,
				`malware.*infection`, `strange.*pop.*up`, `virus.*detected`,
				`security.*breach`,
			},
			RequiredContext: []string{"computer", "system", "work", "security", "server", "email"},
		},
		CategoryPolicyQuestion: {
			Keywords: []string{
				"policy", "procedure", "allowed", "permission", "approval",
				"what's the policy", "company policy", "guidelines", "rules",
				"compliance", "regulation", "standard",
			},
			Patterns: []string{
				`what.*policy`, `company.*policy`, `need.*approval`, `allowed.*to`,
				`policy.*for`, `compliance.*requirement`,
			},
			RequiredContext: []string{"company", "work", "business", "office", "it", "technology", "policy"},
		},
	}
}

// nonITIndicators are terms that suggest the request is outside IT support
// scope entirely (facilities, HR, dining, hypotheticals).
var nonITIndicators = []string{
	// Food / dining
	"cafeteria", "menu", "food", "lunch", "dinner", "restaurant", "dining",
	"coffee", "snack", "meal", "breakfast",
	// HR / administrative
	"vacation", "holiday", "payroll", "salary", "benefits", "human resources",
	"sick day", "time off", "401k", "insurance",
	// Facilities
	"parking", "elevator", "restroom", "bathroom", "air conditioning",
	"heating", "office space",
	// Personal / general
	"weather", "sports", "entertainment", "shopping", "recipe", "doctor",
	"what time", "when is", "directions", "who is",
	// Hypotheticals
	"what if", "what would happen", "suppose", "imagine", "hypothetical",
	"spill", "accidentally",
}

// nonITPatterns catch whole non-IT question shapes that slip past single
// indicator counting.
var nonITPatterns = []string{
	`cafeteria.*menu`,
	`where.*is.*the.*cafeteria`,
	`what.*time.*does.*cafeteria`,
	`coffee.*spill`,
	`what.*if.*spill`,
	`what.*would.*happen.*if`,
	`parking.*space`,
	`how.*to.*get.*to`,
	`where.*can.*i.*find.*menu`,
}
