package escalation

// DefaultRules is the built-in rule set installed when no rules file exists.
// Priorities: 1 critical, 2 high, 3 medium.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:              "security-incident",
			Category:        "security_incident",
			Priority:        1,
			Level:           SecurityTeam,
			ContactInfo:     "security-team@company.com",
			ResponseTimeSLA: 15,
		},
		{
			ID:       "system-outage",
			Category: CategoryWildcard,
			Conditions: []Condition{
				{Field: FieldKeyword, Op: OpContainsAny, Keywords: []string{
					"outage", "down", "offline", "system failure",
				}},
			},
			Priority:        1,
			Level:           LevelThree,
			ContactInfo:     "system-admin@company.com",
			ResponseTimeSLA: 15,
		},
		{
			ID:       "critical-unclassified",
			Category: CategoryWildcard,
			Conditions: []Condition{
				{Field: FieldPriority, Op: OpEquals, Value: "critical"},
				{Field: FieldConfidence, Op: OpLessThan, Threshold: 0.5},
			},
			Priority:        1,
			Level:           LevelThree,
			ContactInfo:     "escalation-team@company.com",
			ResponseTimeSLA: 30,
		},
		{
			ID:              "hardware-failure",
			Category:        "hardware_failure",
			Priority:        2,
			Level:           LevelTwo,
			ContactInfo:     "hardware-support@company.com",
			ResponseTimeSLA: 30,
		},
		{
			ID:       "vip-user",
			Category: CategoryWildcard,
			Conditions: []Condition{
				{Field: FieldKeyword, Op: OpContainsAny, Keywords: []string{
					"vip", "executive", "ceo", "cto", "director",
				}},
			},
			Priority:        2,
			Level:           LevelThree,
			ContactInfo:     "vip-support@company.com",
			ResponseTimeSLA: 30,
		},
		{
			ID:       "data-loss",
			Category: CategoryWildcard,
			Conditions: []Condition{
				{Field: FieldKeyword, Op: OpContainsAny, Keywords: []string{
					"lost data", "deleted files", "corrupted", "backup", "restore",
				}},
			},
			Priority:        2,
			Level:           LevelTwo,
			ContactInfo:     "data-recovery@company.com",
			ResponseTimeSLA: 45,
		},
		{
			ID:       "low-confidence",
			Category: CategoryWildcard,
			Conditions: []Condition{
				{Field: FieldConfidence, Op: OpLessThan, Threshold: 0.3},
			},
			Priority:          3,
			Level:             LevelTwo,
			ContactInfo:       "level2-support@company.com",
			ResponseTimeSLA:   60,
			BusinessHoursOnly: true,
		},
	}
}
