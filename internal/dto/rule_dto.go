package dto

type RuleConditionPayload struct {
	Field     string   `json:"field" validate:"required,oneof=category confidence keyword priority"`
	Op        string   `json:"op" validate:"required,oneof=eq lt gt contains_any"`
	Value     string   `json:"value,omitempty"`
	Threshold float64  `json:"threshold,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
}

type CreateRuleRequest struct {
	Id                string                 `json:"id" validate:"required"`
	Category          string                 `json:"category" validate:"required"`
	Conditions        []RuleConditionPayload `json:"trigger_conditions"`
	Priority          int                    `json:"priority" validate:"required,gt=0"`
	EscalationLevel   string                 `json:"escalation_level" validate:"required"`
	ContactInfo       string                 `json:"contact_info"`
	ResponseTimeSLA   int                    `json:"response_time_sla_minutes" validate:"gte=0"`
	BusinessHoursOnly bool                   `json:"business_hours_only"`
}

type UpdateRuleRequest struct {
	Id                string                 `json:"-"`
	Category          string                 `json:"category" validate:"required"`
	Conditions        []RuleConditionPayload `json:"trigger_conditions"`
	Priority          int                    `json:"priority" validate:"required,gt=0"`
	EscalationLevel   string                 `json:"escalation_level" validate:"required"`
	ContactInfo       string                 `json:"contact_info"`
	ResponseTimeSLA   int                    `json:"response_time_sla_minutes" validate:"gte=0"`
	BusinessHoursOnly bool                   `json:"business_hours_only"`
}

type RuleResponse struct {
	Id                string                 `json:"id"`
	Category          string                 `json:"category"`
	Conditions        []RuleConditionPayload `json:"trigger_conditions"`
	Priority          int                    `json:"priority"`
	EscalationLevel   string                 `json:"escalation_level"`
	ContactInfo       string                 `json:"contact_info"`
	ResponseTimeSLA   int                    `json:"response_time_sla_minutes"`
	BusinessHoursOnly bool                   `json:"business_hours_only"`
}
