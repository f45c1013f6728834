package service

import (
	"context"
	"os"
	"path/filepath"

	"helpdesk-ai-be/internal/dto"
	"helpdesk-ai-be/internal/pkg/logger"
	"helpdesk-ai-be/pkg/escalation"
)

type IRuleService interface {
	Create(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error)
	Update(ctx context.Context, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error)
	Delete(ctx context.Context, id string) error
	Show(ctx context.Context, id string) (*dto.RuleResponse, error)
	List(ctx context.Context) ([]*dto.RuleResponse, error)
}

type ruleService struct {
	store    *escalation.Store
	filePath string
	log      logger.ILogger
}

// NewRuleService loads persisted rules from filePath, seeding the built-in
// defaults when no file exists yet.
func NewRuleService(store *escalation.Store, filePath string, log logger.ILogger) (IRuleService, error) {
	s := &ruleService{
		store:    store,
		filePath: filePath,
		log:      log,
	}

	f, err := os.Open(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		for _, rule := range escalation.DefaultRules() {
			if err := store.Add(rule); err != nil {
				return nil, err
			}
		}
		if err := s.persist(); err != nil {
			return nil, err
		}
		log.Info("rule_service", "Seeded default escalation rules", map[string]interface{}{
			"count": store.Len(),
			"path":  filePath,
		})
		return s, nil
	}
	defer f.Close()

	if err := store.Load(f); err != nil {
		return nil, err
	}
	log.Info("rule_service", "Loaded escalation rules", map[string]interface{}{
		"count": store.Len(),
		"path":  filePath,
	})
	return s, nil
}

func (s *ruleService) Create(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	rule := toRule(req.Id, req.Category, req.Conditions, req.Priority, req.EscalationLevel, req.ContactInfo, req.ResponseTimeSLA, req.BusinessHoursOnly)
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Add(rule); err != nil {
		return nil, err
	}
	if err := s.persist(); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

func (s *ruleService) Update(ctx context.Context, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	rule := toRule(req.Id, req.Category, req.Conditions, req.Priority, req.EscalationLevel, req.ContactInfo, req.ResponseTimeSLA, req.BusinessHoursOnly)
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Update(req.Id, rule); err != nil {
		return nil, err
	}
	if err := s.persist(); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

func (s *ruleService) Delete(ctx context.Context, id string) error {
	if err := s.store.Remove(id); err != nil {
		return err
	}
	return s.persist()
}

func (s *ruleService) Show(ctx context.Context, id string) (*dto.RuleResponse, error) {
	rule, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

func (s *ruleService) List(ctx context.Context) ([]*dto.RuleResponse, error) {
	rules := s.store.List()
	res := make([]*dto.RuleResponse, 0, len(rules))
	for _, rule := range rules {
		res = append(res, toRuleResponse(rule))
	}
	return res, nil
}

// persist writes the full rule set atomically via a temp file rename.
func (s *ruleService) persist() error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "rules-*.json")
	if err != nil {
		return err
	}
	if err := s.store.Save(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.filePath)
}

func toRule(id, category string, conditions []dto.RuleConditionPayload, priority int, level, contact string, sla int, businessHours bool) escalation.Rule {
	conds := make([]escalation.Condition, 0, len(conditions))
	for _, c := range conditions {
		conds = append(conds, escalation.Condition{
			Field:     c.Field,
			Op:        c.Op,
			Value:     c.Value,
			Threshold: c.Threshold,
			Keywords:  c.Keywords,
		})
	}
	return escalation.Rule{
		ID:                id,
		Category:          category,
		Conditions:        conds,
		Priority:          priority,
		Level:             escalation.Level(level),
		ContactInfo:       contact,
		ResponseTimeSLA:   sla,
		BusinessHoursOnly: businessHours,
	}
}

func toRuleResponse(rule escalation.Rule) *dto.RuleResponse {
	conds := make([]dto.RuleConditionPayload, 0, len(rule.Conditions))
	for _, c := range rule.Conditions {
		conds = append(conds, dto.RuleConditionPayload{
			Field:     c.Field,
			Op:        c.Op,
			Value:     c.Value,
			Threshold: c.Threshold,
			Keywords:  c.Keywords,
		})
	}
	return &dto.RuleResponse{
		Id:                rule.ID,
		Category:          rule.Category,
		Conditions:        conds,
		Priority:          rule.Priority,
		EscalationLevel:   string(rule.Level),
		ContactInfo:       rule.ContactInfo,
		ResponseTimeSLA:   rule.ResponseTimeSLA,
		BusinessHoursOnly: rule.BusinessHoursOnly,
	}
}
