package escalation

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func validRule(id string, priority int) Rule {
	return Rule{
		ID:              id,
		Category:        "hardware_failure",
		Priority:        priority,
		Level:           LevelTwo,
		ContactInfo:     "hardware-support@company.com",
		ResponseTimeSLA: 30,
	}
}

func TestStoreAddGetRemove(t *testing.T) {
	s := NewStore()

	if err := s.Add(validRule("r1", 1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(validRule("r1", 2)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate Add error = %v, want ErrDuplicateID", err)
	}

	got, err := s.Get("r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Priority != 1 {
		t.Errorf("Get priority = %d, want 1", got.Priority)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing error = %v, want ErrNotFound", err)
	}

	if err := s.Remove("r1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove("r1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove twice error = %v, want ErrNotFound", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore()
	if err := s.Add(validRule("r1", 1)); err != nil {
		t.Fatal(err)
	}

	updated := validRule("r1", 5)
	updated.ContactInfo = "level2-support@company.com"
	if err := s.Update("r1", updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := s.Get("r1")
	if got.Priority != 5 || got.ContactInfo != "level2-support@company.com" {
		t.Errorf("Update not applied: %+v", got)
	}

	if err := s.Update("missing", validRule("missing", 1)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing error = %v, want ErrNotFound", err)
	}
}

func TestStoreListOrder(t *testing.T) {
	s := NewStore()
	// Insertion order: b(2), a(1), c(2), d(1). Expected: priority ascending,
	// insertion order inside a priority band.
	for _, r := range []Rule{validRule("b", 2), validRule("a", 1), validRule("c", 2), validRule("d", 1)} {
		if err := s.Add(r); err != nil {
			t.Fatal(err)
		}
	}

	var ids []string
	for _, r := range s.List() {
		ids = append(ids, r.ID)
	}
	want := "a,d,b,c"
	if got := strings.Join(ids, ","); got != want {
		t.Errorf("List order = %s, want %s", got, want)
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s := NewStore()
	rule := validRule("r1", 1)
	rule.Conditions = []Condition{
		{Field: FieldKeyword, Op: OpContainsAny, Keywords: []string{"vip", "ceo"}},
	}
	rule.BusinessHoursOnly = true
	if err := s.Add(rule); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(validRule("r2", 2)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewStore()
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Len after load = %d, want 2", loaded.Len())
	}

	got, err := loaded.Get("r1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.BusinessHoursOnly {
		t.Error("BusinessHoursOnly lost in round trip")
	}
	if len(got.Conditions) != 1 || got.Conditions[0].Op != OpContainsAny {
		t.Errorf("Conditions lost in round trip: %+v", got.Conditions)
	}
}

func TestStoreLoadValidatesAllBeforeInstall(t *testing.T) {
	s := NewStore()
	if err := s.Add(validRule("existing", 1)); err != nil {
		t.Fatal(err)
	}

	// Second rule is missing priority: the whole load must fail and the
	// previous contents must survive.
	doc := `{
		"good": {"category": "hardware_failure", "priority": 1, "escalation_level": "level_2", "contact_info": "x@company.com", "response_time_sla_minutes": 30},
		"bad": {"category": "hardware_failure", "escalation_level": "level_2", "contact_info": "x@company.com", "response_time_sla_minutes": 30}
	}`

	err := s.Load(strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.RuleID != "bad" || verr.Field != "priority" {
		t.Errorf("ValidationError = %+v, want rule 'bad' field 'priority'", verr)
	}

	if _, err := s.Get("existing"); err != nil {
		t.Errorf("store contents changed after failed load: %v", err)
	}
	if _, err := s.Get("good"); !errors.Is(err, ErrNotFound) {
		t.Error("partial load installed a rule")
	}
}

func TestStoreLoadDeterministicOrder(t *testing.T) {
	doc := `{
		"zeta": {"category": "*", "priority": 1, "escalation_level": "level_3", "contact_info": "a@company.com", "response_time_sla_minutes": 15},
		"alpha": {"category": "*", "priority": 1, "escalation_level": "level_3", "contact_info": "b@company.com", "response_time_sla_minutes": 15}
	}`

	for i := 0; i < 5; i++ {
		s := NewStore()
		if err := s.Load(strings.NewReader(doc)); err != nil {
			t.Fatal(err)
		}
		rules := s.List()
		if rules[0].ID != "alpha" || rules[1].ID != "zeta" {
			t.Fatalf("run %d: order = %s,%s, want alpha,zeta", i, rules[0].ID, rules[1].ID)
		}
	}
}
