package symptom

import (
	"errors"
	"fmt"
	"strings"
)

// Rule errors returned by NewRuleSet.
var (
	ErrNoRules            = errors.New("rule set is empty")
	ErrMissingDefaultRule = errors.New("last rule must be the default rule (no keywords)")
	ErrMisplacedDefault   = errors.New("default rule must be the last rule")
	ErrInvalidConfidence  = errors.New("confidence must be in (0, 1]")
	ErrMissingMedicine    = errors.New("medicine is required")
	ErrInvalidKeyword     = errors.New("keyword must be non-empty lowercase letters and spaces")
	ErrDuplicateRuleName  = errors.New("duplicate rule name")
)

// Rule maps a group of symptom keywords to a medicine. A rule without
// keywords is the default rule and matches any text.
type Rule struct {
	Name        string
	Keywords    []string
	Medicine    string
	Description string
	Confidence  float64
}

// IsDefault reports whether r is the catch-all rule.
func (r Rule) IsDefault() bool {
	return len(r.Keywords) == 0
}

// Matches reports whether any keyword occurs in normalized text.
func (r Rule) Matches(normalized string) bool {
	if r.IsDefault() {
		return true
	}
	for _, kw := range r.Keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

func (r Rule) validate() error {
	if strings.TrimSpace(r.Medicine) == "" {
		return ErrMissingMedicine
	}
	if r.Confidence <= 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidConfidence, r.Confidence)
	}
	for _, kw := range r.Keywords {
		// A keyword that Normalize would change can never match normalized text.
		if strings.TrimSpace(kw) == "" || Normalize(kw) != kw {
			return fmt.Errorf("%w: %q", ErrInvalidKeyword, kw)
		}
	}
	return nil
}

// RuleSet is an ordered, read-only rule table. The zero value is not usable;
// build one with NewRuleSet or DefaultRuleSet.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet validates rules and returns them as an immutable RuleSet.
// Keywords are lowercased. Exactly one default rule is allowed and it must
// be last.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}

	names := make(map[string]struct{}, len(rules))
	out := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		r.Keywords = kws
		if r.Name == "" {
			r.Name = fmt.Sprintf("rule-%d", i+1)
		}

		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		if _, dup := names[r.Name]; dup {
			return nil, fmt.Errorf("rule %q: %w", r.Name, ErrDuplicateRuleName)
		}
		names[r.Name] = struct{}{}

		last := i == len(rules)-1
		if r.IsDefault() && !last {
			return nil, fmt.Errorf("rule %q: %w", r.Name, ErrMisplacedDefault)
		}
		if last && !r.IsDefault() {
			return nil, fmt.Errorf("rule %q: %w", r.Name, ErrMissingDefaultRule)
		}
		out[i] = r
	}

	return &RuleSet{rules: out}, nil
}

// Rules returns a copy of the rules in priority order.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}

// Len returns the number of rules, including the default rule.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Default returns the catch-all rule.
func (s *RuleSet) Default() Rule {
	return s.rules[len(s.rules)-1]
}

// Medicines returns the distinct medicine labels in rule order.
func (s *RuleSet) Medicines() []string {
	seen := make(map[string]struct{}, len(s.rules))
	var out []string
	for _, r := range s.rules {
		if _, ok := seen[r.Medicine]; ok {
			continue
		}
		seen[r.Medicine] = struct{}{}
		out = append(out, r.Medicine)
	}
	return out
}

// KeywordCount returns the total number of keywords across all rules.
func (s *RuleSet) KeywordCount() int {
	n := 0
	for _, r := range s.rules {
		n += len(r.Keywords)
	}
	return n
}

// DefaultRules returns the built-in rule table in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "digestive-acid",
			Keywords:    []string{"stomach", "nausea", "acid"},
			Medicine:    "Antacid",
			Description: "Neutralizes stomach acid and relieves heartburn",
			Confidence:  0.78,
		},
		{
			Name:        "respiratory",
			Keywords:    []string{"cough", "throat"},
			Medicine:    "Cough Syrup",
			Description: "Relieves cough and throat irritation",
			Confidence:  0.82,
		},
		{
			Name:        "diarrheal",
			Keywords:    []string{"diarrhea", "loose stool"},
			Medicine:    "Anti-diarrheal",
			Description: "Controls loose motions and stomach upset",
			Confidence:  0.76,
		},
		{
			Name:        "default",
			Medicine:    "Paracetamol",
			Description: "For general pain relief and fever reduction",
			Confidence:  0.85,
		},
	}
}

// DefaultRuleSet returns the built-in rule table as a RuleSet.
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(DefaultRules()...)
	if err != nil {
		panic(fmt.Sprintf("symptom: built-in rules are invalid: %v", err))
	}
	return rs
}
