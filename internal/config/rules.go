package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"medrec/internal/recommend"
	"medrec/internal/symptom"
)

// RulesFile is the YAML representation of the classification rule table.
// Rules are listed in priority order and the last one must have no keywords.
type RulesFile struct {
	ConfidenceThreshold float64             `yaml:"confidence_threshold,omitempty"`
	Rules               []RuleConfig        `yaml:"rules"`
	Alternatives        []AlternativeConfig `yaml:"alternatives,omitempty"`
}

// RuleConfig defines one classification rule.
type RuleConfig struct {
	Name        string   `yaml:"name"`
	Keywords    []string `yaml:"keywords,omitempty"`
	Medicine    string   `yaml:"medicine"`
	Description string   `yaml:"description"`
	Confidence  float64  `yaml:"confidence"`
}

// AlternativeConfig defines a fixed alternative suggestion.
type AlternativeConfig struct {
	Medicine    string  `yaml:"medicine"`
	Description string  `yaml:"description"`
	Offset      float64 `yaml:"offset"`
}

// LoadRulesFile parses the rule table at path.
// Returns nil without error if path is empty.
func LoadRulesFile(path string) (*RulesFile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var f RulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %q: %w", path, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file %q: %w", path, symptom.ErrNoRules)
	}
	if f.ConfidenceThreshold < 0 || f.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("rules file %q: confidence_threshold must be in [0, 1]", path)
	}

	return &f, nil
}

// RuleSet builds the validated rule table. A nil RulesFile yields the
// built-in rules.
func (f *RulesFile) RuleSet() (*symptom.RuleSet, error) {
	if f == nil {
		return symptom.DefaultRuleSet(), nil
	}

	rules := make([]symptom.Rule, len(f.Rules))
	for i, r := range f.Rules {
		rules[i] = symptom.Rule{
			Name:        r.Name,
			Keywords:    r.Keywords,
			Medicine:    r.Medicine,
			Description: r.Description,
			Confidence:  r.Confidence,
		}
	}
	return symptom.NewRuleSet(rules...)
}

// ComposerOptions returns the composer overrides set in the file.
func (f *RulesFile) ComposerOptions() []recommend.ComposerOption {
	if f == nil {
		return nil
	}

	var opts []recommend.ComposerOption
	if f.ConfidenceThreshold > 0 {
		opts = append(opts, recommend.WithThreshold(f.ConfidenceThreshold))
	}
	if f.Alternatives != nil {
		alts := make([]recommend.Alternative, len(f.Alternatives))
		for i, a := range f.Alternatives {
			alts[i] = recommend.Alternative{Medicine: a.Medicine, Description: a.Description, Offset: a.Offset}
		}
		opts = append(opts, recommend.WithAlternatives(alts))
	}
	return opts
}

// NewEngine builds the recommendation engine from the rule table at path,
// or from the built-in table when path is empty.
func NewEngine(path string) (*recommend.Engine, error) {
	f, err := LoadRulesFile(path)
	if err != nil {
		return nil, err
	}

	rules, err := f.RuleSet()
	if err != nil {
		return nil, fmt.Errorf("invalid rule table: %w", err)
	}

	return recommend.NewEngine(symptom.NewClassifier(rules), recommend.NewComposer(f.ComposerOptions()...)), nil
}
