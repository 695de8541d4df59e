package symptom

// Classification is the outcome of matching normalized text against a RuleSet.
type Classification struct {
	Rule        string
	Medicine    string
	Description string
	Confidence  float64
}

// Classifier applies a RuleSet with first-match-wins semantics.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules *RuleSet
}

// NewClassifier creates a classifier over rules. A nil rules uses the
// built-in table.
func NewClassifier(rules *RuleSet) *Classifier {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Classifier{rules: rules}
}

// Classify returns the output of the first rule with a keyword contained in
// normalized, or the default rule when none match. Rule order decides
// overlaps, not keyword specificity.
func (c *Classifier) Classify(normalized string) Classification {
	for _, r := range c.rules.rules {
		if r.Matches(normalized) {
			return Classification{
				Rule:        r.Name,
				Medicine:    r.Medicine,
				Description: r.Description,
				Confidence:  r.Confidence,
			}
		}
	}
	// Unreachable for a RuleSet built by NewRuleSet: the last rule is the default.
	d := c.rules.Default()
	return Classification{Rule: d.Name, Medicine: d.Medicine, Description: d.Description, Confidence: d.Confidence}
}

// Rules returns the rule table the classifier was built with.
func (c *Classifier) Rules() *RuleSet {
	return c.rules
}
