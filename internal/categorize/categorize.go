// Package categorize assigns ledger categories to free-text descriptions
// using keyword rules. Rules live in a YAML file next to the ledgers and
// fall back to a built-in set.
package categorize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Rule maps keywords to one category. Keywords match case-insensitively
// anywhere in a description.
type Rule struct {
	Category model.Category `yaml:"category"`
	Keywords []string       `yaml:"keywords"`
}

type ruleDoc struct {
	Rules []Rule `yaml:"rules"`
}

// Categorizer matches descriptions against an ordered rule list. Earlier
// rules win.
type Categorizer struct {
	rules []Rule
}

// RulesFile is the rules file name under the data directory.
const RulesFile = "categories.yaml"

// Path returns the rules file location under a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, RulesFile)
}

// Load reads the rules file. A missing file yields the built-in rules.
func Load(path string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Categorizer{rules: DefaultRules()}, nil
		}
		return nil, fmt.Errorf("reading category rules: %w", err)
	}

	var doc ruleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	rules := make([]Rule, 0, len(doc.Rules))
	for _, r := range doc.Rules {
		cat, err := model.ParseCategory(string(r.Category))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		r.Category = cat
		rules = append(rules, r)
	}

	logging.Log.WithField("rules", len(rules)).Debug("loaded category rules")
	return &Categorizer{rules: rules}, nil
}

// Save writes the rules file, creating the directory if needed.
func Save(path string, rules []Rule) error {
	for _, r := range rules {
		if !r.Category.Valid() {
			return fmt.Errorf("unknown category %q", r.Category)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := yaml.Marshal(ruleDoc{Rules: rules})
	if err != nil {
		return fmt.Errorf("encoding category rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Rules returns the active rule list.
func (c *Categorizer) Rules() []Rule {
	return c.rules
}

// Suggest returns the category whose keywords first match the
// description, or false when nothing matches.
func (c *Categorizer) Suggest(description string) (model.Category, bool) {
	if strings.TrimSpace(description) == "" {
		return "", false
	}
	haystack := strings.ToLower(description)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(haystack, strings.ToLower(kw)) {
				return r.Category, true
			}
		}
	}
	return "", false
}

// DefaultRules is the built-in rule set. Bill keywords sit ahead of the
// essential ones so recurring utilities match as bills first.
func DefaultRules() []Rule {
	return []Rule{
		{Category: model.CategoryIncome, Keywords: []string{
			"salary", "payroll", "wage", "freelance", "invoice",
			"dividend", "interest", "refund", "bonus",
		}},
		{Category: model.CategoryBill, Keywords: []string{
			"electricity", "power bill", "water bill", "internet",
			"phone bill", "mobile plan", "utility",
		}},
		{Category: model.CategorySavings, Keywords: []string{
			"savings", "emergency fund", "deposit", "pension", "retirement",
		}},
		{Category: model.CategoryEssential, Keywords: []string{
			"rent", "mortgage", "grocery", "groceries", "supermarket",
			"pharmacy", "doctor", "health", "insurance", "fuel",
			"transport", "bus pass", "train", "debt payment",
		}},
		{Category: model.CategoryNonEssential, Keywords: []string{
			"restaurant", "dining", "coffee", "cinema", "movie",
			"concert", "game", "hobby", "travel", "hotel", "flight",
			"subscription", "netflix", "spotify", "shopping",
			"clothing", "salon", "gift",
		}},
	}
}
