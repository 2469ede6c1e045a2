// Package categorize guesses a ledger for free-text narrations by keyword.
package categorize

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFallback is the ledger used when no rule matches.
const DefaultFallback = "Suspense"

// Rule maps any of Keywords to ledger Name.
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Rules is an ordered keyword table; the first matching rule wins.
type Rules struct {
	Categories []Rule `yaml:"categories"`
	Fallback   string `yaml:"fallback,omitempty"`
}

// DefaultRules returns a starter table written by tally init.
func DefaultRules() Rules {
	return Rules{
		Categories: []Rule{
			{Name: "Rent", Keywords: []string{"rent", "lease"}},
			{Name: "Salaries", Keywords: []string{"salary", "payroll", "wages"}},
			{Name: "Electricity", Keywords: []string{"electricity", "power bill"}},
			{Name: "Telephone", Keywords: []string{"phone", "mobile", "internet", "broadband"}},
			{Name: "Travel", Keywords: []string{"uber", "taxi", "flight", "train", "fuel"}},
			{Name: "Office Supplies", Keywords: []string{"stationery", "printer", "office"}},
			{Name: "Software", Keywords: []string{"github", "aws", "google", "subscription"}},
			{Name: "Bank Charges", Keywords: []string{"bank fee", "service charge", "interest charged"}},
			{Name: "Sales", Keywords: []string{"invoice", "payment received"}},
		},
		Fallback: DefaultFallback,
	}
}

// Load reads a rules file.
func Load(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading categories: %w", err)
	}
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parsing categories: %w", err)
	}
	for i, c := range r.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return Rules{}, fmt.Errorf("category %d has no name", i+1)
		}
	}
	return r, nil
}

// Save writes rules as YAML.
func Save(path string, r Rules) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling categories: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}

// Categorize returns the ledger for text and whether a rule matched. Matching
// is a case-insensitive substring test; unmatched text gets the fallback.
func (r Rules) Categorize(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, c := range r.Categories {
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(lower, kw) {
				return c.Name, true
			}
		}
	}
	return r.FallbackLedger(), false
}

// FallbackLedger is the ledger given to text no rule matches.
func (r Rules) FallbackLedger() string {
	if f := strings.TrimSpace(r.Fallback); f != "" {
		return f
	}
	return DefaultFallback
}
