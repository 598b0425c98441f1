package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"medfeedback/internal/categorizer"
)

// LoadPolicy reads a YAML scoring policy. Sections missing from the file keep
// the built-in tables; an empty path returns the defaults unchanged.
func LoadPolicy(path string) (*categorizer.Policy, error) {
	policy := categorizer.DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy overlays YAML data on the default policy and validates it
func ParsePolicy(data []byte) (*categorizer.Policy, error) {
	var overlay categorizer.Policy
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}

	policy := categorizer.DefaultPolicy()
	if overlay.PositiveKeywords != nil {
		policy.PositiveKeywords = overlay.PositiveKeywords
	}
	if overlay.NegativeKeywords != nil {
		policy.NegativeKeywords = overlay.NegativeKeywords
	}
	if overlay.ChoiceSentiment != nil {
		policy.ChoiceSentiment = overlay.ChoiceSentiment
	}
	if overlay.CategorySentiment != nil {
		policy.CategorySentiment = overlay.CategorySentiment
	}

	if err := validatePolicy(policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func validatePolicy(p *categorizer.Policy) error {
	negative := make(map[string]bool, len(p.NegativeKeywords))
	for _, kw := range p.NegativeKeywords {
		negative[normalizeKeyword(kw)] = true
	}
	for _, kw := range p.PositiveKeywords {
		if negative[normalizeKeyword(kw)] {
			return fmt.Errorf("policy: keyword %q is both positive and negative", kw)
		}
	}
	for label, v := range p.ChoiceSentiment {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("policy: choice %q sentiment %v outside [0,1]", label, v)
		}
	}
	for category, v := range p.CategorySentiment {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("policy: category %q sentiment %v outside [0,1]", category, v)
		}
	}
	return nil
}

// normalizeKeyword matches the folding the engine applies to keyword lists
func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}
