// Package ahocorasick implements harvest.Classifier with a single
// Aho-Corasick automaton built from every rule's keywords.
package ahocorasick

import (
	"sync"

	"github.com/cloudflare/ahocorasick"
	"github.com/fwojciec/harvest"
)

var _ harvest.Classifier = (*Classifier)(nil)

// Classifier assigns the category of the earliest rule with a keyword hit.
// Matching is case-sensitive on the raw text.
type Classifier struct {
	// The matcher keeps per-search state and is not safe for concurrent use.
	mu         sync.Mutex
	matcher    *ahocorasick.Matcher
	categories []harvest.Category
	// keywordRule maps a dictionary index to the lowest rule index that
	// lists the keyword.
	keywordRule []int
}

// NewClassifier builds the automaton for rules. Empty keywords are ignored.
func NewClassifier(rules []harvest.CategoryRule) *Classifier {
	c := &Classifier{}

	firstRule := make(map[string]int)
	var keywords []string
	for i, rule := range rules {
		c.categories = append(c.categories, rule.Category)
		for _, kw := range rule.Keywords {
			if kw == "" {
				continue
			}
			if _, ok := firstRule[kw]; ok {
				continue
			}
			firstRule[kw] = i
			keywords = append(keywords, kw)
			c.keywordRule = append(c.keywordRule, i)
		}
	}

	if len(keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(keywords)
	}
	return c
}

// Classify implements harvest.Classifier.
func (c *Classifier) Classify(text string) harvest.Category {
	if c.matcher == nil || text == "" {
		return harvest.CategoryOther
	}

	c.mu.Lock()
	hits := c.matcher.Match([]byte(text))
	c.mu.Unlock()

	best := -1
	for _, hit := range hits {
		if hit >= len(c.keywordRule) {
			continue
		}
		if rule := c.keywordRule[hit]; best == -1 || rule < best {
			best = rule
		}
	}
	if best == -1 {
		return harvest.CategoryOther
	}
	return c.categories[best]
}
