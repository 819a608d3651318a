package catalog

import (
	"regexp"
	"strings"
)

var (
	nonInterestChars = regexp.MustCompile(`[^a-z0-9\s\-]`)
	separatorRuns    = regexp.MustCompile(`[\s\-]+`)
)

// NormalizeInterest maps free text such as "ML", "web-dev" or "Cloud
// Security!" onto a category name. Text that matches nothing comes back
// cleaned but otherwise unchanged.
func (c *Catalog) NormalizeInterest(interest string) string {
	raw := nonInterestChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(interest)), "")
	key := separatorRuns.ReplaceAllString(raw, " ")
	compact := strings.ReplaceAll(key, " ", "")

	for _, cand := range []string{key, compact, strings.ReplaceAll(key, " ", "-")} {
		if cat, ok := c.aliases[cand]; ok {
			return cat
		}
	}

	if _, ok := c.byName[key]; ok {
		return key
	}

	for _, cat := range c.categories {
		if strings.Contains(key, cat.Name) {
			return cat.Name
		}
	}

	if cat, ok := c.aliases[compact]; ok {
		return cat
	}
	if compact == "datascience" {
		return "data science"
	}
	return key
}
