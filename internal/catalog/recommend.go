package catalog

import (
	"fmt"
	"strings"
)

const (
	// DefaultLimit is used when the caller does not pass a limit.
	DefaultLimit = 4
	// MaxLimit caps every recommendation list.
	MaxLimit = 10

	fallbackSize = 4
)

var beginnerWords = []string{"beginner", "beginners", "intro", "introductory", "foundation", "foundations"}

// Query describes one recommendation request. Type is "core" or "elective"
// and Level is "UG" or "PG"; both match case-insensitively.
type Query struct {
	Interest string
	Limit    int
	Type     string
	Level    string
}

// Recommend returns courses for an interest in catalog order.
func (c *Catalog) Recommend(q Query) ([]Course, error) {
	key := c.NormalizeInterest(q.Interest)
	items := c.Courses(key)

	if len(items) == 0 {
		found, err := c.keywordElectives(key)
		if err != nil {
			return nil, fmt.Errorf("elective keyword search: %w", err)
		}
		items = found
	}

	typeFilter, level := q.Type, q.Level
	if typeFilter == "" && level == "" && isBeginner(q.Interest) {
		typeFilter, level = "elective", "UG"
	}
	if typeFilter != "" {
		items = filterCourses(items, func(c Course) bool { return strings.EqualFold(c.Type, typeFilter) })
	}
	if level != "" {
		items = filterCourses(items, func(c Course) bool { return strings.EqualFold(c.Level, level) })
	}

	if len(items) == 0 {
		if known := c.Courses(key); len(known) > 0 {
			items = known[:min(fallbackSize, len(known))]
		}
	}

	limit := max(1, min(q.Limit, MaxLimit))
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []Course{}
	}
	return items, nil
}

func isBeginner(interest string) bool {
	lower := strings.ToLower(interest)
	for _, w := range beginnerWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func filterCourses(in []Course, keep func(Course) bool) []Course {
	var out []Course
	for _, c := range in {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
