// Package catalog holds the static course catalog and academic calendar
// behind the recommend_courses and lookup_schedule tools.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// ErrUnknownField is returned when a schedule field is not in the calendar.
var ErrUnknownField = errors.New("unknown schedule field")

// Course is one catalog entry.
type Course struct {
	Code    string   `yaml:"code" json:"code"`
	Title   string   `yaml:"title" json:"title"`
	Level   string   `yaml:"level" json:"level"`
	Credits int      `yaml:"credits" json:"credits"`
	Type    string   `yaml:"type" json:"type"`
	Tags    []string `yaml:"tags" json:"tags"`
}

// Category groups the courses of one interest area.
type Category struct {
	Name    string   `yaml:"name"`
	Courses []Course `yaml:"courses"`
}

// ScheduleEntry is one field of the academic calendar.
type ScheduleEntry struct {
	Field string `yaml:"field" json:"field"`
	Value string `yaml:"value" json:"value"`
}

type document struct {
	Aliases    map[string]string `yaml:"aliases"`
	Categories []Category        `yaml:"categories"`
	Schedule   []ScheduleEntry   `yaml:"schedule"`
}

// Catalog is immutable once parsed and safe for concurrent use.
type Catalog struct {
	aliases    map[string]string
	categories []Category
	byName     map[string]int
	schedule   []ScheduleEntry
	electives  *electiveIndex
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// Default returns the embedded catalog, parsed on first use.
func Default() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = Parse(defaultCatalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, errors.New("catalog has no categories")
	}

	c := &Catalog{
		aliases:    make(map[string]string, len(doc.Aliases)),
		categories: doc.Categories,
		byName:     make(map[string]int, len(doc.Categories)),
		schedule:   doc.Schedule,
	}
	for i, cat := range doc.Categories {
		name := strings.ToLower(strings.TrimSpace(cat.Name))
		if name == "" {
			return nil, fmt.Errorf("category %d has no name", i)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		c.categories[i].Name = name
		c.byName[name] = i
	}
	for alias, target := range doc.Aliases {
		c.aliases[strings.ToLower(alias)] = strings.ToLower(target)
	}
	seen := make(map[string]bool, len(doc.Schedule))
	for _, e := range doc.Schedule {
		if e.Field == "" || seen[e.Field] {
			return nil, fmt.Errorf("invalid or duplicate schedule field %q", e.Field)
		}
		seen[e.Field] = true
	}

	idx, err := newElectiveIndex(c.categories)
	if err != nil {
		return nil, fmt.Errorf("build elective index: %w", err)
	}
	c.electives = idx
	return c, nil
}

// Close releases the elective search index. The process-wide default
// catalog is never closed.
func (c *Catalog) Close() error {
	if c == nil || c.electives == nil {
		return nil
	}
	return c.electives.index.Close()
}

// Categories returns the category names in catalog order.
func (c *Catalog) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Courses returns the courses of a category, or nil when unknown.
func (c *Catalog) Courses(category string) []Course {
	i, ok := c.byName[category]
	if !ok {
		return nil
	}
	return append([]Course(nil), c.categories[i].Courses...)
}

// Schedule returns the calendar in its fixed field order.
func (c *Catalog) Schedule() []ScheduleEntry {
	return append([]ScheduleEntry(nil), c.schedule...)
}

// ScheduleValue looks up one calendar field.
func (c *Catalog) ScheduleValue(field string) (string, error) {
	for _, e := range c.schedule {
		if e.Field == field {
			return e.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
}

// ScheduleText renders the calendar as "field: value" lines.
func (c *Catalog) ScheduleText() string {
	lines := make([]string, len(c.schedule))
	for i, e := range c.schedule {
		lines[i] = e.Field + ": " + e.Value
	}
	return strings.Join(lines, "\n")
}
