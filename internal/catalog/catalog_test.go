package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func codes(courses []Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Code
	}
	return out
}

func TestDefaultCatalogShape(t *testing.T) {
	c := mustDefault(t)
	assert.Equal(t, []string{
		"data science", "artificial intelligence", "web", "cloud",
		"cybersecurity", "data engineering", "business analytics",
	}, c.Categories())
	assert.Len(t, c.Courses("data science"), 8)
	assert.Nil(t, c.Courses("astronomy"))
}

func TestNormalizeInterest(t *testing.T) {
	c := mustDefault(t)
	tests := []struct {
		in   string
		want string
	}{
		{"ML", "data science"},
		{"machine learning", "data science"},
		{"Data-Science", "data science"},
		{"data   science!", "data science"},
		{"DataScience", "data science"},
		{"AI", "artificial intelligence"},
		{"web development", "web"},
		{"Web-Dev", "web"},
		{"security", "cybersecurity"},
		{"Cloud Security!", "cloud"},
		{"BA", "business analytics"},
		{"data visualization", "data visualization"},
		{"  Astronomy  ", "astronomy"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, c.NormalizeInterest(tt.in))
		})
	}
}

func TestRecommend(t *testing.T) {
	c := mustDefault(t)
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "alias and full name agree",
			query: Query{Interest: "ml", Limit: DefaultLimit},
			want:  []string{"DS101", "DS201", "DS230", "DS310"},
		},
		{
			name:  "visualization crosses categories",
			query: Query{Interest: "data visualization", Limit: DefaultLimit},
			want:  []string{"DS230", "BA320", "BA325"},
		},
		{
			name:  "beginner phrasing narrows to UG electives",
			query: Query{Interest: "beginner data science", Limit: DefaultLimit},
			want:  []string{"DS230", "DS330"},
		},
		{
			name:  "explicit filters",
			query: Query{Interest: "cybersecurity", Limit: DefaultLimit, Type: "ELECTIVE", Level: "pg"},
			want:  []string{"CY330", "CY410"},
		},
		{
			name:  "filters that empty a known category fall back",
			query: Query{Interest: "artificial intelligence", Limit: 10, Type: "core", Level: "PG"},
			want:  []string{"AI210", "AI320", "AI410", "AI430"},
		},
		{
			name:  "zero limit clamps to one",
			query: Query{Interest: "web", Limit: 0},
			want:  []string{"CS120"},
		},
		{
			name:  "large limit clamps to ten",
			query: Query{Interest: "cloud", Limit: 50},
			want:  []string{"CL200", "CL310", "CL320", "CL350", "CL410"},
		},
		{
			name:  "unknown interest",
			query: Query{Interest: "astronomy", Limit: DefaultLimit},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Recommend(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(got))
		})
	}
}

func TestRecommendAliasEquivalence(t *testing.T) {
	c := mustDefault(t)
	a, err := c.Recommend(Query{Interest: "ml", Limit: DefaultLimit})
	require.NoError(t, err)
	b, err := c.Recommend(Query{Interest: "machine learning", Limit: DefaultLimit})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSchedule(t *testing.T) {
	c := mustDefault(t)

	lines := []string{
		"term_start: 2025-09-01",
		"add_drop_deadline: 2025-09-12",
		"midterms_window: 2025-10-20 to 2025-10-31",
		"finals_window: 2025-12-10 to 2025-12-19",
		"graduation_ceremony: 2025-12-21",
		"class_times: UG: Mon–Fri 09:00–17:00; PG: Mon–Thu 18:00–20:00; Labs: Sat 10:00–12:00 (as scheduled)",
	}
	want := ""
	for i, l := range lines {
		if i > 0 {
			want += "\n"
		}
		want += l
	}
	assert.Equal(t, want, c.ScheduleText())

	v, err := c.ScheduleValue("midterms_window")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-20 to 2025-10-31", v)

	_, err = c.ScheduleValue("spring_break")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := map[string]string{
		"no categories":   "aliases: {}\n",
		"duplicate field": "categories: [{name: web, courses: []}]\nschedule: [{field: a, value: x}, {field: a, value: y}]\n",
		"nameless":        "categories: [{name: '', courses: []}]\n",
		"not yaml":        "categories: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

const smallCatalog = `
aliases: {frontend: web}
categories:
  - name: web
    courses:
      - {code: CS120, title: Web Dev Basics, level: UG, credits: 3, type: core, tags: [html]}
schedule:
  - {field: term_start, value: "2025-09-01"}
`

func TestWatcherReloadsAndKeepsLastGood(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []string{"web"}, w.Current().Categories())

	updated := smallCatalog + `  - {field: finals_window, value: "2025-12-10 to 2025-12-19"}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		_, err := w.Current().ScheduleValue("finals_window")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("categories: ["), 0o644))
	time.Sleep(500 * time.Millisecond)
	_, err = w.Current().ScheduleValue("finals_window")
	assert.NoError(t, err, "a broken file keeps the previous catalog")
}

func TestWatcherClosesReplacedCatalogs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	first := w.Current()

	reloadWith := func(extra string) *Catalog {
		t.Helper()
		body := smallCatalog + `  - {field: ` + extra + `, value: "x"}` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		require.Eventually(t, func() bool {
			_, err := w.Current().ScheduleValue(extra)
			return err == nil
		}, 5*time.Second, 20*time.Millisecond)
		return w.Current()
	}

	second := reloadWith("midterms_window")
	_, err = first.electives.index.DocCount()
	assert.NoError(t, err, "the catalog replaced by the latest reload stays usable")

	third := reloadWith("finals_window")
	_, err = first.electives.index.DocCount()
	assert.Error(t, err, "catalogs two reloads old are closed")

	require.NoError(t, w.Close())
	for _, c := range []*Catalog{second, third} {
		_, err := c.electives.index.DocCount()
		assert.Error(t, err)
	}
}

func TestCloseNilCatalog(t *testing.T) {
	var c *Catalog
	assert.NoError(t, c.Close())
}
