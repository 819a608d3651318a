package catalog

import (
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/whitespace"
	"github.com/blevesearch/bleve/v2/mapping"
)

const titleWordsAnalyzer = "title_words"

var (
	vizInterestWords = []string{"visualization", "visualisation", "viz"}
	vizSynonyms      = []string{"visualization", "visualisation", "viz", "tableau", "chart", "charts", "graph", "graphs", "d3", "d3.js"}
)

// electiveIndex is an in-memory bleve index over every elective in the
// catalog. Document ids are positions in order.
type electiveIndex struct {
	index bleve.Index
	order []Course
}

func buildElectiveMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()
	// Title words split on whitespace only, so "d3.js" stays one term.
	err := indexMapping.AddCustomAnalyzer(titleWordsAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     whitespace.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	courseMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = titleWordsAnalyzer
	titleField.Store = false
	courseMapping.AddFieldMappingsAt("title", titleField)

	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = keyword.Name
	tagsField.Store = false
	courseMapping.AddFieldMappingsAt("tags", tagsField)

	indexMapping.DefaultMapping = courseMapping
	return indexMapping, nil
}

func newElectiveIndex(categories []Category) (*electiveIndex, error) {
	indexMapping, err := buildElectiveMapping()
	if err != nil {
		return nil, err
	}
	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, err
	}

	e := &electiveIndex{index: index}
	batch := index.NewBatch()
	for _, cat := range categories {
		for _, course := range cat.Courses {
			if !strings.EqualFold(course.Type, "elective") {
				continue
			}
			tags := make([]string, len(course.Tags))
			for i, t := range course.Tags {
				tags[i] = strings.ToLower(t)
			}
			doc := map[string]interface{}{
				"title": course.Title,
				"tags":  tags,
			}
			if err := batch.Index(strconv.Itoa(len(e.order)), doc); err != nil {
				return nil, err
			}
			e.order = append(e.order, course)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, err
	}
	return e, nil
}

// search returns the electives whose title words or tags contain any of
// terms, in catalog order.
func (e *electiveIndex) search(terms []string) ([]Course, error) {
	if len(e.order) == 0 {
		return nil, nil
	}
	query := bleve.NewDisjunctionQuery()
	for _, term := range terms {
		for _, field := range []string{"title", "tags"} {
			tq := bleve.NewTermQuery(term)
			tq.SetField(field)
			query.AddQuery(tq)
		}
	}

	req := bleve.NewSearchRequest(query)
	req.Size = len(e.order)
	res, err := e.index.Search(req)
	if err != nil {
		return nil, err
	}

	hit := make(map[int]bool, len(res.Hits))
	for _, h := range res.Hits {
		if i, err := strconv.Atoi(h.ID); err == nil {
			hit[i] = true
		}
	}
	var out []Course
	for i, course := range e.order {
		if hit[i] {
			out = append(out, course)
		}
	}
	return out, nil
}

// keywordElectives is the cross-category fallback for visualization style
// interests that name no category.
func (c *Catalog) keywordElectives(interestKey string) ([]Course, error) {
	lower := strings.ToLower(interestKey)
	wantsViz := false
	for _, w := range vizInterestWords {
		if strings.Contains(lower, w) {
			wantsViz = true
			break
		}
	}
	if !wantsViz {
		return nil, nil
	}
	return c.electives.search(vizSynonyms)
}
