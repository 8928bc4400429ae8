package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the mapping for setup documents.
//
// Labels use the simple analyzer: car and track names are proper nouns, so stemming
// only hurts ("Spa" must not match "Spas"). Keys and category are keywords for exact
// filtering.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = simple.Name

	docMapping := bleve.NewDocumentMapping()

	for _, name := range []string{"car", "track", "file"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = simple.Name
		fm.Store = true
		fm.IncludeTermVectors = true
		docMapping.AddFieldMappingsAt(name, fm)
	}

	for _, name := range []string{"id", "car_key", "track_key", "category"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		docMapping.AddFieldMappingsAt(name, fm)
	}

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}
