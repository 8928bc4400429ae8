package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a catalog search.
type Params struct {
	Query    string
	Category string // car category filter, empty for all
	CarKey   string
	TrackKey string
	Limit    int
	Offset   int
}

// Result holds the hits of one search.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is one matching setup file.
type Hit struct {
	Path     string  `json:"path"`
	Score    float64 `json:"score"`
	CarKey   string  `json:"car_key"`
	TrackKey string  `json:"track_key"`
	Category string  `json:"category"`
	Car      string  `json:"car"`
	Track    string  `json:"track"`
	File     string  `json:"file"`
}

const defaultLimit = 20

// Search runs params against the index. Hits are ordered by score, then path.
func (s *SetupIndex) Search(ctx context.Context, params Params) (*Result, error) {
	if params.Limit <= 0 {
		params.Limit = defaultLimit
	}

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	req.SortBy([]string{"-_score", "_id"})
	req.Fields = []string{"car_key", "track_key", "category", "car", "track", "file"}

	s.mu.RLock()
	res, err := s.index.SearchInContext(ctx, req)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		result.Hits = append(result.Hits, Hit{
			Path:     h.ID,
			Score:    h.Score,
			CarKey:   stringField(h.Fields, "car_key"),
			TrackKey: stringField(h.Fields, "track_key"),
			Category: stringField(h.Fields, "category"),
			Car:      stringField(h.Fields, "car"),
			Track:    stringField(h.Fields, "track"),
			File:     stringField(h.Fields, "file"),
		})
	}
	return result, nil
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

// buildQuery matches the text against car, track and file labels, with car and track
// weighted above file names. A prefix clause on each word supports as-you-type search.
// Filters are ANDed with the text clause.
func buildQuery(params Params) query.Query {
	var queries []query.Query

	if text := strings.TrimSpace(params.Query); text != "" {
		var textQueries []query.Query
		for field, boost := range map[string]float64{"car": 3.0, "track": 3.0, "file": 1.0} {
			m := bleve.NewMatchQuery(text)
			m.SetField(field)
			m.SetBoost(boost)
			textQueries = append(textQueries, m)

			for _, word := range strings.Fields(strings.ToLower(text)) {
				if len(word) < 2 {
					continue
				}
				p := bleve.NewPrefixQuery(word)
				p.SetField(field)
				p.SetBoost(boost / 2)
				textQueries = append(textQueries, p)
			}
		}
		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	for field, value := range map[string]string{
		"category":  params.Category,
		"car_key":   params.CarKey,
		"track_key": params.TrackKey,
	} {
		if value == "" {
			continue
		}
		tq := bleve.NewTermQuery(value)
		tq.SetField(field)
		queries = append(queries, tq)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}
