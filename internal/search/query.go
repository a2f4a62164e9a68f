package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query      string // User's search query
	Department string // Filter by department text
	MinRating  float64

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "name", "rating"
	SortOrder string // "asc", "desc"
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		SortOrder: "desc",
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single search result.
type Hit struct {
	ID            string  `json:"id"`
	Score         float64 `json:"score"`
	Name          string  `json:"name"`
	FirstName     string  `json:"first_name,omitempty"`
	LastName      string  `json:"last_name"`
	Department    string  `json:"department,omitempty"`
	AvgRating     float64 `json:"avg_rating,omitempty"`
	NumRatings    int     `json:"num_ratings,omitempty"`
	AvgDifficulty float64 `json:"avg_difficulty,omitempty"`
}

// Search executes a search query.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	addSorting(searchRequest, params)

	searchRequest.Fields = []string{
		"id", "name", "first_name", "last_name", "department",
		"avg_rating", "num_ratings", "avg_difficulty",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if n, ok := hit.Fields["name"].(string); ok {
			h.Name = n
		}
		if fn, ok := hit.Fields["first_name"].(string); ok {
			h.FirstName = fn
		}
		if ln, ok := hit.Fields["last_name"].(string); ok {
			h.LastName = ln
		}
		if d, ok := hit.Fields["department"].(string); ok {
			h.Department = d
		}
		if r, ok := hit.Fields["avg_rating"].(float64); ok {
			h.AvgRating = r
		}
		if nr, ok := hit.Fields["num_ratings"].(float64); ok {
			h.NumRatings = int(nr)
		}
		if ad, ok := hit.Fields["avg_difficulty"].(float64); ok {
			h.AvgDifficulty = ad
		}

		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		textQueries := []query.Query{}

		// Display name match with highest boost
		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		// Last name alone still matches
		lastNameMatch := bleve.NewMatchQuery(params.Query)
		lastNameMatch.SetField("last_name")
		lastNameMatch.SetBoost(2.0)
		textQueries = append(textQueries, lastNameMatch)

		// Fuzzy matching for typo tolerance
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.Department != "" {
		deptMatch := bleve.NewMatchQuery(params.Department)
		deptMatch.SetField("department")
		queries = append(queries, deptMatch)
	}

	if params.MinRating > 0 {
		min := params.MinRating
		rangeQuery := bleve.NewNumericRangeQuery(&min, nil)
		rangeQuery.SetField("avg_rating")
		queries = append(queries, rangeQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "name":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-last_name", "-name"})
		} else {
			req.SortBy([]string{"last_name", "name"})
		}
	case "rating":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"avg_rating"})
		} else {
			req.SortBy([]string{"-avg_rating"})
		}
	default:
		// Relevance (score) is default
		req.SortBy([]string{"-_score"})
	}
}
