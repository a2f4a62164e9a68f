// Package search provides full-text search over resolved instructors using
// Bleve, with fuzzy matching for misspelled names and department filtering.
package search

import (
	"github.com/emilyynorton/NotreDameRMP/internal/domain"
)

// InstructorDocument is the document structure for the Bleve index. Only
// instructors that resolved to a ratings profile are indexed.
type InstructorDocument struct {
	ID string `json:"id"` // Teacher global ID on the ratings site

	// Name as displayed in class search, the primary search target.
	Name string `json:"name"`

	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name"`
	Department string `json:"department,omitempty"`

	// Numeric fields for range queries and sorting
	AvgRating     float64 `json:"avg_rating,omitempty"`
	NumRatings    int     `json:"num_ratings,omitempty"`
	AvgDifficulty float64 `json:"avg_difficulty,omitempty"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *InstructorDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":        d.ID,
		"name":      d.Name,
		"last_name": d.LastName,
	}

	if d.FirstName != "" {
		m["first_name"] = d.FirstName
	}
	if d.Department != "" {
		m["department"] = d.Department
	}
	if d.AvgRating > 0 {
		m["avg_rating"] = d.AvgRating
	}
	if d.NumRatings > 0 {
		m["num_ratings"] = d.NumRatings
	}
	if d.AvgDifficulty > 0 {
		m["avg_difficulty"] = d.AvgDifficulty
	}

	return m
}

// CandidateToDocument converts a matched candidate to an InstructorDocument.
// The display name is the raw name the instructor appeared under in class
// search, so later searches can find them by either form.
func CandidateToDocument(displayName string, c *domain.Candidate) *InstructorDocument {
	return &InstructorDocument{
		ID:            c.ID,
		Name:          displayName,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Department:    c.Department,
		AvgRating:     c.AvgRating,
		NumRatings:    c.NumRatings,
		AvgDifficulty: c.AvgDifficulty,
	}
}
