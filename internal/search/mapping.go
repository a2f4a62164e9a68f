package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for instructor documents.
//
// Names use the simple analyzer rather than an English one: stemming person
// names produces garbage terms, while lowercased whole tokens keep fuzzy and
// prefix queries accurate.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = simple.Name

	docMapping := bleve.NewDocumentMapping()

	// Name - primary search target
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = simple.Name
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	firstNameFieldMapping := bleve.NewTextFieldMapping()
	firstNameFieldMapping.Analyzer = simple.Name
	firstNameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("first_name", firstNameFieldMapping)

	lastNameFieldMapping := bleve.NewTextFieldMapping()
	lastNameFieldMapping.Analyzer = simple.Name
	lastNameFieldMapping.Store = true
	lastNameFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("last_name", lastNameFieldMapping)

	// Department - searchable text, also stored for display
	departmentFieldMapping := bleve.NewTextFieldMapping()
	departmentFieldMapping.Analyzer = simple.Name
	departmentFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("department", departmentFieldMapping)

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Numeric fields for range filtering and sorting
	avgRatingFieldMapping := bleve.NewNumericFieldMapping()
	avgRatingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("avg_rating", avgRatingFieldMapping)

	numRatingsFieldMapping := bleve.NewNumericFieldMapping()
	numRatingsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("num_ratings", numRatingsFieldMapping)

	avgDifficultyFieldMapping := bleve.NewNumericFieldMapping()
	avgDifficultyFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("avg_difficulty", avgDifficultyFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
