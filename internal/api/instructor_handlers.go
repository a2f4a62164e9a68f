package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/emilyynorton/NotreDameRMP/internal/domain"
	domainerrors "github.com/emilyynorton/NotreDameRMP/internal/errors"
	"github.com/emilyynorton/NotreDameRMP/internal/search"
)

func (s *Server) registerInstructorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listInstructors",
		Method:      http.MethodGet,
		Path:        "/api/v1/instructors",
		Summary:     "List cached instructors",
		Description: "Returns all cached lookup outcomes",
		Tags:        []string{"Instructors"},
	}, s.handleListInstructors)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchInstructors",
		Method:      http.MethodGet,
		Path:        "/api/v1/instructors/search",
		Summary:     "Search instructors",
		Description: "Full-text search over instructors resolved by earlier lookups",
		Tags:        []string{"Instructors"},
	}, s.handleSearchInstructors)
}

// === DTOs ===

// CachedInstructorResponse is one cached outcome in a listing.
type CachedInstructorResponse struct {
	FullName  string              `json:"full_name" doc:"Normalized instructor name"`
	Outcome   domain.MatchOutcome `json:"outcome" doc:"Cached match outcome"`
	FetchedAt time.Time           `json:"fetched_at" doc:"When the outcome was resolved"`
}

// ListInstructorsResponse contains the cached outcome listing.
type ListInstructorsResponse struct {
	Instructors []CachedInstructorResponse `json:"instructors" doc:"Cached outcomes"`
	Total       int                        `json:"total" doc:"Number of cached outcomes"`
}

// ListInstructorsOutput wraps the listing for Huma.
type ListInstructorsOutput struct {
	Body ListInstructorsResponse
}

// SearchInstructorsInput contains query parameters for instructor search.
type SearchInstructorsInput struct {
	Query      string  `query:"q" doc:"Search text, matched against instructor names"`
	Department string  `query:"department" doc:"Filter by department"`
	MinRating  float64 `query:"min_rating" minimum:"0" maximum:"5" doc:"Minimum average rating"`
	Limit      int     `query:"limit" minimum:"1" maximum:"100" doc:"Page size, default 20"`
	Offset     int     `query:"offset" minimum:"0" doc:"Result offset"`
	SortBy     string  `query:"sort" enum:"relevance,name,rating" doc:"Sort field, default relevance"`
	SortOrder  string  `query:"order" enum:"asc,desc" doc:"Sort direction, default desc"`
}

// SearchInstructorsOutput wraps search results for Huma.
type SearchInstructorsOutput struct {
	Body search.Result
}

// === Handlers ===

func (s *Server) handleListInstructors(ctx context.Context, _ *struct{}) (*ListInstructorsOutput, error) {
	outcomes, err := s.store.ListOutcomes(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "could not list cached outcomes")
	}

	resp := make([]CachedInstructorResponse, len(outcomes))
	for i, o := range outcomes {
		resp[i] = CachedInstructorResponse{
			FullName:  o.FullName,
			Outcome:   o.Outcome,
			FetchedAt: o.FetchedAt,
		}
	}

	return &ListInstructorsOutput{Body: ListInstructorsResponse{
		Instructors: resp,
		Total:       len(resp),
	}}, nil
}

func (s *Server) handleSearchInstructors(ctx context.Context, input *SearchInstructorsInput) (*SearchInstructorsOutput, error) {
	if s.index == nil {
		return nil, domainerrors.Internal("search index not configured")
	}

	params := search.DefaultParams()
	params.Query = input.Query
	params.Department = input.Department
	params.MinRating = input.MinRating
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		params.SortOrder = input.SortOrder
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}

	return &SearchInstructorsOutput{Body: *result}, nil
}
