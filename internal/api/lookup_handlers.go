package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/emilyynorton/NotreDameRMP/internal/domain"
	"github.com/emilyynorton/NotreDameRMP/internal/service"
)

func (s *Server) registerLookupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "lookupInstructor",
		Method:      http.MethodPost,
		Path:        "/api/v1/lookup",
		Summary:     "Look up an instructor",
		Description: "Resolves a scraped instructor name to a rating outcome, consulting the cache first",
		Tags:        []string{"Lookup"},
	}, s.handleLookup)

	huma.Register(s.api, huma.Operation{
		OperationID: "lookupInstructorBatch",
		Method:      http.MethodPost,
		Path:        "/api/v1/lookup/batch",
		Summary:     "Look up several instructors",
		Description: "Resolves a page worth of instructor names, spacing external searches apart",
		Tags:        []string{"Lookup"},
	}, s.handleLookupBatch)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshInstructor",
		Method:      http.MethodPost,
		Path:        "/api/v1/lookup/refresh",
		Summary:     "Refresh an instructor",
		Description: "Re-resolves an instructor name against the ratings service, bypassing the cache",
		Tags:        []string{"Lookup"},
	}, s.handleRefresh)
}

// === DTOs ===

// LookupRequest is the request body for a single lookup.
type LookupRequest struct {
	Name       string `json:"name" validate:"required,max=200" doc:"Instructor name as scraped from class search"`
	Department string `json:"department,omitempty" validate:"omitempty,max=100" doc:"Course department, used as a matching hint"`
}

// LookupInput wraps the lookup request for Huma.
type LookupInput struct {
	Body LookupRequest
}

// LookupResponse contains a single lookup result.
type LookupResponse struct {
	RequestID string                `json:"request_id" doc:"Unique token for this lookup"`
	RawName   string                `json:"raw_name" doc:"Name as it appeared in the request"`
	Name      *domain.CanonicalName `json:"name,omitempty" doc:"Normalized name, absent when normalization failed"`
	Outcome   domain.MatchOutcome   `json:"outcome" doc:"Match outcome"`
}

// LookupOutput wraps the lookup response for Huma.
type LookupOutput struct {
	Body LookupResponse
}

// BatchLookupRequest is the request body for a batch lookup.
type BatchLookupRequest struct {
	Names      []string `json:"names" validate:"required,min=1,max=100,dive,max=200" doc:"Instructor names in page order"`
	Department string   `json:"department,omitempty" validate:"omitempty,max=100" doc:"Course department, used as a matching hint"`
}

// BatchLookupInput wraps the batch lookup request for Huma.
type BatchLookupInput struct {
	Body BatchLookupRequest
}

// BatchLookupResponse contains results for a batch lookup, in request order.
type BatchLookupResponse struct {
	Results []LookupResponse `json:"results" doc:"One result per requested name, in order"`
}

// BatchLookupOutput wraps the batch lookup response for Huma.
type BatchLookupOutput struct {
	Body BatchLookupResponse
}

// === Handlers ===

func (s *Server) handleLookup(ctx context.Context, input *LookupInput) (*LookupOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	result, err := s.lookups.Lookup(ctx, input.Body.Name, input.Body.Department)
	if err != nil {
		return nil, err
	}

	return &LookupOutput{Body: toLookupResponse(result)}, nil
}

func (s *Server) handleLookupBatch(ctx context.Context, input *BatchLookupInput) (*BatchLookupOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	results, err := s.lookups.LookupMany(ctx, input.Body.Names, input.Body.Department)
	if err != nil {
		return nil, err
	}

	resp := make([]LookupResponse, len(results))
	for i := range results {
		resp[i] = toLookupResponse(&results[i])
	}

	return &BatchLookupOutput{Body: BatchLookupResponse{Results: resp}}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *LookupInput) (*LookupOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	result, err := s.lookups.Refresh(ctx, input.Body.Name, input.Body.Department)
	if err != nil {
		return nil, err
	}

	return &LookupOutput{Body: toLookupResponse(result)}, nil
}

func toLookupResponse(r *service.Result) LookupResponse {
	return LookupResponse{
		RequestID: r.RequestID,
		RawName:   r.RawName,
		Name:      r.Name,
		Outcome:   r.Outcome,
	}
}
