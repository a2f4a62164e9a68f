package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/emilyynorton/NotreDameRMP/internal/errors"
	"github.com/emilyynorton/NotreDameRMP/internal/extract"
)

func (s *Server) registerExtractRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "extractInstructors",
		Method:      http.MethodPost,
		Path:        "/api/v1/extract",
		Summary:     "Extract instructor names",
		Description: "Pulls instructor names out of a class search results page, deduplicated in document order",
		Tags:        []string{"Extract"},
	}, s.handleExtract)
}

// === DTOs ===

// ExtractRequest is the request body for instructor extraction.
type ExtractRequest struct {
	HTML string `json:"html" validate:"required" doc:"Class search page HTML"`
}

// ExtractInput wraps the extract request for Huma.
type ExtractInput struct {
	Body ExtractRequest
}

// ExtractResponse contains the extracted instructor names.
type ExtractResponse struct {
	Instructors []string `json:"instructors" doc:"Distinct instructor names in document order"`
}

// ExtractOutput wraps the extract response for Huma.
type ExtractOutput struct {
	Body ExtractResponse
}

// === Handlers ===

func (s *Server) handleExtract(_ context.Context, input *ExtractInput) (*ExtractOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	names, err := extract.Instructors(strings.NewReader(input.Body.HTML))
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "could not parse page HTML")
	}

	if names == nil {
		names = []string{}
	}

	return &ExtractOutput{Body: ExtractResponse{Instructors: names}}, nil
}
