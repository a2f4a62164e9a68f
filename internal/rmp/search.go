package rmp

import (
	"context"
	"encoding/json/v2"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/emilyynorton/NotreDameRMP/internal/domain"
)

// newSearchTeachersQuery mirrors the query the ratings site itself issues from
// its search page. Field selection matters: the endpoint rejects unknown
// fields.
const newSearchTeachersQuery = `query NewSearchTeachersQuery($query: TeacherSearchQuery!) {
  newSearch {
    teachers(query: $query) {
      didFallback
      edges {
        cursor
        node {
          id
          legacyId
          firstName
          middleName
          lastName
          department
          school {
            id
            name
          }
          avgRating
          numRatings
          wouldTakeAgainPercent
          avgDifficulty
          teacherRatingTags {
            tagName
            tagCount
          }
        }
      }
      resultCount
    }
  }
}`

// candidateRecord holds the identity fields a node must carry to be usable
// downstream. Nodes missing any of them are dropped at this boundary.
type candidateRecord struct {
	ID        string `validate:"required"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	SchoolID  string `validate:"required"`
}

var recordValidator = validator.New()

// Search runs a teacher search scoped to a school and returns the raw
// candidate list in API order. Malformed records are skipped, not fatal.
func (c *Client) Search(ctx context.Context, text, schoolID string) ([]domain.Candidate, error) {
	reqBody := graphqlRequest{
		Query: newSearchTeachersQuery,
		Variables: queryVariables{
			Query: teacherSearchQuery{
				Text:     text,
				SchoolID: schoolID,
			},
		},
	}

	body, err := c.doQuery(ctx, schoolID, reqBody)
	if err != nil {
		return nil, wrapError("search", text, err)
	}

	var resp graphqlResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", text, fmt.Errorf("%w: %v", ErrBadResponse, err))
	}
	if len(resp.Errors) > 0 {
		return nil, wrapError("search", text, fmt.Errorf("%w: %s", ErrBadResponse, resp.Errors[0].Message))
	}
	if resp.Data == nil || resp.Data.NewSearch == nil || resp.Data.NewSearch.Teachers == nil {
		return nil, wrapError("search", text, ErrBadResponse)
	}

	edges := resp.Data.NewSearch.Teachers.Edges
	candidates := make([]domain.Candidate, 0, len(edges))
	for i := range edges {
		node := &edges[i].Node
		rec := candidateRecord{
			ID:        node.ID,
			FirstName: node.FirstName,
			LastName:  node.LastName,
		}
		if node.School != nil {
			rec.SchoolID = node.School.ID
		}
		if err := recordValidator.Struct(rec); err != nil {
			c.logger.Warn("skipping malformed candidate record",
				"text", text,
				"index", i,
			)
			continue
		}
		candidates = append(candidates, convertTeacher(node))
	}

	c.logger.Debug("ratings search complete",
		"text", text,
		"result_count", resp.Data.NewSearch.Teachers.ResultCount,
		"kept", len(candidates),
	)

	return candidates, nil
}

func convertTeacher(node *rawTeacher) domain.Candidate {
	cand := domain.Candidate{
		ID:                    node.ID,
		LegacyID:              node.LegacyID,
		FirstName:             node.FirstName,
		MiddleName:            node.MiddleName,
		LastName:              node.LastName,
		Department:            node.Department,
		AvgRating:             node.AvgRating,
		NumRatings:            node.NumRatings,
		AvgDifficulty:         node.AvgDifficulty,
		WouldTakeAgainPercent: node.WouldTakeAgainPercent,
	}
	if node.School != nil {
		cand.School = domain.School{
			ID:   node.School.ID,
			Name: node.School.Name,
		}
	}
	for _, tag := range node.TeacherRatingTags {
		cand.RatingTags = append(cand.RatingTags, domain.RatingTag{
			TagName:  tag.TagName,
			TagCount: tag.TagCount,
		})
	}
	return cand
}
