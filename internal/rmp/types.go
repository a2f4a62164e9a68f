// Package rmp provides a client for the unofficial RateMyProfessors
// GraphQL search API.
package rmp

// Raw GraphQL wire types (internal). The response shape is duck-typed on the
// service side, so every field is optional at the decoding layer; required
// identity fields are enforced afterwards by candidate validation.

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables queryVariables `json:"variables"`
}

type queryVariables struct {
	Query teacherSearchQuery `json:"query"`
}

type teacherSearchQuery struct {
	Text     string `json:"text"`
	SchoolID string `json:"schoolID"`
}

type graphqlResponse struct {
	Data *struct {
		NewSearch *struct {
			Teachers *struct {
				DidFallback bool      `json:"didFallback"`
				Edges       []rawEdge `json:"edges"`
				ResultCount int       `json:"resultCount"`
			} `json:"teachers"`
		} `json:"newSearch"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type rawEdge struct {
	Cursor string     `json:"cursor"`
	Node   rawTeacher `json:"node"`
}

type rawTeacher struct {
	ID         string     `json:"id"`
	LegacyID   int64      `json:"legacyId"`
	FirstName  string     `json:"firstName"`
	MiddleName string     `json:"middleName"`
	LastName   string     `json:"lastName"`
	Department string     `json:"department"`
	School     *rawSchool `json:"school"`

	AvgRating             float64 `json:"avgRating"`
	NumRatings            int     `json:"numRatings"`
	WouldTakeAgainPercent float64 `json:"wouldTakeAgainPercent"`
	AvgDifficulty         float64 `json:"avgDifficulty"`

	TeacherRatingTags []rawRatingTag `json:"teacherRatingTags"`
}

type rawSchool struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawRatingTag struct {
	TagName  string `json:"tagName"`
	TagCount int    `json:"tagCount"`
}
