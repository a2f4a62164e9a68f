// Package domain defines the core types shared across the lookup pipeline.
package domain

import (
	"strings"
)

// CanonicalName is the normalized form of a scraped instructor name.
// FullName is always trim(FirstName + " " + LastName).
type CanonicalName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

// NewCanonicalName builds a CanonicalName from its parts, deriving FullName.
func NewCanonicalName(firstName, lastName string) CanonicalName {
	return CanonicalName{
		FirstName: firstName,
		LastName:  lastName,
		FullName:  strings.TrimSpace(firstName + " " + lastName),
	}
}

// School identifies the institution a candidate teaches at.
// ID is the opaque identifier used by the ratings service.
type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RatingTag is a community-applied descriptor with its vote count.
// Passthrough data; the pipeline never interprets it.
type RatingTag struct {
	TagName  string `json:"tag_name"`
	TagCount int    `json:"tag_count"`
}

// Candidate is a single instructor record returned by the ratings search.
// FirstName, LastName, Department, and School participate in matching;
// the rating fields are passthrough for the UI.
type Candidate struct {
	ID         string `json:"id"`
	LegacyID   int64  `json:"legacy_id,omitempty"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	Department string `json:"department,omitempty"`
	School     School `json:"school"`

	AvgRating             float64 `json:"avg_rating"`
	NumRatings            int     `json:"num_ratings"`
	AvgDifficulty         float64 `json:"avg_difficulty"`
	WouldTakeAgainPercent float64 `json:"would_take_again_percent"`

	RatingTags []RatingTag `json:"rating_tags,omitempty"`
}

// OutcomeKind discriminates the variants of a MatchOutcome.
type OutcomeKind string

// Outcome kinds. Exactly one holds per lookup.
const (
	OutcomeFound                 OutcomeKind = "found"
	OutcomeNotFoundAtInstitution OutcomeKind = "not_found_at_institution"
	OutcomeNoCandidates          OutcomeKind = "no_candidates"
	OutcomeLookupError           OutcomeKind = "lookup_error"
)

// MatchOutcome is the tagged result of a lookup. Candidate is set only for
// OutcomeFound; Reason only for OutcomeLookupError.
type MatchOutcome struct {
	Kind      OutcomeKind `json:"kind"`
	Candidate *Candidate  `json:"candidate,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// Found wraps a matched candidate.
func Found(c Candidate) MatchOutcome {
	return MatchOutcome{Kind: OutcomeFound, Candidate: &c}
}

// NotFoundAtInstitution reports that candidates existed but none belonged to
// the target institution or passed a matching tier.
func NotFoundAtInstitution() MatchOutcome {
	return MatchOutcome{Kind: OutcomeNotFoundAtInstitution}
}

// NoCandidates reports that the search returned zero results.
func NoCandidates() MatchOutcome {
	return MatchOutcome{Kind: OutcomeNoCandidates}
}

// LookupFailure reports a transport or parsing failure from the ratings
// service. Unlike the other variants it is never cached.
func LookupFailure(reason string) MatchOutcome {
	return MatchOutcome{Kind: OutcomeLookupError, Reason: reason}
}

// Cacheable reports whether this outcome may be written to the result cache.
// Lookup errors are retried on the next request instead of being remembered
// as permanent negatives.
func (o MatchOutcome) Cacheable() bool {
	return o.Kind != OutcomeLookupError
}
