// Package service coordinates instructor lookups: normalization, cache
// consultation, external search, candidate matching, and result persistence.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/emilyynorton/NotreDameRMP/internal/cache"
	"github.com/emilyynorton/NotreDameRMP/internal/domain"
	"github.com/emilyynorton/NotreDameRMP/internal/errors"
	"github.com/emilyynorton/NotreDameRMP/internal/id"
	"github.com/emilyynorton/NotreDameRMP/internal/match"
	"github.com/emilyynorton/NotreDameRMP/internal/names"
	"github.com/emilyynorton/NotreDameRMP/internal/search"
)

const defaultBatchDelay = 300 * time.Millisecond

// Searcher runs a teacher search against the ratings API.
type Searcher interface {
	Search(ctx context.Context, text, schoolID string) ([]domain.Candidate, error)
}

// Indexer receives resolved instructors for full-text search. May be nil.
type Indexer interface {
	IndexInstructor(doc *search.InstructorDocument) error
}

// Result is the response to a single lookup.
type Result struct {
	// RequestID is a unique token for this lookup. Clients use it to
	// discard responses from lookups they no longer care about.
	RequestID string `json:"request_id"`

	// RawName is the instructor name as it appeared in class search.
	RawName string `json:"raw_name"`

	// Name is the normalized form, nil when normalization was impossible.
	Name *domain.CanonicalName `json:"name,omitempty"`

	Outcome domain.MatchOutcome `json:"outcome"`
}

// LookupService resolves instructor names to rating outcomes.
type LookupService struct {
	searcher   Searcher
	cache      *cache.ResultCache
	index      Indexer
	logger     *slog.Logger
	schoolID   string
	schoolName string
	batchDelay time.Duration

	// Collapses concurrent lookups for the same instructor into one
	// external search.
	group singleflight.Group
}

// Config holds LookupService construction parameters.
type Config struct {
	Searcher Searcher
	Cache    *cache.ResultCache
	Index    Indexer
	Logger   *slog.Logger

	// SchoolID is the encoded global school ID lookups are scoped to.
	SchoolID string
	// SchoolName is the lowercased fragment matched against candidate
	// school names.
	SchoolName string
	// BatchDelay is the pause between consecutive external searches in
	// LookupMany. Zero means the 300ms default.
	BatchDelay time.Duration
}

// NewLookupService creates a lookup service.
func NewLookupService(cfg Config) *LookupService {
	delay := cfg.BatchDelay
	if delay == 0 {
		delay = defaultBatchDelay
	}
	return &LookupService{
		searcher:   cfg.Searcher,
		cache:      cfg.Cache,
		index:      cfg.Index,
		logger:     cfg.Logger,
		schoolID:   cfg.SchoolID,
		schoolName: cfg.SchoolName,
		batchDelay: delay,
	}
}

// Lookup resolves a single instructor name, consulting the cache first.
// Placeholder names ("TBD", "Staff", "TBA") and empty input are rejected
// with a validation error.
func (s *LookupService) Lookup(ctx context.Context, rawName, department string) (*Result, error) {
	result, _, err := s.lookup(ctx, rawName, department, false)
	return result, err
}

// Refresh re-resolves an instructor, bypassing and then replacing any
// cached outcome.
func (s *LookupService) Refresh(ctx context.Context, rawName, department string) (*Result, error) {
	result, _, err := s.lookup(ctx, rawName, department, true)
	return result, err
}

// lookup is the shared resolve path. The bool reports whether an external
// search was actually issued.
func (s *LookupService) lookup(ctx context.Context, rawName, department string, bypassCache bool) (*Result, bool, error) {
	trimmed := strings.TrimSpace(rawName)
	if trimmed == "" {
		return nil, false, errors.Validation("instructor name is empty")
	}
	if names.IsSentinel(trimmed) {
		return nil, false, errors.Validationf("placeholder instructor name: %s", trimmed)
	}

	canonical := names.Normalize(trimmed)

	if !bypassCache {
		outcome, ok, err := s.cache.Get(ctx, canonical.FullName)
		if err != nil {
			return nil, false, errors.Wrap(err, errors.CodeInternal, "read outcome cache")
		}
		if ok {
			return s.newResult(trimmed, canonical, outcome), false, nil
		}
	}

	v, err, _ := s.group.Do(canonical.FullName, func() (any, error) {
		return s.resolve(ctx, trimmed, canonical, department), nil
	})
	if err != nil {
		return nil, true, err
	}

	outcome := v.(domain.MatchOutcome)
	return s.newResult(trimmed, canonical, outcome), true, nil
}

// resolve performs the external search and candidate matching. Transient
// failures become a LookupFailure outcome, which is never cached, so the
// next lookup retries.
func (s *LookupService) resolve(ctx context.Context, rawName string, canonical *domain.CanonicalName, department string) domain.MatchOutcome {
	searchText := names.SearchText(rawName)

	candidates, err := s.searcher.Search(ctx, searchText, s.schoolID)
	if err != nil {
		s.logger.Warn("instructor search failed",
			"name", rawName,
			"error", err,
		)
		return domain.LookupFailure(err.Error())
	}

	var outcome domain.MatchOutcome
	switch {
	case len(candidates) == 0:
		outcome = domain.NoCandidates()
	default:
		atSchool := match.FilterByInstitution(candidates, s.schoolID, s.schoolName)
		if len(atSchool) == 0 {
			outcome = domain.NotFoundAtInstitution()
		} else {
			outcome = match.Match(atSchool, *canonical, department)
		}
	}

	if err := s.cache.Put(ctx, canonical.FullName, outcome); err != nil {
		s.logger.Warn("failed to cache outcome",
			"name", rawName,
			"error", err,
		)
	}

	if outcome.Kind == domain.OutcomeFound && s.index != nil {
		doc := search.CandidateToDocument(rawName, outcome.Candidate)
		if err := s.index.IndexInstructor(doc); err != nil {
			s.logger.Warn("failed to index instructor",
				"name", rawName,
				"error", err,
			)
		}
	}

	s.logger.Debug("lookup resolved",
		"name", rawName,
		"outcome", outcome.Kind,
	)

	return outcome
}

// LookupMany resolves a batch of names sequentially, preserving input
// order. A failed or placeholder entry becomes a LookupFailure result
// rather than aborting the batch. Consecutive external searches are spaced
// out by the batch delay; cache hits don't count.
func (s *LookupService) LookupMany(ctx context.Context, rawNames []string, department string) ([]Result, error) {
	results := make([]Result, 0, len(rawNames))
	pendingDelay := false

	for _, rawName := range rawNames {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		trimmed := strings.TrimSpace(rawName)
		if trimmed == "" || names.IsSentinel(trimmed) {
			results = append(results, *s.newResult(trimmed, nil, domain.LookupFailure("placeholder instructor name")))
			continue
		}

		if pendingDelay {
			select {
			case <-time.After(s.batchDelay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
			pendingDelay = false
		}

		result, usedNetwork, err := s.lookup(ctx, trimmed, department, false)
		if err != nil {
			results = append(results, *s.newResult(trimmed, nil, domain.LookupFailure(err.Error())))
			continue
		}

		results = append(results, *result)
		pendingDelay = usedNetwork
	}

	return results, nil
}

func (s *LookupService) newResult(rawName string, canonical *domain.CanonicalName, outcome domain.MatchOutcome) *Result {
	return &Result{
		RequestID: id.MustGenerate("req"),
		RawName:   rawName,
		Name:      canonical,
		Outcome:   outcome,
	}
}
