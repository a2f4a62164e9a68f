package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilyynorton/NotreDameRMP/internal/cache"
	"github.com/emilyynorton/NotreDameRMP/internal/domain"
	"github.com/emilyynorton/NotreDameRMP/internal/errors"
	"github.com/emilyynorton/NotreDameRMP/internal/store"
)

const (
	testSchoolID   = "U2Nob29sLTE1NzY="
	testSchoolName = "notre dame"
)

// fakeSearcher counts calls and serves canned responses.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   int
	delay   time.Duration
	respond func(call int, text string) ([]domain.Candidate, error)
}

func (f *fakeSearcher) Search(ctx context.Context, text, schoolID string) ([]domain.Candidate, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.respond(call, text)
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memBackend is an in-memory cache backend.
type memBackend struct {
	mu       sync.Mutex
	outcomes map[string]*store.CachedOutcome
}

func newMemBackend() *memBackend {
	return &memBackend{outcomes: make(map[string]*store.CachedOutcome)}
}

func (m *memBackend) GetOutcome(_ context.Context, fullName string) (*store.CachedOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[fullName], nil
}

func (m *memBackend) SetOutcome(_ context.Context, fullName string, outcome domain.MatchOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[fullName] = &store.CachedOutcome{
		Outcome:   outcome,
		FullName:  fullName,
		FetchedAt: time.Now(),
	}
	return nil
}

func (m *memBackend) DeleteOutcome(_ context.Context, fullName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.outcomes, fullName)
	return nil
}

func bualuan() domain.Candidate {
	return domain.Candidate{
		ID:         "t1",
		FirstName:  "Ramzi",
		LastName:   "Bualuan",
		Department: "Computer Science",
		School:     domain.School{ID: testSchoolID, Name: "University of Notre Dame"},
		AvgRating:  4.8,
		NumRatings: 312,
	}
}

func newTestService(searcher Searcher) *LookupService {
	return NewLookupService(Config{
		Searcher:   searcher,
		Cache:      cache.New(newMemBackend()),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		SchoolID:   testSchoolID,
		SchoolName: testSchoolName,
		BatchDelay: time.Millisecond,
	})
}

func TestLookupFound(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			return []domain.Candidate{bualuan()}, nil
		},
	}
	svc := newTestService(searcher)

	result, err := svc.Lookup(context.Background(), "Bualuan, Ramzi", "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, domain.OutcomeFound, result.Outcome.Kind)
	require.NotNil(t, result.Outcome.Candidate)
	assert.Equal(t, "t1", result.Outcome.Candidate.ID)
	assert.Equal(t, "Bualuan, Ramzi", result.RawName)
	require.NotNil(t, result.Name)
	assert.Equal(t, "Ramzi Bualuan", result.Name.FullName)
	assert.Contains(t, result.RequestID, "req-")
}

func TestLookupSecondCallServedFromCache(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			return []domain.Candidate{bualuan()}, nil
		},
	}
	svc := newTestService(searcher)
	ctx := context.Background()

	first, err := svc.Lookup(ctx, "Bualuan, Ramzi", "")
	require.NoError(t, err)

	second, err := svc.Lookup(ctx, "Bualuan, Ramzi", "")
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.callCount())
	assert.Equal(t, first.Outcome, second.Outcome)
	// Every response carries a fresh request token.
	assert.NotEqual(t, first.RequestID, second.RequestID)
}

func TestLookupRejectsPlaceholders(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			t.Fatal("search should not be called")
			return nil, nil
		},
	}
	svc := newTestService(searcher)

	for _, raw := range []string{"TBD", "Staff", "TBA", "", "   "} {
		_, err := svc.Lookup(context.Background(), raw, "")
		assert.True(t, errors.Is(err, errors.ErrValidation), "input %q: got %v", raw, err)
	}
}

func TestLookupNoCandidates(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			return nil, nil
		},
	}
	svc := newTestService(searcher)

	result, err := svc.Lookup(context.Background(), "Nosuch, Person", "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoCandidates, result.Outcome.Kind)
}

func TestLookupNotFoundAtInstitution(t *testing.T) {
	other := bualuan()
	other.School = domain.School{ID: "other", Name: "Purdue University"}

	searcher := &fakeSearcher{
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			return []domain.Candidate{other}, nil
		},
	}
	svc := newTestService(searcher)

	result, err := svc.Lookup(context.Background(), "Bualuan, Ramzi", "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotFoundAtInstitution, result.Outcome.Kind)
	assert.Nil(t, result.Outcome.Candidate)
}

func TestLookupFailureNotCached(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(call int, _ string) ([]domain.Candidate, error) {
			if call == 1 {
				return nil, context.DeadlineExceeded
			}
			return []domain.Candidate{bualuan()}, nil
		},
	}
	svc := newTestService(searcher)
	ctx := context.Background()

	first, err := svc.Lookup(ctx, "Bualuan, Ramzi", "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeLookupError, first.Outcome.Kind)

	// The failure was not cached, so the next lookup retries and succeeds.
	second, err := svc.Lookup(ctx, "Bualuan, Ramzi", "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFound, second.Outcome.Kind)
	assert.Equal(t, 2, searcher.callCount())
}

func TestLookupConcurrentDedup(t *testing.T) {
	searcher := &fakeSearcher{
		delay: 20 * time.Millisecond,
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			return []domain.Candidate{bualuan()}, nil
		},
	}
	svc := newTestService(searcher)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Lookup(context.Background(), "Bualuan, Ramzi", "")
			assert.NoError(t, err)
			assert.Equal(t, domain.OutcomeFound, result.Outcome.Kind)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, searcher.callCount())
}

func TestRefreshBypassesCache(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			return []domain.Candidate{bualuan()}, nil
		},
	}
	svc := newTestService(searcher)
	ctx := context.Background()

	_, err := svc.Lookup(ctx, "Bualuan, Ramzi", "")
	require.NoError(t, err)

	result, err := svc.Refresh(ctx, "Bualuan, Ramzi", "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFound, result.Outcome.Kind)
	assert.Equal(t, 2, searcher.callCount())
}

func TestLookupManyPreservesOrder(t *testing.T) {
	kumar := domain.Candidate{
		ID:        "t2",
		FirstName: "Anita",
		LastName:  "Kumar",
		School:    domain.School{ID: testSchoolID, Name: "University of Notre Dame"},
	}
	searcher := &fakeSearcher{
		respond: func(_ int, text string) ([]domain.Candidate, error) {
			switch text {
			case "Ramzi Bualuan":
				return []domain.Candidate{bualuan()}, nil
			case "Anita Kumar":
				return []domain.Candidate{kumar}, nil
			default:
				return nil, nil
			}
		},
	}
	svc := newTestService(searcher)

	results, err := svc.LookupMany(context.Background(), []string{
		"Bualuan, Ramzi",
		"TBD",
		"Kumar, Anita",
		"Nosuch, Person",
	}, "")
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, domain.OutcomeFound, results[0].Outcome.Kind)
	assert.Equal(t, "t1", results[0].Outcome.Candidate.ID)
	assert.Equal(t, domain.OutcomeLookupError, results[1].Outcome.Kind)
	assert.Equal(t, domain.OutcomeFound, results[2].Outcome.Kind)
	assert.Equal(t, "t2", results[2].Outcome.Candidate.ID)
	assert.Equal(t, domain.OutcomeNoCandidates, results[3].Outcome.Kind)
}

func TestLookupManyDeduplicatesNetworkCalls(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			return []domain.Candidate{bualuan()}, nil
		},
	}
	svc := newTestService(searcher)

	results, err := svc.LookupMany(context.Background(), []string{
		"Bualuan, Ramzi",
		"Bualuan, Ramzi",
		"bualuan, ramzi",
	}, "")
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Equal(t, domain.OutcomeFound, r.Outcome.Kind)
	}
	// The repeat is a cache hit; the lowercase variant is a different
	// scraped name and gets its own search.
	assert.Equal(t, 2, searcher.callCount())
}

func TestLookupManyHonorsContextCancellation(t *testing.T) {
	searcher := &fakeSearcher{
		respond: func(_ int, _ string) ([]domain.Candidate, error) {
			return []domain.Candidate{bualuan()}, nil
		},
	}
	svc := NewLookupService(Config{
		Searcher:   searcher,
		Cache:      cache.New(newMemBackend()),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		SchoolID:   testSchoolID,
		SchoolName: testSchoolName,
		BatchDelay: time.Hour, // Batch should abort during the delay
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := svc.LookupMany(ctx, []string{"Bualuan, Ramzi", "Kumar, Anita"}, "")
	assert.ErrorIs(t, err, context.Canceled)
}
