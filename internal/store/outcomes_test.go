package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilyynorton/NotreDameRMP/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "rmp-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func TestOutcomeCache(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	name := "Ramzi Bualuan"

	// Initially empty
	cached, err := s.GetOutcome(ctx, name)
	require.NoError(t, err)
	assert.Nil(t, cached)

	outcome := domain.Found(domain.Candidate{
		ID:        "VGVhY2hlci0yMjkxMTEy",
		FirstName: "Ramzi",
		LastName:  "Bualuan",
		AvgRating: 4.8,
	})
	err = s.SetOutcome(ctx, name, outcome)
	require.NoError(t, err)

	// Cache hit
	cached, err = s.GetOutcome(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, name, cached.FullName)
	assert.Equal(t, domain.OutcomeFound, cached.Outcome.Kind)
	require.NotNil(t, cached.Outcome.Candidate)
	assert.Equal(t, "Bualuan", cached.Outcome.Candidate.LastName)
	assert.WithinDuration(t, time.Now(), cached.FetchedAt, time.Minute)

	// Case variants are distinct keys
	cached, err = s.GetOutcome(ctx, "ramzi bualuan")
	require.NoError(t, err)
	assert.Nil(t, cached)

	// Different name = miss
	cached, err = s.GetOutcome(ctx, "Jane Doe")
	require.NoError(t, err)
	assert.Nil(t, cached)

	// Delete
	err = s.DeleteOutcome(ctx, name)
	require.NoError(t, err)

	cached, err = s.GetOutcome(ctx, name)
	require.NoError(t, err)
	assert.Nil(t, cached)

	// Deleting again is fine
	err = s.DeleteOutcome(ctx, name)
	require.NoError(t, err)
}

func TestOutcomeCacheNegativeOutcomes(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := s.SetOutcome(ctx, "Jane Doe", domain.NotFoundAtInstitution())
	require.NoError(t, err)

	cached, err := s.GetOutcome(ctx, "Jane Doe")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, domain.OutcomeNotFoundAtInstitution, cached.Outcome.Kind)
	assert.Nil(t, cached.Outcome.Candidate)
}

func TestListOutcomes(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	outcomes, err := s.ListOutcomes(ctx)
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	require.NoError(t, s.SetOutcome(ctx, "Ramzi Bualuan", domain.Found(domain.Candidate{ID: "t1", LastName: "Bualuan"})))
	require.NoError(t, s.SetOutcome(ctx, "Jane Doe", domain.NoCandidates()))

	outcomes, err = s.ListOutcomes(ctx)
	require.NoError(t, err)
	assert.Len(t, outcomes, 2)

	seen := make(map[string]bool)
	for _, o := range outcomes {
		seen[o.FullName] = true
	}
	assert.True(t, seen["Ramzi Bualuan"])
	assert.True(t, seen["Jane Doe"])
}
