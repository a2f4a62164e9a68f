package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/emilyynorton/NotreDameRMP/internal/domain"
)

const outcomePrefix = "outcome:"

// CachedOutcome wraps a lookup outcome with cache info.
type CachedOutcome struct {
	Outcome   domain.MatchOutcome `json:"outcome"`
	FullName  string              `json:"full_name"`
	FetchedAt time.Time           `json:"fetched_at"`
}

// outcomeKey generates the storage key for an instructor name. The name is
// hashed as-is, so case and accent variants get distinct entries, and the
// full digest is kept so distinct names cannot collide on a truncation.
func outcomeKey(fullName string) []byte {
	hash := sha256.Sum256([]byte(fullName))
	hashStr := hex.EncodeToString(hash[:])
	return fmt.Appendf(nil, "%s%s", outcomePrefix, hashStr)
}

// GetOutcome retrieves a cached lookup outcome by instructor name.
// Returns nil, nil if not found. Entries never expire; a fresh lookup
// for the same name overwrites them.
func (s *Store) GetOutcome(ctx context.Context, fullName string) (*CachedOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := outcomeKey(fullName)

	var cached CachedOutcome
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get outcome: %w", err)
	}

	return &cached, nil
}

// SetOutcome stores a lookup outcome keyed by instructor name.
func (s *Store) SetOutcome(ctx context.Context, fullName string, outcome domain.MatchOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cached := CachedOutcome{
		Outcome:   outcome,
		FullName:  fullName,
		FetchedAt: time.Now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}

	key := outcomeKey(fullName)

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// DeleteOutcome removes a cached outcome.
func (s *Store) DeleteOutcome(ctx context.Context, fullName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := outcomeKey(fullName)

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Idempotent
		}
		return err
	})
}

// ListOutcomes returns all cached outcomes.
func (s *Store) ListOutcomes(ctx context.Context) ([]CachedOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var outcomes []CachedOutcome
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(outcomePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var cached CachedOutcome
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &cached)
			})
			if err != nil {
				return err
			}
			outcomes = append(outcomes, cached)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}

	return outcomes, nil
}
