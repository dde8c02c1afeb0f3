// Package onboarding persists the scratch record carried between signup
// steps. Records expire after a TTL so an abandoned signup does not leak
// identifiers into a later session.
package onboarding

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/client/repositories/metadata"
	"github.com/lustless/lustless-client/internal/dbx"
	"github.com/lustless/lustless-client/internal/logging"
)

// Key is the metadata key of the scratch record.
const Key = "@lustless:onboarding-data"

type Store struct {
	db    *sql.DB
	repo  metadata.Repository
	ttl   time.Duration
	clock func() time.Time
	log   logging.Logger
}

// NewStore returns a Store. A non-positive ttl disables expiry; a nil clock
// means time.Now.
func NewStore(db *sql.DB, ttl time.Duration, clock func() time.Time, log logging.Logger) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		db:    db,
		repo:  metadata.NewSQLiteRepository(db),
		ttl:   ttl,
		clock: clock,
		log:   log.With("component", "onboarding_store"),
	}
}

// Get returns the scratch record, or nil when absent, expired or unreadable.
func (s *Store) Get(ctx context.Context) *models.OnboardingData {
	d, err := s.load(ctx, s.repo)
	if err != nil {
		s.log.Error(ctx, "failed to load onboarding data", "error", err)
		return nil
	}
	if d == nil {
		return nil
	}
	if s.expired(d) {
		s.log.Info(ctx, "onboarding data expired", "saved_at", d.SavedAt)
		s.Clear(ctx)
		return nil
	}
	return d
}

// Set merges data into the stored record; non-empty fields of data win.
func (s *Store) Set(ctx context.Context, data models.OnboardingData) {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		current, err := s.load(ctx, repo)
		if err != nil {
			return err
		}

		var merged models.OnboardingData
		if current != nil && !s.expired(current) {
			merged = *current
		}
		merged = merged.Merge(data)
		merged.SavedAt = s.clock().UTC()

		raw, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("encode onboarding data: %w", err)
		}
		return repo.Set(ctx, Key, raw)
	})
	if err != nil {
		s.log.Error(ctx, "failed to save onboarding data", "error", err)
	}
}

func (s *Store) Clear(ctx context.Context) {
	if err := s.repo.Delete(ctx, Key); err != nil {
		s.log.Error(ctx, "failed to clear onboarding data", "error", err)
	}
}

func (s *Store) load(ctx context.Context, repo metadata.Repository) (*models.OnboardingData, error) {
	raw, err := repo.Get(ctx, Key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var d models.OnboardingData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode onboarding data: %w", err)
	}
	return &d, nil
}

func (s *Store) expired(d *models.OnboardingData) bool {
	if s.ttl <= 0 || d.SavedAt.IsZero() {
		return false
	}
	return s.clock().Sub(d.SavedAt) > s.ttl
}
