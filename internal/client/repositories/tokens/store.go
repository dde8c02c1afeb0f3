// Package tokens persists the session's credential triple.
//
// The record lives under a fixed key in the metadata store as JSON. Storage
// failures never surface to callers: a failed or undecodable read is reported
// as "no tokens", so the client fails closed to logged-out.
package tokens

import (
	"context"
	"encoding/json"

	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/client/repositories/metadata"
	"github.com/lustless/lustless-client/internal/logging"
)

// Key is the metadata key of the token record.
const Key = "@lustless:auth-tokens"

type Store struct {
	repo metadata.Repository
	log  logging.Logger
}

func NewStore(repo metadata.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("component", "token_store")}
}

// Get returns the stored tokens, or nil when logged out or unreadable.
func (s *Store) Get(ctx context.Context) *models.Tokens {
	raw, err := s.repo.Get(ctx, Key)
	if err != nil {
		s.log.Error(ctx, "failed to load tokens", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var t models.Tokens
	if err := json.Unmarshal(raw, &t); err != nil {
		s.log.Error(ctx, "failed to decode tokens", "error", err)
		return nil
	}
	if t.AccessToken == "" {
		s.log.Warn(ctx, "stored token record has no access token")
		return nil
	}
	return &t
}

// Set writes t, or deletes the record when t is nil.
func (s *Store) Set(ctx context.Context, t *models.Tokens) {
	if t == nil {
		if err := s.repo.Delete(ctx, Key); err != nil {
			s.log.Error(ctx, "failed to clear tokens", "error", err)
		}
		return
	}

	raw, err := json.Marshal(t)
	if err != nil {
		s.log.Error(ctx, "failed to encode tokens", "error", err)
		return
	}
	if err := s.repo.Set(ctx, Key, raw); err != nil {
		s.log.Error(ctx, "failed to save tokens", "error", err)
	}
}
