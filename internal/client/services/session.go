package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lustless/lustless-client/internal/client/client"
	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/logging"
)

type AuthState int

const (
	AuthNotLoaded AuthState = iota
	AuthLoadedNoUser
	AuthLoadedWithUser
)

func (s AuthState) String() string {
	switch s {
	case AuthLoadedNoUser:
		return "loaded-no-user"
	case AuthLoadedWithUser:
		return "loaded-with-user"
	default:
		return "not-loaded"
	}
}

type VerificationState int

const (
	VerificationNotLoaded VerificationState = iota
	VerificationLoaded
)

func (s VerificationState) String() string {
	if s == VerificationLoaded {
		return "loaded"
	}
	return "not-loaded"
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Auth               AuthState
	Verification       VerificationState
	User               *models.User
	VerificationStatus *models.VerificationStatus
}

// Session owns the in-memory user and verification status for the lifetime
// of the process and is the only writer of the token store outside the
// Gateway's refresh. Create one at startup and pass it to whatever needs it.
type Session struct {
	api    Backend
	tokens client.TokenStore
	nav    Navigator
	log    logging.Logger
	now    func() time.Time

	mu           sync.Mutex
	auth         AuthState
	verification VerificationState
	user         *models.User
	status       *models.VerificationStatus

	loggingOut atomic.Bool
}

func NewSession(api Backend, tokens client.TokenStore, nav Navigator, log logging.Logger) *Session {
	if nav == nil {
		nav = NavigatorFunc(func(models.Screen) {})
	}
	return &Session{
		api:    api,
		tokens: tokens,
		nav:    nav,
		log:    log.With("component", "session"),
		now:    time.Now,
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Auth: s.auth, Verification: s.verification}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.status != nil {
		st := *s.status
		snap.VerificationStatus = &st
	}
	return snap
}

// LoadData rebuilds the session from the stored tokens: the current user
// first, then the verification status. The loaded pair is returned so the
// caller can route without waiting on Snapshot.
func (s *Session) LoadData(ctx context.Context) models.LoadResult {
	t := s.tokens.Get(ctx)
	if t == nil || t.AccessToken == "" {
		s.log.Debug(ctx, "no stored tokens")
		s.setLoggedOut()
		return models.LoadResult{}
	}

	if t.IsExpired(s.now()) {
		s.log.Info(ctx, "access token expired, logging out", "expired_at", t.ExpiresAt())
		s.LogOut(ctx)
		return models.LoadResult{}
	}

	user, err := s.api.Me(ctx)
	if err == nil && user == nil {
		err = client.ErrMalformedResponse
	}
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.log.Info(ctx, "session rejected by server, logging out")
			s.LogOut(ctx)
			return models.LoadResult{}
		}
		s.log.Warn(ctx, "failed to load current user", "error", err)
		s.setLoggedOut()
		return models.LoadResult{}
	}

	s.mu.Lock()
	s.user = user
	s.auth = AuthLoadedWithUser
	s.mu.Unlock()

	s.log.Info(ctx, "user loaded", "user_id", user.ID, "email", logging.SanitizedEmail(user.Email),
		"verification_step", user.VerificationStep)

	status := s.FetchVerificationStatus(ctx)
	return models.LoadResult{User: user, VerificationStatus: status}
}

// FetchVerificationStatus reads the verification status. With no stored
// token the status is absent. Any failure yields the default status so a
// routing decision is always possible. The verification state ends loaded
// whatever the outcome.
func (s *Session) FetchVerificationStatus(ctx context.Context) (status *models.VerificationStatus) {
	defer func() {
		s.mu.Lock()
		s.status = status
		s.verification = VerificationLoaded
		s.mu.Unlock()
	}()

	if t := s.tokens.Get(ctx); t == nil || t.AccessToken == "" {
		return nil
	}

	resp, err := s.api.VerificationStatus(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to fetch verification status, using default", "error", err)
		return models.DefaultVerificationStatus()
	}

	status = models.NewVerificationStatus(resp.CurrentStep, resp.NextRoute, resp.Message, resp.IsFullyVerified)
	s.checkStepMismatch(ctx, status)
	return status
}

// RefreshVerificationStatus marks the status stale and fetches it again.
func (s *Session) RefreshVerificationStatus(ctx context.Context) *models.VerificationStatus {
	s.mu.Lock()
	s.verification = VerificationNotLoaded
	s.mu.Unlock()

	return s.FetchVerificationStatus(ctx)
}

// LogOut ends the session. A call made while another is in flight returns
// immediately. Safe to call when already logged out. Onboarding scratch data
// is kept so a returning user can resume.
func (s *Session) LogOut(ctx context.Context) {
	if !s.loggingOut.CompareAndSwap(false, true) {
		s.log.Debug(ctx, "logout already in progress")
		return
	}
	defer s.loggingOut.Store(false)

	if t := s.tokens.Get(ctx); t != nil && t.AccessToken != "" {
		if err := s.api.Logout(ctx); err != nil {
			s.log.Warn(ctx, "logout request failed", "error", err)
		}
	}

	s.tokens.Set(ctx, nil)
	s.setLoggedOut()

	s.log.Info(ctx, "logged out")
	s.nav.Replace(models.ScreenEntry)
}

// SetTokens stores t. Clearing the tokens also drops the in-memory user.
func (s *Session) SetTokens(ctx context.Context, t *models.Tokens) {
	s.tokens.Set(ctx, t)
	if t == nil {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
	}
}

// HandleUnauthorized logs out when err is a 401 and reports whether it did.
func (s *Session) HandleUnauthorized(ctx context.Context, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	s.LogOut(ctx)
	return true
}

func (s *Session) setLoggedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.status = nil
	s.auth = AuthLoadedNoUser
	s.verification = VerificationLoaded
}

func (s *Session) checkStepMismatch(ctx context.Context, status *models.VerificationStatus) {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()

	if user == nil || !user.VerificationStep.Valid() || !status.CurrentStep.Valid() {
		return
	}
	if user.VerificationStep != status.CurrentStep {
		s.log.Warn(ctx, "verification step mismatch",
			"user_step", user.VerificationStep, "status_step", status.CurrentStep)
	}
}
