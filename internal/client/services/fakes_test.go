package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lustless/lustless-client/internal/client/client"
	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fake backend ----

// fakeBackend implements Backend. Each endpoint returns its preset result
// and records the call.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	InitiateLoginResp *client.InitiateLoginResponse
	InitiateLoginErr  error

	VerifyLoginResp *client.AuthResponse
	VerifyLoginErr  error

	SignupResp *client.AuthResponse
	SignupErr  error

	InitiatePhoneResp *client.PhoneInitiateResponse
	InitiatePhoneErr  error
	LastPhoneInitiate client.PhoneInitiateRequest

	VerifyPhoneErr  error
	LastPhoneVerify client.PhoneVerifyRequest

	VerifyIdentityResp *client.IdentityVerifyResponse
	VerifyIdentityErr  error
	LastIdentity       client.IdentityVerifyRequest

	StatusResp *client.VerificationStatusResponse
	StatusErr  error
	OnStatus   func()

	MeResp *models.User
	MeErr  error

	LogoutErr   error
	LogoutBlock chan struct{}
	LogoutEnter chan struct{}

	UploadErr   error
	uploadSeq   int
	LastUploads []string
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) InitiateLogin(ctx context.Context, in client.LoginRequest) (*client.InitiateLoginResponse, error) {
	f.record("initiate_login")
	return f.InitiateLoginResp, f.InitiateLoginErr
}

func (f *fakeBackend) VerifyLogin(ctx context.Context, in client.VerifyLoginRequest) (*client.AuthResponse, error) {
	f.record("verify_login")
	return f.VerifyLoginResp, f.VerifyLoginErr
}

func (f *fakeBackend) SignupStep1(ctx context.Context, in client.SignupRequest) (*client.AuthResponse, error) {
	f.record("signup")
	return f.SignupResp, f.SignupErr
}

func (f *fakeBackend) InitiatePhone(ctx context.Context, in client.PhoneInitiateRequest) (*client.PhoneInitiateResponse, error) {
	f.record("phone_initiate")
	f.LastPhoneInitiate = in
	return f.InitiatePhoneResp, f.InitiatePhoneErr
}

func (f *fakeBackend) VerifyPhone(ctx context.Context, in client.PhoneVerifyRequest) error {
	f.record("phone_verify")
	f.LastPhoneVerify = in
	return f.VerifyPhoneErr
}

func (f *fakeBackend) VerifyIdentity(ctx context.Context, in client.IdentityVerifyRequest) (*client.IdentityVerifyResponse, error) {
	f.record("identity_verify")
	f.LastIdentity = in
	return f.VerifyIdentityResp, f.VerifyIdentityErr
}

func (f *fakeBackend) VerificationStatus(ctx context.Context) (*client.VerificationStatusResponse, error) {
	f.record("status")
	if f.OnStatus != nil {
		f.OnStatus()
	}
	return f.StatusResp, f.StatusErr
}

func (f *fakeBackend) Me(ctx context.Context) (*models.User, error) {
	f.record("me")
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	return f.MeResp, nil
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	f.record("logout")
	if f.LogoutEnter != nil {
		f.LogoutEnter <- struct{}{}
	}
	if f.LogoutBlock != nil {
		<-f.LogoutBlock
	}
	return f.LogoutErr
}

func (f *fakeBackend) UploadFile(ctx context.Context, filename, contentType string, data []byte) (*models.FileEntity, error) {
	f.record("upload")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUploads = append(f.LastUploads, filename)
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}
	f.uploadSeq++
	return &models.FileEntity{ID: fmt.Sprintf("file-%d", f.uploadSeq)}, nil
}

// ---- in-memory stores ----

type memTokens struct {
	mu sync.Mutex
	t  *models.Tokens
}

func (m *memTokens) Get(ctx context.Context) *models.Tokens {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.t == nil {
		return nil
	}
	cp := *m.t
	return &cp
}

func (m *memTokens) Set(ctx context.Context, t *models.Tokens) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = t
}

type memScratch struct {
	mu      sync.Mutex
	d       *models.OnboardingData
	cleared int
}

func (m *memScratch) Get(ctx context.Context) *models.OnboardingData {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.d == nil {
		return nil
	}
	cp := *m.d
	return &cp
}

func (m *memScratch) Set(ctx context.Context, data models.OnboardingData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var cur models.OnboardingData
	if m.d != nil {
		cur = *m.d
	}
	merged := cur.Merge(data)
	m.d = &merged
}

func (m *memScratch) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.d = nil
	m.cleared++
}

type recordingNav struct {
	mu      sync.Mutex
	screens []models.Screen
}

func (n *recordingNav) Replace(s models.Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.screens = append(n.screens, s)
}

func (n *recordingNav) Screens() []models.Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Screen(nil), n.screens...)
}

// ---- helpers ----

type fixture struct {
	api     *fakeBackend
	tokens  *memTokens
	scratch *memScratch
	nav     *recordingNav
	session *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		api:     &fakeBackend{},
		tokens:  &memTokens{},
		scratch: &memScratch{},
		nav:     &recordingNav{},
	}
	f.session = NewSession(f.api, f.tokens, f.nav, logging.Discard())
	return f
}

func validTokens() *models.Tokens {
	return &models.Tokens{
		AccessToken:     "A1",
		RefreshToken:    "R1",
		AccessExpiresAt: time.Now().Add(15 * time.Minute).UnixMilli(),
	}
}

func networkErr() error {
	return fmt.Errorf("%w: %w", client.ErrUnavailable, errors.New("dial tcp: connection refused"))
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("\xff\xd8\xff\xe0fake-jpeg"), 0o600))
	return path
}
