// Package services contains application services for the Lustless client:
// the Session that owns user and verification state, and the auth and
// verification flows screens trigger.
package services

import (
	"context"

	"github.com/lustless/lustless-client/internal/client/client"
	"github.com/lustless/lustless-client/internal/client/models"
)

// Backend is the subset of *client.API the services call.
type Backend interface {
	InitiateLogin(ctx context.Context, in client.LoginRequest) (*client.InitiateLoginResponse, error)
	VerifyLogin(ctx context.Context, in client.VerifyLoginRequest) (*client.AuthResponse, error)
	SignupStep1(ctx context.Context, in client.SignupRequest) (*client.AuthResponse, error)
	InitiatePhone(ctx context.Context, in client.PhoneInitiateRequest) (*client.PhoneInitiateResponse, error)
	VerifyPhone(ctx context.Context, in client.PhoneVerifyRequest) error
	VerifyIdentity(ctx context.Context, in client.IdentityVerifyRequest) (*client.IdentityVerifyResponse, error)
	VerificationStatus(ctx context.Context) (*client.VerificationStatusResponse, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	UploadFile(ctx context.Context, filename, contentType string, data []byte) (*models.FileEntity, error)
}

// ScratchStore keeps onboarding identifiers between signup steps.
type ScratchStore interface {
	Get(ctx context.Context) *models.OnboardingData
	Set(ctx context.Context, data models.OnboardingData)
	Clear(ctx context.Context)
}

// Navigator is the navigation layer the Session drives on logout.
type Navigator interface {
	Replace(screen models.Screen)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(screen models.Screen)

func (f NavigatorFunc) Replace(screen models.Screen) { f(screen) }
