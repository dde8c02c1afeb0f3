package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lustless/lustless-client/internal/client/client"
	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/client/router"
	"github.com/lustless/lustless-client/internal/logging"
)

// SignInResult is the outcome of a password step. Either OTPRequired is set
// and the caller must collect a code, or Screen names where to go next.
type SignInResult struct {
	Screen      models.Screen
	OTPRequired bool
}

// AuthService defines the sign-in and sign-up flows.
//
// Contract:
//   - SignIn: password step; may finish the login when the server skips OTP.
//   - VerifyLoginOTP: completes a login with the emailed code.
//   - SignUp: creates an account and starts onboarding.
//
// Every successful flow stores the tokens, reloads the Session and returns
// the screen picked by router.Route.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (SignInResult, error)
	VerifyLoginOTP(ctx context.Context, email, code string) (models.Screen, error)
	SignUp(ctx context.Context, email, password string) (models.Screen, error)
}

type authService struct {
	api     Backend
	session *Session
	scratch ScratchStore
	log     logging.Logger
}

func NewAuthService(api Backend, session *Session, scratch ScratchStore, log logging.Logger) AuthService {
	return &authService{api: api, session: session, scratch: scratch, log: log.With("component", "auth")}
}

func (a *authService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	req := client.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := validateRequest(req); err != nil {
		return SignInResult{}, err
	}

	resp, err := a.api.InitiateLogin(ctx, req)
	if err != nil {
		return SignInResult{}, flowFailure("initiate login", msgLoginFailed, err)
	}

	if !resp.SkipOTP || resp.LoginData == nil {
		a.log.Info(ctx, "login code sent", "email", logging.SanitizedEmail(req.Email))
		return SignInResult{OTPRequired: true}, nil
	}

	screen, err := a.completeLogin(ctx, resp.LoginData)
	if err != nil {
		return SignInResult{}, err
	}
	return SignInResult{Screen: screen}, nil
}

func (a *authService) VerifyLoginOTP(ctx context.Context, email, code string) (models.Screen, error) {
	req := client.VerifyLoginRequest{Email: strings.TrimSpace(email), OTPCode: strings.TrimSpace(code)}
	if err := validateRequest(req); err != nil {
		return "", err
	}

	resp, err := a.api.VerifyLogin(ctx, req)
	if err != nil {
		return "", flowFailure("verify login", msgInvalidOTP, err)
	}
	return a.completeLogin(ctx, resp)
}

func (a *authService) SignUp(ctx context.Context, email, password string) (models.Screen, error) {
	req := client.SignupRequest{Email: strings.TrimSpace(email), Password: password}
	if err := validateRequest(req); err != nil {
		return "", err
	}

	resp, err := a.api.SignupStep1(ctx, req)
	if err != nil {
		return "", flowFailure("sign up", msgSignupFailed, err)
	}

	a.scratch.Set(ctx, models.OnboardingData{Email: req.Email})
	return a.completeLogin(ctx, resp)
}

// completeLogin stores the issued tokens, reloads the session and routes.
func (a *authService) completeLogin(ctx context.Context, resp *client.AuthResponse) (models.Screen, error) {
	tokens, err := tokensFromResponse(resp.Tokens)
	if err != nil {
		return "", fmt.Errorf("login response: %w", err)
	}

	a.session.SetTokens(ctx, tokens)

	res := a.session.LoadData(ctx)
	if res.User == nil {
		return "", ErrAccountDataUnavailable
	}

	screen := router.Route(res.User, res.VerificationStatus)
	a.log.Info(ctx, "logged in", "user_id", res.User.ID, "screen", screen)
	return screen, nil
}

// tokensFromResponse validates an issued token triple. A missing expiry is
// read from the access token's exp claim; the signature is not checked since
// the client cannot verify it anyway.
func tokensFromResponse(t models.Tokens) (*models.Tokens, error) {
	if t.AccessToken == "" || t.RefreshToken == "" {
		return nil, fmt.Errorf("%w: missing token", client.ErrMalformedResponse)
	}
	if t.AccessExpiresAt != 0 {
		return &t, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("%w: no expiry and access token unreadable: %w", client.ErrMalformedResponse, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: no expiry in response or token", client.ErrMalformedResponse)
	}

	t.AccessExpiresAt = exp.UnixMilli()
	return &t, nil
}
