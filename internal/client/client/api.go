package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/netx"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the token triple plus the user, returned by login and
// signup.
type AuthResponse struct {
	models.Tokens
	User *models.User `json:"user"`
}

type InitiateLoginResponse struct {
	Success        bool          `json:"success"`
	Message        string        `json:"message"`
	TemporaryToken string        `json:"temporaryToken,omitempty"`
	ExpiresAt      string        `json:"expiresAt,omitempty"`
	SkipOTP        bool          `json:"skipOtp,omitempty"`
	LoginData      *AuthResponse `json:"loginData,omitempty"`
}

type VerifyLoginRequest struct {
	Email   string `json:"email" validate:"required,email"`
	OTPCode string `json:"otpCode" validate:"required,len=6,numeric"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type PhoneInitiateRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
}

type PhoneInitiateResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ExpiresAt   string `json:"expiresAt"`
	PhoneNumber string `json:"phoneNumber"`
}

type PhoneVerifyRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
}

type IdentityVerifyRequest struct {
	IDDocumentID string `json:"idDocumentId" validate:"required"`
	SelfieID     string `json:"selfieId" validate:"required"`
}

type IdentityVerifyResponse struct {
	Success             bool                    `json:"success"`
	Message             string                  `json:"message"`
	Similarity          *float64                `json:"similarity,omitempty"`
	ExtractedFirstName  string                  `json:"extractedFirstName,omitempty"`
	ExtractedLastName   string                  `json:"extractedLastName,omitempty"`
	NewVerificationStep models.VerificationStep `json:"newVerificationStep,omitempty"`
}

type VerificationStatusResponse struct {
	CurrentStep     models.VerificationStep `json:"currentStep"`
	NextRoute       string                  `json:"nextRoute"`
	IsFullyVerified bool                    `json:"isFullyVerified"`
	Message         string                  `json:"message"`
}

type FileUploadResponse struct {
	File models.FileEntity `json:"file"`
}

// API is the typed backend surface. Every call goes through the Gateway.
//
// Errors: transport failures wrap ErrUnavailable; non-2xx responses are
// *APIError (errors.Is(err, ErrUnauthorized) for 401); undecodable 2xx
// bodies wrap ErrMalformedResponse.
type API struct {
	gw *Gateway
}

func NewAPI(gw *Gateway) *API {
	return &API{gw: gw}
}

func (a *API) InitiateLogin(ctx context.Context, in LoginRequest) (*InitiateLoginResponse, error) {
	var out InitiateLoginResponse
	if err := a.postJSON(ctx, "/api/v1/auth/email/login/initiate", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) VerifyLogin(ctx context.Context, in VerifyLoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.postJSON(ctx, "/api/v1/auth/email/login/verify", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) SignupStep1(ctx context.Context, in SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := a.postJSON(ctx, "/api/v1/auth/signup/step1", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) InitiatePhone(ctx context.Context, in PhoneInitiateRequest) (*PhoneInitiateResponse, error) {
	var out PhoneInitiateResponse
	if err := a.postJSON(ctx, "/api/v1/auth/phone/initiate", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPhone expects an empty 200/204.
func (a *API) VerifyPhone(ctx context.Context, in PhoneVerifyRequest) error {
	return a.postJSON(ctx, "/api/v1/auth/phone/verify", in, nil)
}

func (a *API) VerifyIdentity(ctx context.Context, in IdentityVerifyRequest) (*IdentityVerifyResponse, error) {
	var out IdentityVerifyResponse
	if err := a.postJSON(ctx, "/api/v1/auth/identity/verify", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) VerificationStatus(ctx context.Context) (*VerificationStatusResponse, error) {
	var out VerificationStatusResponse
	if err := a.get(ctx, "/api/v1/auth/verification/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.get(ctx, "/api/v1/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Logout(ctx context.Context) error {
	req, err := a.gw.NewRequest(ctx, http.MethodPost, "/api/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	return a.send(ctx, req, nil)
}

// UploadFile posts data as the multipart "file" field.
func (a *API) UploadFile(ctx context.Context, filename, contentType string, data []byte) (*models.FileEntity, error) {
	body, ct, err := netx.MultipartFile("file", filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("build upload body: %w", err)
	}

	req, err := a.gw.NewRequest(ctx, http.MethodPost, "/api/v1/files/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", ct)

	var out FileUploadResponse
	if err := a.send(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.File.ID == "" {
		return nil, fmt.Errorf("%w: upload response has no file id", ErrMalformedResponse)
	}
	return &out.File, nil
}

func (a *API) get(ctx context.Context, path string, out any) error {
	req, err := a.gw.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return a.send(ctx, req, out)
}

func (a *API) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := a.gw.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	return a.send(ctx, req, out)
}

func (a *API) send(ctx context.Context, req *http.Request, out any) error {
	resp, err := a.gw.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if !netx.IsSuccess(resp.StatusCode) {
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
