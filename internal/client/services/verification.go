package services

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/lustless/lustless-client/internal/client/client"
	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/client/router"
	"github.com/lustless/lustless-client/internal/filex"
	"github.com/lustless/lustless-client/internal/logging"
)

const identityFailedPrefix = "identityVerificationFailed"

// IdentityResult is a successful ID/selfie match.
type IdentityResult struct {
	Similarity         *float64
	ExtractedFirstName string
	ExtractedLastName  string
	Screen             models.Screen
}

// PhoneChallenge describes an SMS code that was sent.
type PhoneChallenge struct {
	PhoneNumber string
	ExpiresAt   string
	Message     string
}

// VerificationService defines the identity and phone onboarding steps.
//
// Contract:
//   - UploadIDDocument: uploads the ID photo and remembers its file id.
//   - VerifySelfie: uploads a selfie and matches it against the stored ID.
//   - InitiatePhone: normalises the number and requests an SMS code.
//   - VerifyPhone: confirms the code and routes to the next screen.
//
// A 401 from any call logs the session out.
type VerificationService interface {
	UploadIDDocument(ctx context.Context, path string) (string, error)
	VerifySelfie(ctx context.Context, path string) (*IdentityResult, error)
	InitiatePhone(ctx context.Context, raw string) (*PhoneChallenge, error)
	VerifyPhone(ctx context.Context, phone, code string) (models.Screen, error)
}

type verificationService struct {
	api         Backend
	session     *Session
	scratch     ScratchStore
	countryCode string
	log         logging.Logger
}

func NewVerificationService(api Backend, session *Session, scratch ScratchStore, countryCode string, log logging.Logger) VerificationService {
	return &verificationService{
		api:         api,
		session:     session,
		scratch:     scratch,
		countryCode: countryCode,
		log:         log.With("component", "verification"),
	}
}

func (v *verificationService) UploadIDDocument(ctx context.Context, path string) (string, error) {
	fe, err := v.upload(ctx, path)
	if err != nil {
		return "", v.failed(ctx, "upload id document", msgIDUploadFailed, err)
	}

	v.scratch.Set(ctx, models.OnboardingData{IDDocumentID: fe.ID})
	v.log.Info(ctx, "id document uploaded", "file_id", fe.ID)
	return fe.ID, nil
}

func (v *verificationService) VerifySelfie(ctx context.Context, path string) (*IdentityResult, error) {
	data := v.scratch.Get(ctx)
	if data == nil || data.IDDocumentID == "" {
		return nil, ErrIDDocumentMissing
	}

	fe, err := v.upload(ctx, path)
	if err != nil {
		return nil, v.failed(ctx, "upload selfie", msgSelfieUploadFailed, err)
	}
	v.scratch.Set(ctx, models.OnboardingData{SelfieID: fe.ID})

	resp, err := v.api.VerifyIdentity(ctx, client.IdentityVerifyRequest{IDDocumentID: data.IDDocumentID, SelfieID: fe.ID})
	if err != nil {
		return nil, v.identityFailure(ctx, err)
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = msgIdentityNoMatch
		}
		v.log.Info(ctx, "identity verification rejected", "message", msg)
		return nil, &VerificationError{Message: msg}
	}

	res := v.session.LoadData(ctx)
	result := &IdentityResult{
		Similarity:         resp.Similarity,
		ExtractedFirstName: resp.ExtractedFirstName,
		ExtractedLastName:  resp.ExtractedLastName,
		Screen:             router.Route(res.User, res.VerificationStatus),
	}
	v.log.Info(ctx, "identity verified", "next", result.Screen)
	return result, nil
}

func (v *verificationService) InitiatePhone(ctx context.Context, raw string) (*PhoneChallenge, error) {
	req := client.PhoneInitiateRequest{PhoneNumber: NormalizePhone(raw, v.countryCode)}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := v.api.InitiatePhone(ctx, req)
	if err != nil {
		return nil, v.failed(ctx, "initiate phone", msgPhoneInitiateFailed, err)
	}

	phone := resp.PhoneNumber
	if phone == "" {
		phone = req.PhoneNumber
	}
	return &PhoneChallenge{PhoneNumber: phone, ExpiresAt: resp.ExpiresAt, Message: resp.Message}, nil
}

func (v *verificationService) VerifyPhone(ctx context.Context, phone, code string) (models.Screen, error) {
	req := client.PhoneVerifyRequest{PhoneNumber: NormalizePhone(phone, v.countryCode), Code: strings.TrimSpace(code)}
	if err := validateRequest(req); err != nil {
		return "", err
	}

	if err := v.api.VerifyPhone(ctx, req); err != nil {
		return "", v.failed(ctx, "verify phone", msgPhoneVerifyFailed, err)
	}

	v.scratch.Clear(ctx)

	// LoadData re-fetches the user and then the status.
	res := v.session.LoadData(ctx)
	screen := router.Route(res.User, res.VerificationStatus)
	v.log.Info(ctx, "phone verified", "next", screen)
	return screen, nil
}

func (v *verificationService) upload(ctx context.Context, path string) (*models.FileEntity, error) {
	data, contentType, err := filex.ReadImage(path)
	if err != nil {
		return nil, err
	}
	return v.api.UploadFile(ctx, filepath.Base(path), contentType, data)
}

// failed wraps err for display and logs the session out on a 401.
func (v *verificationService) failed(ctx context.Context, op, fallback string, err error) error {
	v.log.Warn(ctx, op+" failed", "error", err)
	v.session.HandleUnauthorized(ctx, err)
	return flowFailure(op, fallback, err)
}

// identityFailure maps a failed /auth/identity/verify call to display copy.
func (v *verificationService) identityFailure(ctx context.Context, err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		v.log.Warn(ctx, "identity verification request failed", "error", err)
		return err
	}
	if v.session.HandleUnauthorized(ctx, err) {
		return err
	}

	if apiErr.Status == http.StatusUnprocessableEntity {
		verr := identityRejection(apiErr)
		v.log.Info(ctx, "identity verification rejected", "status", apiErr.Status, "message", verr.Message)
		return verr
	}

	msg := apiErr.FirstMessage()
	if msg == "" {
		msg = msgIdentityFailed
	}
	return &VerificationError{Message: msg, Err: err}
}

// identityRejection maps the coded reasons of a 422 response.
func identityRejection(apiErr *client.APIError) *VerificationError {
	verification := apiErr.Field("verification")
	files := apiErr.Field("files")

	switch {
	case verification == "maxAttemptsReached":
		return &VerificationError{Message: msgMaxAttempts, Err: apiErr}
	case verification == "invalidVerificationStep":
		return &VerificationError{Message: msgInvalidStep, Err: apiErr}
	case files == "filesNotFound":
		return &VerificationError{Message: msgFilesNotFound, Redirect: models.ScreenSignupIDCapture, Err: apiErr}
	case strings.HasPrefix(verification, identityFailedPrefix):
		reason := strings.TrimPrefix(verification, identityFailedPrefix)
		reason = strings.TrimSpace(strings.TrimPrefix(reason, ":"))
		if reason == "" {
			reason = msgIdentityFailed
		}
		return &VerificationError{Message: reason, Err: apiErr}
	case apiErr.FirstMessage() != "":
		return &VerificationError{Message: apiErr.FirstMessage(), Err: apiErr}
	default:
		return &VerificationError{Message: msgIdentityFailed, Err: apiErr}
	}
}
