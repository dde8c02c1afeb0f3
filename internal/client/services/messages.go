package services

import (
	"errors"

	"github.com/lustless/lustless-client/internal/client/client"
	"github.com/lustless/lustless-client/internal/filex"
)

const (
	msgNetwork             = "Network error. Please try again."
	msgAccountData         = "Failed to load account data. Please try again."
	msgIDDocumentMissing   = "ID document not found. Please go back and retake your ID photo."
	msgSessionExpired      = "Your session has expired. Please sign in again."
	msgUnexpectedResponse  = "Unexpected response from server"
	msgSomethingWentWrong  = "Something went wrong. Please try again."
	msgUnsupportedImage    = "Only JPG, PNG and WEBP images are allowed."
	msgImageTooLarge       = "Image is too large (max 10MB)."
	msgImageEmpty          = "Image file is empty."
	msgIdentityFailed      = "Identity verification failed"
	msgIdentityNoMatch     = "Identity verification failed. Please try again with a clearer photo."
	msgMaxAttempts         = "Maximum verification attempts reached. Please contact support."
	msgInvalidStep         = "Invalid verification step. Please complete email verification first."
	msgFilesNotFound       = "Uploaded files not found. Please upload your ID again."
	msgIDUploadFailed      = "Failed to upload ID document. Please try again."
	msgSelfieUploadFailed  = "Failed to upload selfie"
	msgLoginFailed         = "Login failed"
	msgInvalidOTP          = "Invalid OTP code"
	msgSignupFailed        = "Sign up failed"
	msgPhoneInitiateFailed = "Failed to send verification code"
	msgPhoneVerifyFailed   = "Invalid verification code"
)

// UserMessage renders err as screen copy.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		valErr  *ValidationError
		verErr  *VerificationError
		flowErr *FlowError
		apiErr  *client.APIError
	)

	switch {
	case errors.Is(err, client.ErrUnavailable):
		return msgNetwork
	case errors.As(err, &valErr):
		return valErr.Message
	case errors.As(err, &verErr):
		return verErr.Message
	case errors.Is(err, ErrAccountDataUnavailable):
		return msgAccountData
	case errors.Is(err, ErrIDDocumentMissing):
		return msgIDDocumentMissing
	case errors.Is(err, client.ErrUnauthorized):
		if errors.As(err, &apiErr) && serverMessage(apiErr) != "" {
			return serverMessage(apiErr)
		}
		return msgSessionExpired
	case errors.Is(err, filex.ErrUnsupportedImage):
		return msgUnsupportedImage
	case errors.Is(err, filex.ErrImageTooLarge):
		return msgImageTooLarge
	case errors.Is(err, filex.ErrEmptyImage):
		return msgImageEmpty
	case errors.As(err, &flowErr):
		if errors.As(err, &apiErr) && serverMessage(apiErr) != "" {
			return serverMessage(apiErr)
		}
		return flowErr.Fallback
	case errors.As(err, &apiErr):
		if msg := serverMessage(apiErr); msg != "" {
			return msg
		}
		return msgSomethingWentWrong
	case errors.Is(err, client.ErrMalformedResponse):
		return msgUnexpectedResponse
	default:
		return msgSomethingWentWrong
	}
}

// serverMessage is the top-level message of a response, or its first field
// error when there is none.
func serverMessage(apiErr *client.APIError) string {
	if msg := apiErr.FirstMessage(); msg != "" {
		return msg
	}
	_, msg := apiErr.FirstFieldError()
	return msg
}
