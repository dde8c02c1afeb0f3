package services

import (
	"errors"
	"fmt"

	"github.com/lustless/lustless-client/internal/client/models"
)

var (
	ErrAccountDataUnavailable = errors.New("account data unavailable after login")
	ErrIDDocumentMissing      = errors.New("id document not found in onboarding data")
)

// FlowError tags a failed backend call with the step it belonged to and the
// copy shown when the server gave no message of its own.
type FlowError struct {
	Op       string
	Fallback string
	Err      error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FlowError) Unwrap() error { return e.Err }

// flowFailure reports a failed backend call as a *ValidationError when the
// backend only named a rejected field, and as a *FlowError otherwise.
func flowFailure(op, fallback string, err error) error {
	if verr := fieldRejection(err); verr != nil {
		return verr
	}
	return &FlowError{Op: op, Fallback: fallback, Err: err}
}

// VerificationError is an identity verification rejection. Redirect, when
// set, is the screen the user must return to.
type VerificationError struct {
	Message  string
	Redirect models.Screen
	Err      error
}

func (e *VerificationError) Error() string {
	return "identity verification: " + e.Message
}

func (e *VerificationError) Unwrap() error { return e.Err }
