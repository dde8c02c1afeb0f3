package models

import "time"

// OnboardingData holds identifiers produced mid-signup that a later step
// needs, e.g. the uploaded ID document referenced by the selfie step.
type OnboardingData struct {
	IDDocumentID string    `json:"idDocumentId,omitempty"`
	SelfieID     string    `json:"selfieId,omitempty"`
	Email        string    `json:"email,omitempty"`
	SavedAt      time.Time `json:"savedAt,omitempty"`
}

// Merge returns d overlaid with the non-empty fields of other.
func (d OnboardingData) Merge(other OnboardingData) OnboardingData {
	if other.IDDocumentID != "" {
		d.IDDocumentID = other.IDDocumentID
	}
	if other.SelfieID != "" {
		d.SelfieID = other.SelfieID
	}
	if other.Email != "" {
		d.Email = other.Email
	}
	if !other.SavedAt.IsZero() {
		d.SavedAt = other.SavedAt
	}
	return d
}
