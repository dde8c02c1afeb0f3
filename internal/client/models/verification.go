package models

// VerificationStatus is the normalised view of /auth/verification/status.
type VerificationStatus struct {
	CurrentStep        VerificationStep `json:"currentStep"`
	IsFullyVerified    bool             `json:"isFullyVerified"`
	IsEmailVerified    bool             `json:"isEmailVerified"`
	IsIdentityVerified bool             `json:"isIdentityVerified"`
	NextRoute          string           `json:"nextRoute"`
	Message            string           `json:"message"`
}

// NewVerificationStatus derives the boolean predicates from step using the
// order email_verified < identity_verified < fully_verified.
func NewVerificationStatus(step VerificationStep, nextRoute, message string, fullyVerified bool) *VerificationStatus {
	return &VerificationStatus{
		CurrentStep:        step,
		NextRoute:          nextRoute,
		Message:            message,
		IsFullyVerified:    fullyVerified || step == StepFullyVerified,
		IsEmailVerified:    step.AtLeast(StepEmailVerified),
		IsIdentityVerified: step.AtLeast(StepIdentityVerified),
	}
}

// DefaultVerificationStatus is used whenever the status endpoint cannot be
// read, so a routing decision is always possible.
func DefaultVerificationStatus() *VerificationStatus {
	return &VerificationStatus{
		CurrentStep:        StepEmailVerified,
		NextRoute:          "/verify-identity",
		IsFullyVerified:    false,
		IsEmailVerified:    true,
		IsIdentityVerified: false,
		Message:            "Unable to fetch verification status",
	}
}

// LoadResult is what a session load hands back to its caller so the next
// screen can be chosen without waiting for observers to catch up.
type LoadResult struct {
	User               *User
	VerificationStatus *VerificationStatus
}
