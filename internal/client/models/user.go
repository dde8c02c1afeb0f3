package models

// VerificationStep is a stage of the identity-proofing funnel.
type VerificationStep string

const (
	StepEmailVerified    VerificationStep = "email_verified"
	StepIdentityVerified VerificationStep = "identity_verified"
	StepFullyVerified    VerificationStep = "fully_verified"
)

// Rank orders steps; unknown and empty steps rank 0.
func (s VerificationStep) Rank() int {
	switch s {
	case StepEmailVerified:
		return 1
	case StepIdentityVerified:
		return 2
	case StepFullyVerified:
		return 3
	default:
		return 0
	}
}

func (s VerificationStep) Valid() bool {
	return s.Rank() > 0
}

// AtLeast reports whether s is other or a later step. An unknown s is never
// at least anything.
func (s VerificationStep) AtLeast(other VerificationStep) bool {
	return s.Valid() && s.Rank() >= other.Rank()
}

type FileEntity struct {
	ID   string `json:"id"`
	Path string `json:"path,omitempty"`
}

type Role struct {
	ID   any    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// User is the server-authoritative account record. The client never edits
// it field by field; it is replaced from /auth/me responses.
type User struct {
	ID                           string           `json:"id"`
	Email                        string           `json:"email"`
	FirstName                    string           `json:"firstName,omitempty"`
	LastName                     string           `json:"lastName,omitempty"`
	PhoneNumber                  string           `json:"phoneNumber,omitempty"`
	PhoneVerified                bool             `json:"phoneVerified,omitempty"`
	VerificationStep             VerificationStep `json:"verificationStep,omitempty"`
	FaceVerificationScore        *float64         `json:"faceVerificationScore,omitempty"`
	IdentityVerificationAttempts int              `json:"identityVerificationAttempts,omitempty"`
	Photo                        *FileEntity      `json:"photo,omitempty"`
	IDDocument                   *FileEntity      `json:"idDocument,omitempty"`
	Provider                     string           `json:"provider,omitempty"`
	SocialID                     string           `json:"socialId,omitempty"`
	Role                         *Role            `json:"role,omitempty"`
	CreatedAt                    string           `json:"createdAt,omitempty"`
	UpdatedAt                    string           `json:"updatedAt,omitempty"`
}

// DisplayName prefers "First Last" and falls back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
