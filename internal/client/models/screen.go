package models

// Screen identifies a navigation target.
type Screen string

const (
	ScreenEntry           Screen = "entry"
	ScreenSignIn          Screen = "sign-in"
	ScreenSignupAccount   Screen = "signup-step1"
	ScreenSignupIDCapture Screen = "signup-step2"
	ScreenSignupSelfie    Screen = "signup-step3"
	ScreenSignupPhone     Screen = "signup-step4"
	ScreenMain            Screen = "main"
)

// IsAuthScreen reports whether s belongs to the unauthenticated/onboarding
// group, where the verification guard does not redirect.
func (s Screen) IsAuthScreen() bool {
	switch s {
	case ScreenEntry, ScreenSignIn, ScreenSignupAccount, ScreenSignupIDCapture,
		ScreenSignupSelfie, ScreenSignupPhone:
		return true
	default:
		return false
	}
}
