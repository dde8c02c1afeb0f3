// Package router decides which screen a user may be on given their
// verification progress. Everything here is pure and deterministic.
package router

import "github.com/lustless/lustless-client/internal/client/models"

// Route maps (user, status) to the one screen the user belongs on.
//
//  1. No user: entry.
//  2. Fully verified per the user or the status: main.
//  3. Otherwise by step, taking the user's step before the status's:
//     email_verified goes to ID capture, identity_verified goes to phone
//     verification, anything else goes to account creation.
func Route(user *models.User, status *models.VerificationStatus) models.Screen {
	if user == nil {
		return models.ScreenEntry
	}

	if user.VerificationStep == models.StepFullyVerified || (status != nil && status.IsFullyVerified) {
		return models.ScreenMain
	}

	switch currentStep(user, status) {
	case models.StepEmailVerified:
		return models.ScreenSignupIDCapture
	case models.StepIdentityVerified:
		return models.ScreenSignupPhone
	default:
		return models.ScreenSignupAccount
	}
}

func currentStep(user *models.User, status *models.VerificationStatus) models.VerificationStep {
	if user.VerificationStep != "" {
		return user.VerificationStep
	}
	if status != nil {
		return status.CurrentStep
	}
	return ""
}

// Guard is the redirect-on-mount check for a screen. It reports the screen to
// replace current with, and whether a redirect is needed at all.
//
// Nothing happens until both the auth and verification state are loaded.
// Auth and onboarding screens manage their own navigation and are never
// redirected. A missing user goes to entry; a fully verified user stays put;
// anyone else goes to the step Route picks.
func Guard(current models.Screen, user *models.User, status *models.VerificationStatus, authLoaded, verificationLoaded bool) (models.Screen, bool) {
	if !authLoaded || !verificationLoaded {
		return current, false
	}
	if current.IsAuthScreen() {
		return current, false
	}
	if user == nil {
		return models.ScreenEntry, true
	}

	target := Route(user, status)
	if target == models.ScreenMain || target == current {
		return current, false
	}
	return target, true
}
