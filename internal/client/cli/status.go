package cli

import (
	"context"
	"fmt"

	"github.com/lustless/lustless-client/internal/client/router"
	"github.com/lustless/lustless-client/internal/client/services"
)

// Status prints what the session currently knows and where the router
// would send the user.
func (a *App) Status(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		printlnFn("Not signed in")
		return nil
	}

	printlnFn("User:", snap.User.DisplayName(), fmt.Sprintf("<%s>", snap.User.Email))
	if snap.User.VerificationStep != "" {
		printlnFn("Account step:", string(snap.User.VerificationStep))
	}
	printStatus(snap)
	printlnFn("Next screen:", string(router.Route(snap.User, snap.VerificationStatus)))
	return nil
}

// Refresh re-reads the verification status and re-runs the guard.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in")
		return nil
	}
	a.session.RefreshVerificationStatus(ctx)
	printStatus(a.session.Snapshot())
	a.guard()
	return nil
}

func printStatus(snap services.Snapshot) {
	st := snap.VerificationStatus
	if st == nil {
		printlnFn("Verification:", snap.Verification.String())
		return
	}
	printlnFn("Verification:", string(st.CurrentStep),
		fmt.Sprintf("(email %t, identity %t, full %t)", st.IsEmailVerified, st.IsIdentityVerified, st.IsFullyVerified))
	if st.Message != "" {
		printlnFn(st.Message)
	}
}
