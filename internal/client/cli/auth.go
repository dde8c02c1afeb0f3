package cli

import (
	"context"

	"github.com/lustless/lustless-client/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts for email and password. When the server asks for an
// emailed code it prompts for that too, then moves to the routed screen.
func (a *App) SignIn(ctx context.Context) error {
	a.navigate(models.ScreenSignIn)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	res, err := a.authService.SignIn(ctx, email, string(password))
	if err != nil {
		return a.fail(ctx, "sign in", err)
	}

	screen := res.Screen
	if res.OTPRequired {
		printlnFn("We sent a 6-digit code to", email)
		code, err := getSimpleText(a.reader, "Enter code", a.out)
		if err != nil {
			return err
		}
		screen, err = a.authService.VerifyLoginOTP(ctx, email, code)
		if err != nil {
			return a.fail(ctx, "verify login code", err)
		}
	}

	printlnFn("Signed in")
	a.navigate(screen)
	return nil
}

// SignUp creates an account and starts onboarding.
func (a *App) SignUp(ctx context.Context) error {
	a.navigate(models.ScreenSignupAccount)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	screen, err := a.authService.SignUp(ctx, email, string(password))
	if err != nil {
		return a.fail(ctx, "sign up", err)
	}

	printlnFn("Account created")
	a.navigate(screen)
	return nil
}

// Logout signs out; the session navigates back to the entry screen.
func (a *App) Logout(ctx context.Context) error {
	a.session.LogOut(ctx)
	printlnFn("Signed out")
	return nil
}
