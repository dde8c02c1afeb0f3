package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/client/services"
)

// UploadID uploads the ID photo at path (prompting when empty) and moves on
// to the selfie step.
func (a *App) UploadID(ctx context.Context, path string) error {
	if !a.requireSignIn() {
		return nil
	}
	path, err := a.pathArg(path, "Enter path to a photo of your ID")
	if err != nil {
		return err
	}

	if _, err := a.verifService.UploadIDDocument(ctx, path); err != nil {
		return a.fail(ctx, "upload id", err)
	}

	printlnFn("ID document uploaded")
	a.navigate(models.ScreenSignupSelfie)
	return nil
}

// Selfie uploads the selfie at path and runs identity verification against
// the previously uploaded ID.
func (a *App) Selfie(ctx context.Context, path string) error {
	if !a.requireSignIn() {
		return nil
	}
	path, err := a.pathArg(path, "Enter path to a selfie")
	if err != nil {
		return err
	}

	res, err := a.verifService.VerifySelfie(ctx, path)
	if err != nil {
		var verr *services.VerificationError
		if errors.As(err, &verr) && verr.Redirect != "" {
			defer a.navigate(verr.Redirect)
		}
		return a.fail(ctx, "verify selfie", err)
	}

	printlnFn("Identity verified")
	if res.Similarity != nil {
		printlnFn(fmt.Sprintf("Similarity: %.1f%%", *res.Similarity))
	}
	if name := fmt.Sprintf("%s %s", res.ExtractedFirstName, res.ExtractedLastName); name != " " {
		printlnFn("Name on document:", name)
	}
	a.navigate(res.Screen)
	return nil
}

// Phone requests an SMS code for number (prompting when empty) and then
// confirms the code the user types.
func (a *App) Phone(ctx context.Context, number string) error {
	if !a.requireSignIn() {
		return nil
	}
	a.navigate(models.ScreenSignupPhone)

	number, err := a.pathArg(number, "Enter phone number")
	if err != nil {
		return err
	}

	ch, err := a.verifService.InitiatePhone(ctx, number)
	if err != nil {
		return a.fail(ctx, "initiate phone", err)
	}
	if ch.Message != "" {
		printlnFn(ch.Message)
	} else {
		printlnFn("Code sent to", ch.PhoneNumber)
	}

	code, err := getSimpleText(a.reader, "Enter the 6-digit code", a.out)
	if err != nil {
		return err
	}

	screen, err := a.verifService.VerifyPhone(ctx, ch.PhoneNumber, code)
	if err != nil {
		return a.fail(ctx, "verify phone", err)
	}

	printlnFn("Phone number verified")
	a.navigate(screen)
	return nil
}

func (a *App) requireSignIn() bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("Please sign in first")
	return false
}

func (a *App) pathArg(arg, prompt string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}
