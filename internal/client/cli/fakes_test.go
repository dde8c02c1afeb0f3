package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/client/services"
	"github.com/lustless/lustless-client/internal/logging"
)

type fakeAuth struct {
	signInEmail, signInPass string
	signInRes               services.SignInResult
	signInErr               error

	otpEmail, otpCode string
	otpScreen         models.Screen
	otpErr            error

	signUpEmail, signUpPass string
	signUpScreen            models.Screen
	signUpErr               error
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (services.SignInResult, error) {
	f.signInEmail, f.signInPass = email, password
	return f.signInRes, f.signInErr
}

func (f *fakeAuth) VerifyLoginOTP(_ context.Context, email, code string) (models.Screen, error) {
	f.otpEmail, f.otpCode = email, code
	return f.otpScreen, f.otpErr
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (models.Screen, error) {
	f.signUpEmail, f.signUpPass = email, password
	return f.signUpScreen, f.signUpErr
}

type fakeVerif struct {
	idPath string
	idErr  error

	selfiePath string
	selfieRes  *services.IdentityResult
	selfieErr  error

	initRaw string
	initRes *services.PhoneChallenge
	initErr error

	verifyPhone, verifyCode string
	verifyScreen            models.Screen
	verifyErr               error
}

func (f *fakeVerif) UploadIDDocument(_ context.Context, path string) (string, error) {
	f.idPath = path
	if f.idErr != nil {
		return "", f.idErr
	}
	return "file-1", nil
}

func (f *fakeVerif) VerifySelfie(_ context.Context, path string) (*services.IdentityResult, error) {
	f.selfiePath = path
	return f.selfieRes, f.selfieErr
}

func (f *fakeVerif) InitiatePhone(_ context.Context, raw string) (*services.PhoneChallenge, error) {
	f.initRaw = raw
	return f.initRes, f.initErr
}

func (f *fakeVerif) VerifyPhone(_ context.Context, phone, code string) (models.Screen, error) {
	f.verifyPhone, f.verifyCode = phone, code
	return f.verifyScreen, f.verifyErr
}

type fakeSession struct {
	snap      services.Snapshot
	load      models.LoadResult
	loads     int
	refreshes int
	logouts   int
	onLogOut  func()
}

func (f *fakeSession) Snapshot() services.Snapshot { return f.snap }

func (f *fakeSession) LoadData(context.Context) models.LoadResult {
	f.loads++
	return f.load
}

func (f *fakeSession) RefreshVerificationStatus(context.Context) *models.VerificationStatus {
	f.refreshes++
	return f.snap.VerificationStatus
}

func (f *fakeSession) LogOut(context.Context) {
	f.logouts++
	if f.onLogOut != nil {
		f.onLogOut()
	}
}

// stubInputs answers text prompts in order and returns password for the
// password prompt.
func stubInputs(t *testing.T, password string, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return &prompts
}

func newTestApp(t *testing.T) (*App, *fakeAuth, *fakeVerif, *fakeSession) {
	t.Helper()
	capturePrint(t)

	auth := &fakeAuth{}
	verif := &fakeVerif{}
	sess := &fakeSession{}
	a := &App{
		log:          logging.Discard(),
		session:      sess,
		authService:  auth,
		verifService: verif,
		reader:       rdr(""),
		out:          &bytes.Buffer{},
		screen:       models.ScreenEntry,
	}
	return a, auth, verif, sess
}

func signedIn(step models.VerificationStep) services.Snapshot {
	return services.Snapshot{
		Auth:               services.AuthLoadedWithUser,
		Verification:       services.VerificationLoaded,
		User:               &models.User{ID: "u1", Email: "ann@example.com", VerificationStep: step},
		VerificationStatus: models.NewVerificationStatus(step, "", "", false),
	}
}

func newSignedInApp(t *testing.T) (*App, *fakeAuth, *fakeVerif, *fakeSession) {
	t.Helper()
	a, auth, verif, sess := newTestApp(t)
	sess.snap = signedIn(models.StepEmailVerified)
	return a, auth, verif, sess
}
