package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/lustless/lustless-client/internal/client/client"
	"github.com/lustless/lustless-client/internal/client/config"
	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/client/repositories/metadata"
	"github.com/lustless/lustless-client/internal/client/repositories/onboarding"
	"github.com/lustless/lustless-client/internal/client/repositories/tokens"
	"github.com/lustless/lustless-client/internal/client/router"
	"github.com/lustless/lustless-client/internal/client/services"
	"github.com/lustless/lustless-client/internal/filex"
	"github.com/lustless/lustless-client/internal/logging"
)

// sessionView is the part of *services.Session the REPL drives.
type sessionView interface {
	Snapshot() services.Snapshot
	LoadData(ctx context.Context) models.LoadResult
	RefreshVerificationStatus(ctx context.Context) *models.VerificationStatus
	LogOut(ctx context.Context)
}

type App struct {
	config       *config.Config
	log          logging.Logger
	db           *sql.DB
	session      sessionView
	authService  services.AuthService
	verifService services.VerificationService
	reader       *bufio.Reader
	out          io.Writer

	mu     sync.Mutex
	screen models.Screen
}

// NewApp opens the local database under the configured data directory and
// wires the token store, the gateway, the session and the flow services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDataDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error preparing data dir: %w", err)
	}
	c.DataDir = dir

	db, err := client.InitDatabase(ctx, c.DBPath())
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	repo := metadata.NewSQLiteRepository(db)
	tokenStore := tokens.NewStore(repo, log)
	scratch := onboarding.NewStore(db, c.OnboardingTTL, nil, log)

	gw := client.NewGateway(
		&http.Client{Timeout: c.RequestTimeout},
		client.GatewayConfig{BaseURL: c.APIBaseURL, Language: c.Language, RefreshSkew: c.RefreshSkew},
		tokenStore, nil, log,
	)
	api := client.NewAPI(gw)

	a := &App{
		config: c,
		log:    log.With("component", "cli"),
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		screen: models.ScreenEntry,
	}

	session := services.NewSession(api, tokenStore, services.NavigatorFunc(a.navigate), log)
	a.session = session
	a.authService = services.NewAuthService(api, session, scratch, log)
	a.verifService = services.NewVerificationService(api, session, scratch, c.DefaultCountryCode, log)

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.log.Error(ctx, "error closing database", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().User != nil
}

func (a *App) currentScreen() models.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

// navigate is the Navigator handed to the Session; flows call it with the
// screen returned by the router.
func (a *App) navigate(screen models.Screen) {
	a.mu.Lock()
	changed := a.screen != screen
	a.screen = screen
	a.mu.Unlock()

	if changed {
		printlnFn("->", string(screen), "|", screenHint(screen))
	}
}

// guard re-applies the mount guard for the current screen.
func (a *App) guard() {
	snap := a.session.Snapshot()
	target, redirect := router.Guard(
		a.currentScreen(),
		snap.User,
		snap.VerificationStatus,
		snap.Auth != services.AuthNotLoaded,
		snap.Verification == services.VerificationLoaded,
	)
	if redirect {
		a.navigate(target)
	}
}

// fail reports err to the user and returns it for the caller.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.log.Debug(ctx, op+" failed", "error", err)
	printlnFn("Error:", services.UserMessage(err))
	return err
}

func screenHint(s models.Screen) string {
	switch s {
	case models.ScreenEntry:
		return "type 'signin' or 'signup'"
	case models.ScreenSignIn:
		return "type 'signin'"
	case models.ScreenSignupAccount:
		return "type 'signup' to create an account"
	case models.ScreenSignupIDCapture:
		return "type 'id <path>' to upload a photo of your ID"
	case models.ScreenSignupSelfie:
		return "type 'selfie <path>' to verify your face"
	case models.ScreenSignupPhone:
		return "type 'phone' to verify your phone number"
	case models.ScreenMain:
		return "you are fully verified"
	default:
		return ""
	}
}
