package cli

import (
	"context"
	"fmt"

	"github.com/lustless/lustless-client/internal/client/router"
)

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	s := ""
	if snap.User != nil {
		s = snap.User.Email + " "
	}
	s += string(a.currentScreen())
	return fmt.Sprintf("(%s)", s)
}

// Root restores the previous session, moves to the screen it routes to and
// runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Lustless (type 'help' for commands)")

	a.restore(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

// restore loads the stored session once at startup. Without a user the
// guard keeps the entry screen.
func (a *App) restore(ctx context.Context) {
	res := a.session.LoadData(ctx)
	if res.User == nil {
		a.guard()
		return
	}
	a.navigate(router.Route(res.User, res.VerificationStatus))
}
