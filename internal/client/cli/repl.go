package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	UploadID(ctx context.Context, path string) error
	Selfie(ctx context.Context, path string) error
	Phone(ctx context.Context, number string) error
	Status(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Lustless client.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Commands
//
//	Signed out:
//	  - help               show available commands
//	  - signin | login     sign in with email, password and emailed code
//	  - signup             create an account
//	  - exit | quit        leave the program
//
//	Signed in:
//	  - help               show available commands
//	  - id [path]          upload a photo of an ID document
//	  - selfie [path]      upload a selfie and run identity verification
//	  - phone [number]     request and confirm an SMS code
//	  - status | whoami    show the user, verification status and next screen
//	  - refresh            re-read the verification status
//	  - logout             sign out and clear local data
//	  - exit | quit        leave the program
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lustless %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: id, selfie, phone, status, refresh, logout, exit")
			} else {
				printlnFn("Available commands: signin, signup, exit")
			}

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "signup", "register":
			_ = a.SignUp(ctx)

		case "id":
			_ = a.UploadID(ctx, arg)

		case "selfie":
			_ = a.Selfie(ctx, arg)

		case "phone":
			_ = a.Phone(ctx, arg)

		case "status", "whoami":
			_ = a.Status(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
