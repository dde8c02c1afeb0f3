// Package cli provides the interactive Lustless command-line client.
//
// It wires configuration, the local SQLite store, the authenticated HTTP
// gateway and the session, then runs a REPL that stands in for the app's
// screens: sign in, sign up, ID upload, selfie verification and phone
// verification. After every flow the REPL moves to the screen picked by the
// verification router, and the session sends it back to the entry screen on
// logout.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
