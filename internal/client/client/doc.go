// Package client talks to the Lustless backend and bootstraps local storage.
//
// # Overview
//
// The package provides:
//  1. Gateway, which sends HTTP requests as the current session: it attaches
//     the language and bearer headers and refreshes a nearly expired access
//     token once before sending.
//  2. API, a typed method per backend endpoint on top of the Gateway.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations), wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are *APIError,
// which matches ErrUnauthorized under errors.Is when the status is 401.
// Undecodable success bodies wrap ErrMalformedResponse.
//
// Concurrency & Contexts
//
// Gateway and API are safe for concurrent use. Every call takes a
// context.Context and honours its cancellation.
//
// See Also
//
//   - Transport: Gateway, API
//   - DB helpers: InitDatabase, RunMigrations
//   - Errors:     ErrUnavailable, ErrUnauthorized, ErrMalformedResponse, APIError
package client
