// Package client contains the client-side building blocks for talking to the
// stories backend and bootstrapping the local cache.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface):
//     GetStories, GetUsers, CreateStory and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that performs a single
//     attempt per call and maps failures to the sentinel errors of package
//     common.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Callers match failures with errors.Is:
//
//   - common.ErrTransport: the server could not be reached, timed out, or
//     answered with an unexpected status.
//   - common.ErrDecoding: the response body did not have the expected shape.
//   - common.ErrorValidation: the server rejected the request (HTTP 400).
//   - common.ErrorNotFound: a referenced entity does not exist (HTTP 404).
//
// All operations accept context.Context and honor cancellation.
package client
