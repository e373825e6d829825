// Package client is the remote side of the story client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Gateway interface): submit a
//     story, fetch one story, list stories, login, register and ping.
//  2. A concrete REST implementation (see HTTPClient) that speaks JSON and
//     multipart over net/http, injects the bearer token obtained from a
//     TokenProvider and posts to the guest endpoint when nobody is signed in.
//
// # Error Handling
//
// Transport failures, timeouts included, are reported as ErrUnavailable.
// Non-success responses are *ResponseError values; they match ErrValidation,
// ErrUnauthorized or ErrServer with errors.Is depending on the status code.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor its deadline.
package client
