// Package cli provides the interactive story command-line client.
//
// It wires configuration, the local store, the REST gateway and the core
// services into a REPL. A background watcher probes the API host and shows
// online/offline in the prompt.
//
// Key features:
//   - Register / Login / Logout
//   - Browse stories and show one (bookmarked copies work offline)
//   - Submit a story; offline submissions become drafts
//   - Bookmark and unbookmark stories
//   - List, drop and sync drafts
//
// The console notifier prints the outcome of every submission and bookmark
// change. The REPL is started via App.Run(ctx), which blocks until the user
// exits.
package cli
