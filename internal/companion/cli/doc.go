// Package cli provides the interactive companion command-line client.
//
// It wires configuration, the local store, the backend client, and an
// interactive REPL that works anonymously, offline, or signed in. Typical
// flow: open the local database, start a background connectivity watcher,
// and execute user commands.
//
// Key features:
//   - Register / Login / Logout against the backend, with full local
//     operation when the backend is unreachable or unconfigured
//   - Log practice sessions and browse the history
//   - View and edit the primer and settings
//   - Export / import the local data as JSON
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
