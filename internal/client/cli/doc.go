// Package cli provides the interactive exercise tracker command-line client.
//
// It wires configuration, the HTTP API client and a REPL. A background
// watcher polls /health and switches the prompt between online and offline.
//
// Key features:
//   - Create and list users
//   - Select a current user with "use <id>"
//   - Add exercises and show filtered logs
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
