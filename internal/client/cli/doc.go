// Package cli provides the interactive EduCloud command-line client.
//
// It wires configuration, local storage, the credential envelope and the
// HTTP client into an interactive REPL. Typical flow: restore a stored
// session if there is one, start a background connectivity watcher, and
// execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - WhoAmI (cached profile, token expiry)
//   - Health (backend status, also polled in the background)
//   - Get (authenticated GET against the API)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
