// Package cli provides the interactive tasktracker command-line client.
//
// It wires configuration, the gRPC client and a REPL. Typical flow: log in
// or register, then list, filter, search, edit tasks and look at stats. A
// background watcher pings the server and flips the prompt between online
// and offline.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
