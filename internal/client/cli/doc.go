// Package cli is the interactive session client.
//
// NewApp wires configuration, the local session database, the HTTP API
// client, the state store and the session effects. App.Run restores a saved
// session and then serves a REPL with login, logout, whoami, status and
// messages commands. Notifications are printed as soon as they are queued.
package cli
