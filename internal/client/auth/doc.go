// Package auth is the session slice of the client state.
//
// The slice changes only through five actions (LoginAttempt, LoginSuccess,
// LoginFailed, Logout, LoginRestored) applied by Reduce. Effects performs
// the network, storage and notification work each action triggers, run by
// an effects.Coordinator so that only the latest action of each kind can
// finish. Restore reads the saved session at startup.
package auth
