// Package storage is the client's durable key/value store: the place the
// signed-in user record lives between runs.
//
// Values are strings. Every SetItem also records when the value was written,
// so callers can age out old entries. The default implementation keeps
// everything in the SQLite "metadata" table, whose schema is managed by the
// embedded goose migrations.
package storage
