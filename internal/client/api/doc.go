// Package api is the client side of the authentication HTTP API.
//
// Endpoints
//
//	POST /auth/login           {"email": ..., "password": ...} -> user record
//	GET  /auth/validateToken   2xx when the current token is still good
//
// The HTTPClient owns the outgoing authorization credential: SetToken
// changes the bearer token sent with every later request. Errors can be
// matched with errors.Is against ErrUnavailable (transport failure) and
// ErrUnauthorized (401/403); any other non-2xx answer is a *StatusError
// whose Error() is the server's human-readable message.
package api
