package auth

import "errors"

// ErrTokenExpired is the validation error for a restored token whose exp
// claim has already passed; the server is not asked in that case.
var ErrTokenExpired = errors.New("token expired")
