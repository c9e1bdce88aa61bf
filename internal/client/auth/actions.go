package auth

import (
	"github.com/dmitrijs2005/gksession/internal/client/models"
	"github.com/dmitrijs2005/gksession/internal/client/store"
)

const (
	TypeLoginAttempt  = "auth/LOGIN_ATTEMPT"
	TypeLoginSuccess  = "auth/LOGIN_SUCCESS"
	TypeLoginFailed   = "auth/LOGIN_FAILED"
	TypeLogout        = "auth/LOGOUT"
	TypeLoginRestored = "auth/LOGIN_RESTORED"
)

type LoginAttempt struct {
	Email    string
	Password string
}

type LoginSuccess struct {
	User models.User
}

type LoginFailed struct {
	Message string
}

type Logout struct{}

type LoginRestored struct {
	User models.User
}

func (LoginAttempt) Type() string  { return TypeLoginAttempt }
func (LoginSuccess) Type() string  { return TypeLoginSuccess }
func (LoginFailed) Type() string   { return TypeLoginFailed }
func (Logout) Type() string        { return TypeLogout }
func (LoginRestored) Type() string { return TypeLoginRestored }

// Reduce applies one action to the session slice. Actions of other slices
// return s unchanged.
func Reduce(s State, action store.Action) State {
	switch a := action.(type) {
	case LoginAttempt:
		s.LoggingIn = true
	case LoginSuccess:
		s = s.withUser(a.User)
		s.LoggingIn = false
	case LoginFailed:
		s.CurrentUser = NoUser()
		s.LoggingIn = false
	case Logout:
		s.CurrentUser = NoUser()
	case LoginRestored:
		s = s.withUser(a.User)
	}
	return s
}
