package auth

import (
	"maps"

	"github.com/dmitrijs2005/gksession/internal/client/models"
)

// UserRef says who is logged in: nobody yet known (the zero value), nobody,
// or the user with a given id.
type UserRef struct {
	id    string
	known bool
}

// Undetermined is the reference before the session has been resolved.
func Undetermined() UserRef { return UserRef{} }

// NoUser is the reference after logout or a failed login.
func NoUser() UserRef { return UserRef{known: true} }

func UserID(id string) UserRef { return UserRef{id: id, known: true} }

// ID returns the user id and true when a user is logged in.
func (r UserRef) ID() (string, bool) {
	return r.id, r.known && r.id != ""
}

// Determined reports whether the session has been resolved either way.
func (r UserRef) Determined() bool { return r.known }

func (r UserRef) String() string {
	switch {
	case !r.known:
		return "<undetermined>"
	case r.id == "":
		return "<none>"
	default:
		return r.id
	}
}

type State struct {
	CurrentUser UserRef
	LoggingIn   bool
	UsersByID   map[string]models.User
}

func InitialState() State {
	return State{
		CurrentUser: Undetermined(),
		UsersByID:   map[string]models.User{},
	}
}

// User returns the record of the logged in user.
func (s State) User() (models.User, bool) {
	id, ok := s.CurrentUser.ID()
	if !ok {
		return models.User{}, false
	}
	u, ok := s.UsersByID[id]
	return u, ok
}

// withUser returns a copy of s whose map holds u; s is left untouched.
func (s State) withUser(u models.User) State {
	users := make(map[string]models.User, len(s.UsersByID)+1)
	maps.Copy(users, s.UsersByID)
	users[u.ID] = u.Clone()
	s.UsersByID = users
	s.CurrentUser = UserID(u.ID)
	return s
}
