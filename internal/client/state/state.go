// Package state is the client's whole state: every slice and the reducer
// that feeds each action to all of them.
package state

import (
	"github.com/dmitrijs2005/gksession/internal/client/auth"
	"github.com/dmitrijs2005/gksession/internal/client/messages"
	"github.com/dmitrijs2005/gksession/internal/client/store"
)

type State struct {
	Auth     auth.State
	Messages messages.State
}

func Initial() State {
	return State{
		Auth:     auth.InitialState(),
		Messages: messages.InitialState(),
	}
}

func Reduce(s State, action store.Action) State {
	s.Auth = auth.Reduce(s.Auth, action)
	s.Messages = messages.Reduce(s.Messages, action)
	return s
}

// NewStore returns a store holding the initial state.
func NewStore() *store.Store[State] {
	return store.New(Initial(), Reduce)
}
