// Package messages holds the user notification queue: the action that
// shows a notification, its reducer, and terminal rendering.
package messages

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/gksession/internal/client/store"
	"github.com/google/uuid"
)

// MaxQueued is how many messages the queue keeps; older ones are dropped.
const MaxQueued = 50

const (
	TypeShow    = "messages/SHOW_MESSAGE"
	TypeDismiss = "messages/DISMISS_MESSAGE"
	TypeClear   = "messages/CLEAR_MESSAGES"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
)

type Message struct {
	ID        uuid.UUID
	Status    Status
	Title     string
	Text      string
	CreatedAt time.Time
}

// Show queues a notification. Build it with NewShow so it carries an id
// and a timestamp; the reducer stores it as given.
type Show struct {
	Message
}

func (Show) Type() string { return TypeShow }

// NewShow returns a Show action for a fresh message.
func NewShow(status Status, title, text string) Show {
	return Show{Message{
		ID:        uuid.New(),
		Status:    status,
		Title:     title,
		Text:      text,
		CreatedAt: time.Now(),
	}}
}

// Dismiss removes the message with the given id, if queued.
type Dismiss struct {
	ID uuid.UUID
}

func (Dismiss) Type() string { return TypeDismiss }

// Clear empties the queue.
type Clear struct{}

func (Clear) Type() string { return TypeClear }

// State is the queue, oldest first.
type State struct {
	Queue []Message
}

func InitialState() State {
	return State{}
}

// Last returns the newest message.
func (s State) Last() (Message, bool) {
	if len(s.Queue) == 0 {
		return Message{}, false
	}
	return s.Queue[len(s.Queue)-1], true
}

// Reduce never modifies the queue it was given.
func Reduce(s State, action store.Action) State {
	switch a := action.(type) {
	case Show:
		q := s.Queue
		if len(q) >= MaxQueued {
			q = q[len(q)-MaxQueued+1:]
		}
		next := make([]Message, 0, len(q)+1)
		next = append(next, q...)
		return State{Queue: append(next, a.Message)}

	case Dismiss:
		i := slices.IndexFunc(s.Queue, func(m Message) bool { return m.ID == a.ID })
		if i < 0 {
			return s
		}
		return State{Queue: slices.Delete(slices.Clone(s.Queue), i, i+1)}

	case Clear:
		if len(s.Queue) == 0 {
			return s
		}
		return State{}
	}
	return s
}
