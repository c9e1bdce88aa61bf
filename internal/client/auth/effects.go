package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gksession/internal/client/api"
	"github.com/dmitrijs2005/gksession/internal/client/effects"
	"github.com/dmitrijs2005/gksession/internal/client/messages"
	"github.com/dmitrijs2005/gksession/internal/client/storage"
	"github.com/dmitrijs2005/gksession/internal/client/store"
	"github.com/dmitrijs2005/gksession/internal/logging"
)

// StorageKey is where the logged in user's record is saved.
const StorageKey = "currentUser"

const (
	loggedInTitle    = "Logged in"
	loginFailedTitle = "Login Failed"
	loginFailedText  = "Check your email/password and try again"
)

// Effects runs the side effects of the session actions.
type Effects struct {
	api      api.Client
	storage  storage.Storage
	dispatch store.Dispatcher
	logger   logging.Logger
	now      func() time.Time
}

func NewEffects(client api.Client, st storage.Storage, d store.Dispatcher, logger logging.Logger) *Effects {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Effects{
		api:      client,
		storage:  st,
		dispatch: d,
		logger:   logger,
		now:      time.Now,
	}
}

// Register installs one latest-wins handler per session action.
func (e *Effects) Register(c *effects.Coordinator) {
	c.TakeLatest(TypeLoginAttempt, e.loginAttempt)
	c.TakeLatest(TypeLoginSuccess, e.loginSuccess)
	c.TakeLatest(TypeLoginFailed, e.loginFailed)
	c.TakeLatest(TypeLogout, e.logout)
	c.TakeLatest(TypeLoginRestored, e.loginRestored)
}

func (e *Effects) loginAttempt(ctx context.Context, action store.Action) error {
	a := action.(LoginAttempt)

	user, err := e.api.Login(ctx, a.Email, a.Password)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.logger.Info(ctx, "login failed", "email", a.Email, "error", err)
		return e.dispatch.DispatchContext(ctx, LoginFailed{Message: err.Error()})
	}
	return e.dispatch.DispatchContext(ctx, LoginSuccess{User: user})
}

func (e *Effects) loginSuccess(ctx context.Context, action store.Action) error {
	a := action.(LoginSuccess)

	e.api.SetToken(a.User.Token)

	if err := e.dispatch.DispatchContext(ctx, messages.NewShow(messages.StatusSuccess, loggedInTitle, "")); err != nil {
		return err
	}

	data, err := json.Marshal(a.User)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}
	if err := e.storage.SetItem(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (e *Effects) loginFailed(ctx context.Context, _ store.Action) error {
	return e.dispatch.DispatchContext(ctx, messages.NewShow(messages.StatusError, loginFailedTitle, loginFailedText))
}

func (e *Effects) logout(ctx context.Context, _ store.Action) error {
	if err := e.storage.RemoveItem(ctx, StorageKey); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

func (e *Effects) loginRestored(ctx context.Context, action store.Action) error {
	a := action.(LoginRestored)

	e.api.SetToken(a.User.Token)

	err := e.validate(ctx, a.User.Token)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	e.logger.Warn(ctx, "restored session rejected", "user", a.User.ID, "error", err)
	return e.dispatch.DispatchContext(ctx, Logout{})
}

func (e *Effects) validate(ctx context.Context, token string) error {
	if tokenExpired(token, e.now()) {
		return ErrTokenExpired
	}
	return e.api.ValidateToken(ctx)
}
