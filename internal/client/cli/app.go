package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gksession/internal/client/api"
	"github.com/dmitrijs2005/gksession/internal/client/auth"
	"github.com/dmitrijs2005/gksession/internal/client/config"
	"github.com/dmitrijs2005/gksession/internal/client/effects"
	"github.com/dmitrijs2005/gksession/internal/client/messages"
	"github.com/dmitrijs2005/gksession/internal/client/state"
	"github.com/dmitrijs2005/gksession/internal/client/storage"
	"github.com/dmitrijs2005/gksession/internal/client/store"
	"github.com/dmitrijs2005/gksession/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *store.Store[state.State]
	coord   *effects.Coordinator
	api     api.Client
	storage storage.Storage
	closer  io.Closer
	reader  *bufio.Reader

	unsubscribe func()
}

// NewApp opens the session database, builds the API client and wires the
// store to the session effects.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger.With("component", "api"))
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	a := newApp(c, apiClient, st, logger)
	a.closer = st
	return a, nil
}

func newApp(c *config.Config, client api.Client, st storage.Storage, logger logging.Logger) *App {
	a := &App{
		config:  c,
		logger:  logger,
		store:   state.NewStore(),
		api:     client,
		storage: st,
		reader:  bufio.NewReader(os.Stdin),
	}

	a.coord = effects.New(effects.WithLogger(logger.With("component", "effects")))
	auth.NewEffects(client, st, a.store, logger.With("component", "auth")).Register(a.coord)

	detach := effects.Attach(a.coord, a.store)
	stopNotify := a.store.Subscribe(notify)
	a.unsubscribe = func() {
		stopNotify()
		detach()
	}
	return a
}

// notify prints every notification as it is queued.
func notify(_, _ state.State, action store.Action) {
	if show, ok := action.(messages.Show); ok {
		printlnFn(messages.Render(show.Message))
	}
}

// Run restores the saved session, then serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("GophKeeper session client (type 'help' for commands)")

	if err := a.restore(ctx); err != nil {
		a.logger.Error(ctx, "session restore failed", "error", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restore(ctx context.Context) error {
	if err := auth.Restore(ctx, a.storage, a.store, a.config.SessionMaxAge); err != nil {
		return err
	}
	if err := a.waitIdle(ctx); err != nil {
		return err
	}

	if u, ok := a.store.State().Auth.User(); ok {
		a.logger.Info(ctx, "session restored", "user_id", u.ID)
	}
	return nil
}

// waitIdle blocks until every running effect has finished. When ctx is done
// first it closes the coordinator, cancelling the running effects, and
// returns ctx.Err() once they have stopped; the app accepts no new work
// after that.
func (a *App) waitIdle(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.coord.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		a.coord.Close()
		<-done
		return ctx.Err()
	}
}

// Close stops the effects and releases the database.
func (a *App) Close() {
	a.unsubscribe()
	a.coord.Close()
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			a.logger.Warn(context.Background(), "error closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.store.State().Auth.CurrentUser.ID()
	return ok
}

func (a *App) getStatus() string {
	s := a.store.State().Auth
	switch u, ok := s.User(); {
	case ok && u.Email != "":
		return fmt.Sprintf("(%s)", u.Email)
	case ok:
		return fmt.Sprintf("(%s)", u.ID)
	case !s.CurrentUser.Determined():
		return "(...)"
	default:
		return "(guest)"
	}
}
