package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gksession/internal/client/api"
	"github.com/dmitrijs2005/gksession/internal/client/effects"
	"github.com/dmitrijs2005/gksession/internal/client/messages"
	"github.com/dmitrijs2005/gksession/internal/client/models"
	"github.com/dmitrijs2005/gksession/internal/client/storage"
	"github.com/dmitrijs2005/gksession/internal/client/store"
)

type fakeAPI struct {
	mu            sync.Mutex
	token         string
	setTokenCalls int
	validateCalls int

	LoginFn    func(ctx context.Context, email, password string) (models.User, error)
	ValidateFn func(ctx context.Context) error
}

var _ api.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Login(ctx context.Context, email, password string) (models.User, error) {
	if f.LoginFn == nil {
		return models.User{}, errors.New("login not configured")
	}
	return f.LoginFn(ctx, email, password)
}

func (f *fakeAPI) ValidateToken(ctx context.Context) error {
	f.mu.Lock()
	f.validateCalls++
	fn := f.ValidateFn
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	f.setTokenCalls++
}

func (f *fakeAPI) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeAPI) counts() (setToken, validate int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setTokenCalls, f.validateCalls
}

type fakeStorage struct {
	mu      sync.Mutex
	items   map[string]storage.Item
	writes  int
	removes int

	GetErr error
	SetErr error
	RmErr  error
}

var _ storage.Storage = (*fakeStorage)(nil)

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: map[string]storage.Item{}}
}

func (f *fakeStorage) GetItem(_ context.Context, key string) (storage.Item, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return storage.Item{}, false, f.GetErr
	}
	it, ok := f.items[key]
	return it, ok, nil
}

func (f *fakeStorage) SetItem(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetErr != nil {
		return f.SetErr
	}
	f.writes++
	f.items[key] = storage.Item{Value: value, SavedAt: time.Now()}
	return nil
}

func (f *fakeStorage) RemoveItem(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RmErr != nil {
		return f.RmErr
	}
	f.removes++
	delete(f.items, key)
	return nil
}

func (f *fakeStorage) put(key string, it storage.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = it
}

func (f *fakeStorage) get(key string) (storage.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[key]
	return it, ok
}

func (f *fakeStorage) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// recorder is a Dispatcher that only remembers what it was given.
type recorder struct {
	mu      sync.Mutex
	actions []store.Action
}

func (r *recorder) Dispatch(a store.Action) {
	r.mu.Lock()
	r.actions = append(r.actions, a)
	r.mu.Unlock()
}

func (r *recorder) DispatchContext(ctx context.Context, a store.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.Dispatch(a)
	return nil
}

func (r *recorder) list() []store.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]store.Action(nil), r.actions...)
}

type appState struct {
	Auth     State
	Messages messages.State
}

func reduceApp(s appState, a store.Action) appState {
	s.Auth = Reduce(s.Auth, a)
	s.Messages = messages.Reduce(s.Messages, a)
	return s
}

// harness wires a store, a coordinator and Effects over the fakes.
type harness struct {
	store   *store.Store[appState]
	coord   *effects.Coordinator
	api     *fakeAPI
	storage *fakeStorage

	mu      sync.Mutex
	applied []string
	errs    []error
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		store:   store.New(appState{Auth: InitialState(), Messages: messages.InitialState()}, reduceApp),
		api:     &fakeAPI{},
		storage: newFakeStorage(),
	}
	h.coord = effects.New(effects.WithErrorHook(func(_ store.Action, err error) {
		h.mu.Lock()
		h.errs = append(h.errs, err)
		h.mu.Unlock()
	}))

	h.store.Subscribe(func(_, _ appState, a store.Action) {
		h.mu.Lock()
		h.applied = append(h.applied, a.Type())
		h.mu.Unlock()
	})
	effects.Attach(h.coord, h.store)
	NewEffects(h.api, h.storage, h.store, nil).Register(h.coord)

	t.Cleanup(h.coord.Close)
	return h
}

// dispatch applies a and waits for every effect it leads to.
func (h *harness) dispatch(a store.Action) appState {
	h.store.Dispatch(a)
	h.coord.Wait()
	return h.store.State()
}

func (h *harness) appliedTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.applied...)
}

func (h *harness) handlerErrors() []error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]error(nil), h.errs...)
}
