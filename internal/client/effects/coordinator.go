package effects

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gksession/internal/client/store"
	"github.com/dmitrijs2005/gksession/internal/logging"
)

// Handler performs the side effects of one action.
type Handler func(ctx context.Context, action store.Action) error

// ErrorHook receives every error a handler returns, cancellations excluded.
type ErrorHook func(action store.Action, err error)

type Option func(*Coordinator)

func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

func WithErrorHook(fn ErrorHook) Option {
	return func(c *Coordinator) { c.onError = fn }
}

type task struct {
	id     uint64
	cancel context.CancelFunc
}

type Coordinator struct {
	logger  logging.Logger
	onError ErrorHook

	base       context.Context
	cancelBase context.CancelFunc

	mu       sync.Mutex
	handlers map[string]Handler
	running  map[string]*task
	seq      uint64
	closed   bool

	wg sync.WaitGroup
}

func New(opts ...Option) *Coordinator {
	base, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		logger:     logging.Nop{},
		base:       base,
		cancelBase: cancel,
		handlers:   make(map[string]Handler),
		running:    make(map[string]*task),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TakeLatest registers h for actionType, replacing any earlier handler.
func (c *Coordinator) TakeLatest(actionType string, h Handler) {
	c.mu.Lock()
	c.handlers[actionType] = h
	c.mu.Unlock()
}

// Attach makes c observe every action dispatched to s.
func Attach[S any](c *Coordinator, s *store.Store[S]) (detach func()) {
	return s.Subscribe(func(_, _ S, action store.Action) {
		c.Observe(action)
	})
}

// Observe starts the handler for action, superseding the running one of
// the same type. It never blocks on handler work, so it is safe to call
// from a store listener.
func (c *Coordinator) Observe(action store.Action) {
	actionType := action.Type()

	c.mu.Lock()
	h, ok := c.handlers[actionType]
	if !ok || c.closed {
		c.mu.Unlock()
		return
	}

	if prev, running := c.running[actionType]; running {
		prev.cancel()
		c.logger.Debug(c.base, "effect superseded", "action", actionType, "run", prev.id)
	}

	c.seq++
	ctx, cancel := context.WithCancel(c.base)
	t := &task{id: c.seq, cancel: cancel}
	c.running[actionType] = t
	c.wg.Add(1)
	c.mu.Unlock()

	c.logger.Debug(ctx, "effect started", "action", actionType, "run", t.id)
	go c.run(ctx, t, h, action)
}

func (c *Coordinator) run(ctx context.Context, t *task, h Handler, action store.Action) {
	actionType := action.Type()

	defer c.wg.Done()
	defer func() {
		c.mu.Lock()
		if c.running[actionType] == t {
			delete(c.running, actionType)
		}
		c.mu.Unlock()
		t.cancel()
	}()

	err := call(ctx, h, action)
	if err == nil {
		return
	}

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		c.logger.Debug(ctx, "effect cancelled", "action", actionType, "run", t.id)
		return
	}

	c.logger.Error(ctx, "effect failed", "action", actionType, "run", t.id, "error", err)
	if c.onError != nil {
		c.onError(action, err)
	}
}

func call(ctx context.Context, h Handler, action store.Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return h(ctx, action)
}

// Running reports whether a handler for actionType is in flight.
func (c *Coordinator) Running(actionType string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.running[actionType]
	return ok
}

// Wait blocks until no handler is running, including handlers started by
// actions that running handlers dispatch. Callers must not race Wait with
// dispatches made from outside the handlers.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close cancels every running handler, ignores later actions and waits for
// the handlers to return.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancelBase()
	c.wg.Wait()
}
