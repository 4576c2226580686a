package view

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketplace/metrics"
	"marketplace/model"
	"marketplace/service"
)

// InvalidResponseMessage is shown when a successful reply carries no usable collection list
const InvalidResponseMessage = "Invalid response format from server"

// ErrNotMounted is returned by Wait on a component that was never mounted
var ErrNotMounted = errors.New("collections component is not mounted")

// CollectionsFetcher is the service the component loads from
type CollectionsFetcher interface {
	GetAllCollections(ctx context.Context) (*model.CollectionsEnvelope, error)
}

// Collections loads the collection list once per mount and holds the state to render.
// The fetch is scoped to the mount; a result arriving after Unmount is dropped.
type Collections struct {
	ID string

	fetcher CollectionsFetcher
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu        sync.Mutex
	state     State
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewCollections creates a component in the idle state. m may be nil.
func NewCollections(fetcher CollectionsFetcher, logger *zap.Logger, m *metrics.Metrics) *Collections {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Collections{
		ID:      id,
		fetcher: fetcher,
		logger:  logger.With(zap.String("component", "collections"), zap.String("mount_id", id)),
		metrics: m,
		state:   State{Collections: []string{}},
		done:    make(chan struct{}),
	}
}

// Mount enters loading and starts the fetch. Only the first call has an effect.
func (c *Collections) Mount(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted || c.unmounted {
		return
	}
	c.mounted = true
	c.state = State{Loading: true, Collections: []string{}}

	ctx, c.cancel = context.WithCancel(ctx)
	c.metrics.Mounted()
	c.logger.Debug("starting to fetch collections")
	go c.fetch(ctx)
}

func (c *Collections) fetch(ctx context.Context) {
	defer close(c.done)

	envelope, err := c.fetcher.GetAllCollections(ctx)
	next := settle(envelope, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unmounted || ctx.Err() != nil {
		c.logger.Debug("discarding collections result after unmount", zap.String("phase", string(next.Phase())))
		return
	}
	c.state = next
	if next.Phase() == PhaseError {
		c.logger.Warn("collections failed to load", zap.String("error", next.Error))
	} else {
		c.logger.Debug("received collections", zap.Int("count", len(next.Collections)))
	}
}

// settle turns a service result into the final state. Any failure is total: no partial list.
func settle(envelope *model.CollectionsEnvelope, err error) State {
	if err == nil {
		var names []string
		names, err = envelope.Names()
		if err == nil {
			return State{Collections: names, settled: true}
		}
	}
	return State{Error: displayMessage(err), Collections: []string{}, settled: true}
}

// displayMessage picks the text shown in the error state
func displayMessage(err error) string {
	var e *service.Error
	msg := err.Error()
	switch {
	case errors.Is(err, model.ErrInvalidCollections):
		msg = InvalidResponseMessage
	case errors.As(err, &e):
		msg = e.Message
	}
	if msg == "" {
		msg = service.FallbackMessage
	}
	return msg
}

// Wait blocks until the fetch has finished, the component is unmounted or ctx is done
func (c *Collections) Wait(ctx context.Context) error {
	c.mu.Lock()
	mounted := c.mounted
	c.mu.Unlock()
	if !mounted {
		return ErrNotMounted
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unmount ends the fetch scope and returns once the fetch goroutine has exited
func (c *Collections) Unmount() {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	c.unmounted = true
	mounted := c.mounted
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	if mounted {
		<-c.done
		c.metrics.Unmounted()
	}
}

// State returns a copy of the current state
func (c *Collections) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Load mounts a component for the lifetime of ctx, waits for it to settle and unmounts it
func Load(ctx context.Context, fetcher CollectionsFetcher, logger *zap.Logger, m *metrics.Metrics) (State, error) {
	c := NewCollections(fetcher, logger, m)
	c.Mount(ctx)
	defer c.Unmount()
	if err := c.Wait(ctx); err != nil {
		return c.State(), err
	}
	state := c.State()
	if state.Phase() == PhaseLoading {
		// the scope ended before the result arrived
		return state, context.Cause(ctx)
	}
	return state, nil
}
