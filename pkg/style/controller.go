package style

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/observability"
)

// State is the controller's position in its Idle → Applying → Idle cycle.
type State int32

const (
	Idle State = iota
	Applying
)

func (s State) String() string {
	if s == Applying {
		return "applying"
	}
	return "idle"
}

// Selection is one color-selection event.
type Selection struct {
	Color Color
	reply chan result
}

type result struct {
	patch Patch
	err   error
}

// Controller serializes color selections and emits one patch per selection.
//
// Run must be the only consumer of the selection channel. Current, State and
// Color may be called from any goroutine.
type Controller struct {
	inbox  chan Selection
	logger *log.Logger

	color   atomic.Int32
	state   atomic.Int32
	running atomic.Bool

	mu    sync.RWMutex
	next  int
	sinks map[int]Sink
}

// NewController returns a controller whose style state starts at initial.
// A nil logger uses [log.Default].
func NewController(initial Color, logger *log.Logger) *Controller {
	if !initial.Valid() {
		panic(fmt.Sprintf("style: invalid initial color %d", int(initial)))
	}
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		inbox:  make(chan Selection),
		logger: logger,
		sinks:  make(map[int]Sink),
	}
	c.color.Store(int32(initial))
	return c
}

// Inbox returns the channel Publish and Select write to. Pass it to Run.
func (c *Controller) Inbox() <-chan Selection { return c.inbox }

// Subscribe registers s for every subsequent patch and returns a function
// that removes it.
func (c *Controller) Subscribe(s Sink) (unsubscribe func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.sinks[id] = s
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.sinks, id)
		c.mu.Unlock()
	}
}

// Color returns the selected color.
func (c *Controller) Color() Color { return Color(c.color.Load()) }

// Current returns the patch for the selected color.
func (c *Controller) Current() Patch { return PatchFor(c.Color()) }

// State reports whether a patch is being applied.
func (c *Controller) State() State { return State(c.state.Load()) }

// Publish queues a selection without waiting for its patch. It blocks until
// the loop accepts the event or ctx is done.
func (c *Controller) Publish(ctx context.Context, color Color) error {
	return c.send(ctx, Selection{Color: color})
}

// Select publishes a selection and waits for the resulting patch.
func (c *Controller) Select(ctx context.Context, color Color) (Patch, error) {
	reply := make(chan result, 1)
	if err := c.send(ctx, Selection{Color: color, reply: reply}); err != nil {
		return Patch{}, err
	}
	select {
	case r := <-reply:
		return r.patch, r.err
	case <-ctx.Done():
		return Patch{}, ctx.Err()
	}
}

func (c *Controller) send(ctx context.Context, sel Selection) error {
	if !sel.Color.Valid() {
		panic(fmt.Sprintf("style: selection outside enumeration: %d", int(sel.Color)))
	}
	select {
	case c.inbox <- sel:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run consumes events until ctx is done or the channel is closed, handling
// each selection to completion before receiving the next. A failed emit stops
// the loop and is returned. Run returns nil on cancellation.
func (c *Controller) Run(ctx context.Context, events <-chan Selection) error {
	if !c.running.CompareAndSwap(false, true) {
		return errors.New(errors.ErrCodeInternal, "style controller already running")
	}
	defer c.running.Store(false)

	c.logger.Debug("style controller started", "color", c.Color())
	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("style controller stopped")
			return nil
		case sel, ok := <-events:
			if !ok {
				return nil
			}
			p, err := c.apply(ctx, sel.Color)
			if sel.reply != nil {
				sel.reply <- result{patch: p, err: err}
			}
			if err != nil {
				return err
			}
		}
	}
}

func (c *Controller) apply(ctx context.Context, color Color) (Patch, error) {
	start := time.Now()
	hooks := observability.Style()
	hooks.OnSelect(ctx, color.String())

	c.state.Store(int32(Applying))
	defer c.state.Store(int32(Idle))

	p := PatchFor(color)

	c.mu.RLock()
	sinks := make([]Sink, 0, len(c.sinks))
	for _, s := range c.sinks {
		sinks = append(sinks, s)
	}
	c.mu.RUnlock()

	for _, s := range sinks {
		if err := s.Emit(ctx, p); err != nil {
			hooks.OnEmitError(ctx, err)
			return p, errors.Wrap(errors.ErrCodeUnavailable, err, "deliver %s patch", color)
		}
	}

	// Only a patch every surface accepted becomes the current color.
	c.color.Store(int32(color))
	hooks.OnPatch(ctx, color.String(), time.Since(start))
	c.logger.Debug("style applied", "color", color, "code", p.Nodes.Color, "sinks", len(sinks))
	return p, nil
}
