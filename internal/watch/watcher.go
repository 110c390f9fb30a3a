// Package watch polls a job and re-derives its step statuses whenever
// the backend reports new data. The status engine itself never runs on
// a schedule; this package is the calling layer that decides when a
// fresh snapshot is needed.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/grandcanyonsmith/leadmagnet/internal/app"
)

// State represents the watcher's current state.
type State string

const (
	// StateStopped indicates the watcher is not running.
	StateStopped State = "stopped"
	// StateStarting indicates the watcher is initializing.
	StateStarting State = "starting"
	// StateWatching indicates the watcher is waiting for the next poll.
	StateWatching State = "watching"
	// StateRefreshing indicates a refresh is in flight.
	StateRefreshing State = "refreshing"
	// StateStopping indicates the watcher is shutting down.
	StateStopping State = "stopping"
	// StateError indicates the last refresh failed.
	StateError State = "error"
)

// Event types for the watcher state machine.
const (
	EventStart           = "START"
	EventStarted         = "STARTED"
	EventTick            = "TICK"
	EventRefreshComplete = "REFRESH_COMPLETE"
	EventError           = "ERROR"
	EventStop            = "STOP"
	EventRecover         = "RECOVER"
)

// Config configures a Watcher.
type Config struct {
	// TenantID and JobID identify the watched job.
	TenantID string
	JobID    string
	// Interval between refreshes.
	Interval time.Duration
}

// Context holds the runtime context for the watcher state machine.
type Context struct {
	Config Config

	StartedAt     time.Time
	LastRefreshAt time.Time
	RefreshCount  int
	ErrorCount    int
	LastError     error

	// LastReport is the most recent derived view of the job.
	LastReport *app.Report
}

// RuntimeContext wraps Context with thread-safe access.
type RuntimeContext struct {
	mu  sync.RWMutex
	ctx Context
}

// NewRuntimeContext creates a runtime context for the given config.
func NewRuntimeContext(cfg Config) *RuntimeContext {
	return &RuntimeContext{ctx: Context{Config: cfg}}
}

// RecordStart records the watcher start time.
func (c *RuntimeContext) RecordStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx.StartedAt = time.Now()
}

// RecordRefresh records a completed refresh.
func (c *RuntimeContext) RecordRefresh(report app.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx.LastRefreshAt = time.Now()
	c.ctx.RefreshCount++
	c.ctx.LastReport = &report
}

// RecordError records a failed refresh.
func (c *RuntimeContext) RecordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx.ErrorCount++
	c.ctx.LastError = err
}

// GetContext returns a copy of the current context.
func (c *RuntimeContext) GetContext() Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ctx
}

// LastReport returns the most recent report, if any refresh succeeded.
func (c *RuntimeContext) LastReport() (app.Report, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ctx.LastReport == nil {
		return app.Report{}, false
	}
	return *c.ctx.LastReport, true
}

// Watcher polls one job and notifies when its derived statuses change.
type Watcher struct {
	interp  *statekit.Interpreter[Context]
	runtime *RuntimeContext

	onRefresh func(ctx context.Context) (app.Report, error)
	onUpdate  func(prev, next app.Report)

	stopCh    chan struct{}
	stoppedCh chan struct{}
	mu        sync.RWMutex
}

// NewWatcher creates a watcher for the job named in cfg.
func NewWatcher(cfg Config) (*Watcher, error) {
	if cfg.JobID == "" {
		return nil, fmt.Errorf("job ID is required")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}

	return &Watcher{
		runtime:   NewRuntimeContext(cfg),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

// buildWatcherMachine constructs the watcher state machine.
// The runtime pointer is captured by closures so actions modify the
// original context.
func buildWatcherMachine(runtime *RuntimeContext) (*statekit.Interpreter[Context], error) {
	machine, err := statekit.NewMachine[Context]("leadmagnet-watcher").
		WithInitial("stopped").
		WithContext(runtime.GetContext()).
		WithAction("recordStart", func(_ *Context, _ statekit.Event) {
			runtime.RecordStart()
		}).
		WithAction("recordError", func(_ *Context, event statekit.Event) {
			if payload, ok := event.Payload.(map[string]interface{}); ok {
				if err, ok := payload["error"].(error); ok {
					runtime.RecordError(err)
				}
			}
		}).
		State("stopped").
		On(EventStart).Target("starting").Done().
		State("starting").
		OnEntry("recordStart").
		On(EventStarted).Target("watching").
		On(EventError).Target("error").Done().
		State("watching").
		On(EventTick).Target("refreshing").
		On(EventStop).Target("stopping").
		On(EventError).Target("error").Done().
		State("refreshing").
		On(EventRefreshComplete).Target("watching").
		On(EventStop).Target("stopping").
		On(EventError).Target("error").Done().
		State("stopping").
		After(100 * time.Millisecond).Target("stopped").Done().
		State("error").
		OnEntry("recordError").
		On(EventRecover).Target("watching").
		On(EventStop).Target("stopped").Done().
		Build()

	if err != nil {
		return nil, err
	}

	return statekit.NewInterpreter(machine), nil
}

// SetRefreshHandler sets the function called on every poll tick. It
// normally wraps app.StatusService.JobReport.
func (w *Watcher) SetRefreshHandler(fn func(ctx context.Context) (app.Report, error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRefresh = fn
}

// SetUpdateHandler sets the callback invoked when a refresh produces
// different step statuses than the previous one.
func (w *Watcher) SetUpdateHandler(fn func(prev, next app.Report)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUpdate = fn
}

// Start starts the watcher.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	interp, err := buildWatcherMachine(w.runtime)
	if err != nil {
		return fmt.Errorf("failed to build state machine: %w", err)
	}
	w.interp = interp

	w.stopCh = make(chan struct{})
	w.stoppedCh = make(chan struct{})

	w.interp.Start()
	w.interp.Send(statekit.Event{Type: EventStart})

	time.AfterFunc(50*time.Millisecond, func() {
		w.mu.RLock()
		interp := w.interp
		w.mu.RUnlock()
		if interp != nil {
			interp.Send(statekit.Event{Type: EventStarted})
		}
	})

	go w.runScheduler(ctx)

	return nil
}

// Stop stops the watcher gracefully.
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	interp := w.interp
	stopCh := w.stopCh
	stoppedCh := w.stoppedCh

	if interp == nil {
		w.mu.Unlock()
		return nil
	}

	select {
	case <-stopCh:
		// Already closed
	default:
		close(stopCh)
	}
	w.mu.Unlock()

	interp.Send(statekit.Event{Type: EventStop})

	select {
	case <-stoppedCh:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	interp.Stop()
	w.interp = nil
	w.mu.Unlock()

	return nil
}

// State returns the current state.
func (w *Watcher) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.interp == nil {
		return StateStopped
	}
	return State(w.interp.State().Value)
}

// Runtime returns the runtime context.
func (w *Watcher) Runtime() *RuntimeContext {
	return w.runtime
}

// runScheduler runs the poll loop.
func (w *Watcher) runScheduler(ctx context.Context) {
	defer close(w.stoppedCh)

	// Let the machine settle into watching before the first poll.
	select {
	case <-time.After(200 * time.Millisecond):
	case <-ctx.Done():
		return
	case <-w.stopCh:
		return
	}

	interval := w.runtime.GetContext().Config.Interval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.triggerRefresh(ctx)
		}
	}
}

// triggerRefresh performs one poll cycle.
func (w *Watcher) triggerRefresh(ctx context.Context) {
	if w.State() != StateWatching {
		return
	}

	w.interp.Send(statekit.Event{Type: EventTick})

	w.mu.RLock()
	refresh := w.onRefresh
	update := w.onUpdate
	w.mu.RUnlock()

	if refresh == nil {
		w.interp.Send(statekit.Event{Type: EventRefreshComplete})
		return
	}

	report, err := refresh(ctx)
	if err != nil {
		w.interp.Send(statekit.Event{
			Type:    EventError,
			Payload: map[string]interface{}{"error": err},
		})
		return
	}

	prev, hadPrev := w.runtime.LastReport()
	w.runtime.RecordRefresh(report)

	if update != nil && (!hadPrev || statusesChanged(prev, report)) {
		update(prev, report)
	}

	w.interp.Send(statekit.Event{Type: EventRefreshComplete})
}

// Recover attempts to resume watching after a failed refresh.
func (w *Watcher) Recover() {
	w.mu.RLock()
	interp := w.interp
	w.mu.RUnlock()

	if interp != nil {
		interp.Send(statekit.Event{Type: EventRecover})
	}
}

// statusesChanged reports whether any step's derived status differs
// between two reports, or the job's own status moved.
func statusesChanged(prev, next app.Report) bool {
	if prev.Job.Status != next.Job.Status {
		return true
	}
	if len(prev.Statuses) != len(next.Statuses) {
		return true
	}
	for order, st := range next.Statuses {
		if prev.Statuses[order] != st {
			return true
		}
	}
	return false
}
