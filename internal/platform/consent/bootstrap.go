package consent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/kvstore"
	"github.com/louisbranch/storyfront/internal/platform/timeouts"
)

const (
	// PageViewEvent is the capture event emitted on navigation.
	PageViewEvent = "$pageview"
	// CurrentURLProperty carries the full URL of a page view.
	CurrentURLProperty = "$current_url"
)

// Tracker is the telemetry library driven by the bootstrap. Capture calls
// while opted out are expected to be dropped by the implementation.
type Tracker interface {
	Init(ctx context.Context) error
	OptIn()
	OptOut()
	Capture(ctx context.Context, event string, properties map[string]any) error
}

// Propagator forwards a consent decision to an external tag.
type Propagator func(ctx context.Context, signal Signal)

// State is a snapshot of the bootstrap.
type State struct {
	Choice    Choice
	Enabled   bool
	Capturing bool
}

// Config wires a Bootstrap to its collaborators.
type Config struct {
	// APIKey is the public telemetry key. Empty disables telemetry.
	APIKey    string
	Store     kvstore.Store
	Tracker   Tracker
	Propagate Propagator
	// OnChange observes state changes caused by decisions or by storage
	// changes from other views.
	OnChange func(State)
	// OnPrompt fires once, PromptDelay after Start, when no choice exists.
	OnPrompt    func()
	PromptDelay time.Duration
	// Development enables diagnostics for missing configuration.
	Development bool
	Logger      *slog.Logger
}

// Bootstrap is the consent state machine for one open view.
type Bootstrap struct {
	cfg    Config
	logger *slog.Logger

	mu          sync.Mutex
	started     bool
	stopped     bool
	enabled     bool
	capturing   bool
	choice      Choice
	changes     int
	unsubscribe func()
	promptTimer *time.Timer
}

// New returns an unstarted bootstrap.
func New(cfg Config) *Bootstrap {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.PromptDelay <= 0 {
		cfg.PromptDelay = timeouts.ConsentPrompt
	}
	return &Bootstrap{cfg: cfg, logger: logger}
}

// Start begins listening for changes made by other views, reads the
// persisted choice, and initialises telemetry when a key is configured. A
// change delivered while the choice is being read wins over the read value.
// An unset or rejected choice leaves capture suspended.
func (b *Bootstrap) Start(ctx context.Context) error {
	if b.cfg.Store == nil {
		return errors.New("consent store is required")
	}

	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return nil
	}
	b.started = true
	b.unsubscribe = b.cfg.Store.Subscribe(StorageKey, b.handleChange)
	seen := b.changes
	b.mu.Unlock()

	choice := b.readChoice(ctx)
	enabled := b.initTracker(ctx)

	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil
	}
	changed := b.changes != seen
	if !changed {
		b.choice = choice
	}
	b.enabled = enabled
	b.applyLocked(b.choice == Accepted)
	if b.choice == Unset && b.cfg.OnPrompt != nil {
		b.promptTimer = time.AfterFunc(b.cfg.PromptDelay, b.firePrompt)
	}
	state := b.stateLocked()
	b.mu.Unlock()

	if changed {
		b.notify(state)
	}
	return nil
}

// Stop removes the storage listener and cancels a pending prompt.
func (b *Bootstrap) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.stopped = true
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.cancelPromptLocked()
}

// Accept persists Accepted, enables capture and grants the external signal.
func (b *Bootstrap) Accept(ctx context.Context) error {
	return b.decide(ctx, Accepted)
}

// Reject persists Rejected, disables capture and denies the external signal.
func (b *Bootstrap) Reject(ctx context.Context) error {
	return b.decide(ctx, Rejected)
}

// Navigate captures a page view for url when capture is enabled.
func (b *Bootstrap) Navigate(ctx context.Context, url string) {
	b.mu.Lock()
	capture := b.enabled && b.capturing && !b.stopped
	b.mu.Unlock()
	if !capture {
		return
	}
	if err := b.cfg.Tracker.Capture(ctx, PageViewEvent, map[string]any{CurrentURLProperty: url}); err != nil {
		b.logger.Warn("capture page view", "error", err)
	}
}

// State returns a snapshot of the bootstrap.
func (b *Bootstrap) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// Choice returns the current choice.
func (b *Bootstrap) Choice() Choice {
	return b.State().Choice
}

// Capturing reports whether page views are currently captured.
func (b *Bootstrap) Capturing() bool {
	return b.State().Capturing
}

// ShouldPrompt reports whether the visitor still has to decide.
func (b *Bootstrap) ShouldPrompt() bool {
	return b.State().Choice == Unset
}

func (b *Bootstrap) decide(ctx context.Context, choice Choice) error {
	if b.cfg.Store == nil {
		return errors.New("consent store is required")
	}
	if err := b.cfg.Store.Set(ctx, StorageKey, string(choice)); err != nil {
		return fmt.Errorf("persist consent: %w", err)
	}

	b.mu.Lock()
	b.choice = choice
	b.cancelPromptLocked()
	b.applyLocked(choice == Accepted)
	state := b.stateLocked()
	b.mu.Unlock()

	if b.cfg.Propagate != nil {
		b.cfg.Propagate(ctx, SignalFor(choice))
	}
	b.notify(state)
	return nil
}

func (b *Bootstrap) handleChange(change kvstore.Change) {
	choice := Unset
	if change.Present {
		choice = ParseChoice(change.Value)
	}

	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.choice = choice
	b.changes++
	if choice != Unset {
		b.cancelPromptLocked()
	}
	b.applyLocked(choice == Accepted)
	state := b.stateLocked()
	b.mu.Unlock()

	b.notify(state)
}

func (b *Bootstrap) readChoice(ctx context.Context) Choice {
	value, ok, err := b.cfg.Store.Get(ctx, StorageKey)
	if err != nil {
		b.logger.Warn("read consent choice", "error", err)
		return Unset
	}
	if !ok {
		return Unset
	}
	return ParseChoice(value)
}

func (b *Bootstrap) initTracker(ctx context.Context) bool {
	if b.cfg.APIKey == "" || b.cfg.Tracker == nil {
		if b.cfg.Development {
			b.logger.Warn("analytics disabled: tracking key is not configured")
		}
		return false
	}
	if err := b.cfg.Tracker.Init(ctx); err != nil {
		b.logger.Warn("analytics disabled: init tracker", "error", err)
		return false
	}
	return true
}

// applyLocked moves the tracker to the requested capture state.
func (b *Bootstrap) applyLocked(optIn bool) {
	if !b.enabled {
		b.capturing = false
		return
	}
	if optIn {
		b.cfg.Tracker.OptIn()
	} else {
		b.cfg.Tracker.OptOut()
	}
	b.capturing = optIn
}

func (b *Bootstrap) stateLocked() State {
	return State{Choice: b.choice, Enabled: b.enabled, Capturing: b.capturing}
}

func (b *Bootstrap) cancelPromptLocked() {
	if b.promptTimer != nil {
		b.promptTimer.Stop()
		b.promptTimer = nil
	}
}

func (b *Bootstrap) firePrompt() {
	b.mu.Lock()
	fire := !b.stopped && b.choice == Unset && b.promptTimer != nil
	b.promptTimer = nil
	b.mu.Unlock()
	if fire {
		b.cfg.OnPrompt()
	}
}

func (b *Bootstrap) notify(state State) {
	if b.cfg.OnChange != nil {
		b.cfg.OnChange(state)
	}
}
