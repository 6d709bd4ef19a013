// Package analytics sends page-view events to PostHog.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/consent"
	"github.com/posthog/posthog-go"
)

// ErrNotInitialised is returned by Capture before Init.
var ErrNotInitialised = errors.New("analytics: session not initialised")

// Event is one capture.
type Event struct {
	Event      string
	DistinctID string
	Properties map[string]any
	Timestamp  time.Time
}

// Client delivers captures through the PostHog SDK. Without an API key it
// accepts and drops every event.
type Client struct {
	cfg    Config
	logger *slog.Logger
	sdk    posthog.Client

	closeOnce sync.Once
	closeErr  error
}

// Option customises a Client.
type Option func(*Client)

// WithLogger sets the delivery logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a client for cfg. Close flushes buffered events.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{cfg: cfg, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	if !cfg.Enabled() {
		return c, nil
	}
	sdk, err := posthog.NewWithConfig(c.APIKey(), posthog.Config{
		Endpoint:  cfg.endpoint(),
		Interval:  cfg.interval(),
		BatchSize: cfg.batchSize(),
		Transport: newBestEffortTransport(c.logger),
		Logger:    sdkLogger{logger: c.logger},
	})
	if err != nil {
		return nil, fmt.Errorf("init posthog client: %w", err)
	}
	c.sdk = sdk
	return c, nil
}

// APIKey returns the configured key.
func (c *Client) APIKey() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.cfg.APIKey)
}

// Enqueue hands ev to the SDK for batched delivery.
func (c *Client) Enqueue(ev Event) error {
	if c == nil || c.sdk == nil {
		return nil
	}
	return c.sdk.Enqueue(posthog.Capture{
		DistinctId: ev.DistinctID,
		Event:      ev.Event,
		Properties: posthog.Properties(ev.Properties),
		Timestamp:  ev.Timestamp,
	})
}

// Close flushes buffered events and stops delivery. It is safe to call more
// than once.
func (c *Client) Close() error {
	if c == nil || c.sdk == nil {
		return nil
	}
	c.closeOnce.Do(func() {
		c.closeErr = c.sdk.Close()
	})
	return c.closeErr
}

// Session returns a tracker bound to one visitor.
func (c *Client) Session(distinctID string) *Session {
	return &Session{client: c, distinctID: distinctID}
}

// Session implements consent.Tracker for one visitor.
type Session struct {
	client     *Client
	distinctID string

	mu          sync.Mutex
	initialised bool
	optedIn     bool
}

var _ consent.Tracker = (*Session)(nil)

// Init validates the session configuration.
func (s *Session) Init(context.Context) error {
	if s.client == nil || s.client.APIKey() == "" {
		return errors.New("analytics: api key is required")
	}
	if strings.TrimSpace(s.distinctID) == "" {
		return errors.New("analytics: distinct id is required")
	}
	s.mu.Lock()
	s.initialised = true
	s.mu.Unlock()
	return nil
}

// OptIn resumes capture.
func (s *Session) OptIn() {
	s.mu.Lock()
	s.optedIn = true
	s.mu.Unlock()
}

// OptOut suspends capture.
func (s *Session) OptOut() {
	s.mu.Lock()
	s.optedIn = false
	s.mu.Unlock()
}

// OptedIn reports whether capture is active.
func (s *Session) OptedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optedIn
}

// Capture enqueues event. Events are dropped silently while opted out.
func (s *Session) Capture(_ context.Context, event string, properties map[string]any) error {
	s.mu.Lock()
	initialised, optedIn := s.initialised, s.optedIn
	s.mu.Unlock()
	if !initialised {
		return ErrNotInitialised
	}
	if !optedIn {
		return nil
	}
	return s.client.Enqueue(Event{Event: event, DistinctID: s.distinctID, Properties: properties})
}
