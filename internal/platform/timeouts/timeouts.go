// Package timeouts defines shared timeout constants used across the site.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// ContentQuery caps a single content-source lookup made while rendering a page.
const ContentQuery = 3 * time.Second

// AnalyticsCapture caps one outbound telemetry delivery.
const AnalyticsCapture = 2 * time.Second

// ConsentPrompt delays the first presentation of the consent prompt.
const ConsentPrompt = time.Second

// EventStreamHeartbeat is the keep-alive interval for server-sent event streams.
const EventStreamHeartbeat = 25 * time.Second
