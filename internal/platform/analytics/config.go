package analytics

import (
	"strings"
	"time"
)

// DefaultHost is the PostHog endpoint used when none is configured.
const DefaultHost = "https://us.i.posthog.com"

const (
	defaultBatchSize = 50
	defaultInterval  = 5 * time.Second
)

// Config configures the capture client.
type Config struct {
	APIKey string `env:"STORYFRONT_POSTHOG_KEY"`
	Host   string `env:"STORYFRONT_POSTHOG_HOST" envDefault:"https://us.i.posthog.com"`
	// BatchSize is the number of events sent per request.
	BatchSize int `env:"STORYFRONT_POSTHOG_BATCH_SIZE" envDefault:"50"`
	// Interval is the longest an event waits in a partial batch.
	Interval time.Duration `env:"STORYFRONT_POSTHOG_INTERVAL" envDefault:"5s"`
}

// Enabled reports whether a key is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c Config) endpoint() string {
	host := strings.TrimRight(strings.TrimSpace(c.Host), "/")
	if host == "" {
		return DefaultHost
	}
	return host
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return defaultBatchSize
	}
	return c.BatchSize
}

func (c Config) interval() time.Duration {
	if c.Interval <= 0 {
		return defaultInterval
	}
	return c.Interval
}
