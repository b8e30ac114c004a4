// Package telemetry bootstraps the product analytics client once per
// process. Analytics only start in interactive production runs that have an
// analytics key; every other run gets a no-op client, permanently.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/posthog/posthog-go"
	"go.uber.org/zap"

	"read-frame/pkg/logging"
)

// Client records analytics events.
type Client interface {
	Capture(event string, props map[string]any) error
	Close() error
}

// Noop is the client used when analytics are disabled.
type Noop struct{}

func (Noop) Capture(string, map[string]any) error { return nil }
func (Noop) Close() error                         { return nil }

// Config holds the three gating conditions plus connection details.
type Config struct {
	// Interactive is true when the process drives a display.
	Interactive bool
	// Production is true for production builds.
	Production bool
	Key        string
	Host       string
	DistinctID string
}

// ConfigFromEnv reads READER_ENV, POSTHOG_KEY and POSTHOG_HOST.
func ConfigFromEnv(interactive bool) Config {
	return Config{
		Interactive: interactive,
		Production:  os.Getenv("READER_ENV") == "production",
		Key:         os.Getenv("POSTHOG_KEY"),
		Host:        os.Getenv("POSTHOG_HOST"),
	}
}

// Enabled reports whether all gating conditions hold.
func (c Config) Enabled() bool {
	return c.Interactive && c.Production && c.Key != ""
}

var newClient = func(cfg Config) (Client, error) {
	c, err := posthog.NewWithConfig(cfg.Key, posthog.Config{Endpoint: cfg.Host})
	if err != nil {
		return nil, fmt.Errorf("create posthog client: %w", err)
	}
	return &posthogClient{client: c, distinctID: cfg.DistinctID}, nil
}

// Init makes exactly one initialization attempt. It returns a no-op client
// and false when any gate is closed or the client cannot be created.
func Init(cfg Config) (Client, bool) {
	if !cfg.Enabled() {
		logging.Logger().Debug("analytics disabled",
			zap.Bool("interactive", cfg.Interactive),
			zap.Bool("production", cfg.Production),
			zap.Bool("has_key", cfg.Key != ""))
		return Noop{}, false
	}

	c, err := newClient(cfg)
	if err != nil {
		logging.Logger().Warn("analytics init failed", zap.Error(err))
		return Noop{}, false
	}
	logging.Logger().Info("analytics enabled", zap.String("host", cfg.Host))
	return c, true
}

var (
	bootstrapOnce sync.Once
	defaultClient Client = Noop{}
)

// Bootstrap initializes the process-wide client on its first call. Later
// calls ignore cfg and return the same client.
func Bootstrap(cfg Config) Client {
	bootstrapOnce.Do(func() {
		defaultClient, _ = Init(cfg)
	})
	return defaultClient
}

// Default returns the process-wide client, a no-op until Bootstrap ran.
func Default() Client {
	return defaultClient
}

type ctxKey struct{}

// WithClient returns a context carrying c for descendant components.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the client carried by ctx, or a no-op client.
func FromContext(ctx context.Context) Client {
	if c, ok := ctx.Value(ctxKey{}).(Client); ok && c != nil {
		return c
	}
	return Noop{}
}

type posthogClient struct {
	client     posthog.Client
	distinctID string
}

func (p *posthogClient) Capture(event string, props map[string]any) error {
	properties := posthog.NewProperties()
	for k, v := range props {
		properties.Set(k, v)
	}
	// Always create person profiles.
	properties.Set("$process_person_profile", true)

	return p.client.Enqueue(posthog.Capture{
		DistinctId: p.distinctID,
		Event:      event,
		Properties: properties,
	})
}

func (p *posthogClient) Close() error {
	return p.client.Close()
}
