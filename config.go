package versionary

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/versionary/model/uid"
	"gopkg.in/yaml.v3"
)

// Store kinds
const (
	StoreMemory = "memory"
	StoreFs     = "fs"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from YAML or JSON; DefaultConfig gives an in-memory store
// with monotonic identifiers and tracing off.
type Config struct {
	Store   StoreConfig   `json:"store" yaml:"store"`
	ID      IDConfig      `json:"id" yaml:"id"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
	Events  EventsConfig  `json:"events" yaml:"events"`
}

type StoreConfig struct {
	Kind    string `json:"kind" yaml:"kind"`
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

type IDConfig struct {
	// Kind is "monotonic" (default) or "random".
	Kind string `json:"kind" yaml:"kind"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	// OutputFile receives stdout exporter output; empty means os.Stdout.
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// EventsConfig enables the in-memory change feed. Once Buffer changes are
// pending, a writer waits after its change is committed until the feed is
// drained or its context is done; other writers are not held up.
type EventsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Buffer  int  `json:"buffer,omitempty" yaml:"buffer,omitempty"`
}

// DefaultConfig returns a Config populated with default values. Callers may
// modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{Kind: StoreMemory},
		ID:    IDConfig{Kind: uid.KindMonotonic.String()},
		Tracing: TracingConfig{
			ServiceName:    "versionary",
			ServiceVersion: "0.1.0",
		},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Store.Kind {
	case StoreMemory:
	case StoreFs:
		if c.Store.BaseURL == "" {
			return fmt.Errorf("store.baseURL is required for %v store", StoreFs)
		}
	default:
		return fmt.Errorf("unsupported store.kind: %v", c.Store.Kind)
	}
	if _, err := uid.KindOf(c.ID.Kind); err != nil {
		return fmt.Errorf("invalid id.kind: %w", err)
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("events.buffer must not be negative")
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName must not be empty")
	}
	return nil
}

// LoadConfig reads a YAML (or JSON) configuration from any afs URL. Unset
// fields keep their DefaultConfig values.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
