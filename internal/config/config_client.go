package config

import (
	"fmt"
	"time"
)

// Client defaults for fields no source sets.
const (
	DefaultClientAddress        = "http://localhost:8080"
	DefaultClientRequestTimeout = 30 * time.Second
	DefaultClientPageSize       = 100
	DefaultClientDSN            = "notes.db"
	DefaultSyncInterval         = 10 * time.Second
	DefaultDebounceDelay        = 2 * time.Second
)

type ClientApp struct {
	// HashKey signs request bodies; empty disables signing.
	HashKey string
}

// ClientConfig is the part of [StructuredConfig] the sync client reads.
// Storage.DB.DSN is the SQLite file of the local note store.
type ClientConfig struct {
	App     ClientApp
	Adapter Adapter
	Storage Storage
	Workers Workers
	Log     Log
}

// GetClientConfig reads the environment, then the JSON file at jsonPath
// (or $CONFIG when jsonPath is empty). The client takes no flags of its
// own here: cobra owns the command line.
func GetClientConfig(jsonPath string) (*ClientConfig, error) {
	b := newConfigBuilder().
		withEnv().
		withJSONPath(jsonPath).
		withJSON()
	if b.err != nil {
		return nil, fmt.Errorf("error get structured config: %w", b.err)
	}

	merged, err := b.merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	cfg := &ClientConfig{
		App:     ClientApp{HashKey: merged.App.HashKey},
		Adapter: merged.Adapter,
		Storage: merged.Storage,
		Workers: merged.Workers,
		Log:     merged.Log,
	}
	cfg.applyDefaults()

	return cfg, cfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	setDefault(&cfg.Adapter.HTTPAddress, DefaultClientAddress)
	setDefault(&cfg.Adapter.RequestTimeout, DefaultClientRequestTimeout)
	setDefault(&cfg.Adapter.PageSize, DefaultClientPageSize)
	setDefault(&cfg.Storage.DB.DSN, DefaultClientDSN)
	setDefault(&cfg.Workers.SyncInterval, DefaultSyncInterval)
	setDefault(&cfg.Workers.DebounceDelay, DefaultDebounceDelay)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
