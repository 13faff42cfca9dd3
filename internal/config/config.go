// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the merged view of every configuration source. The
// server uses all of it; the client reads the Adapter, Workers, Log,
// Storage and App.HashKey parts through [GetClientConfig].
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Workers Workers `envPrefix:"WORKERS_"`
	Log     Log     `envPrefix:"LOG_"`

	// JSONFilePath points at an optional JSON file merged last.
	JSONFilePath string `env:"CONFIG"`
}

type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB.DSN is a PostgreSQL URL on the server and an SQLite file path on the
// client.
type DB struct {
	DSN string `env:"DATABASE_URI"`
}

type App struct {
	TokenSignKey  string        `env:"TOKEN_SIGN_KEY"`
	TokenIssuer   string        `env:"TOKEN_ISSUER"`
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey signs request and response bodies (HashSHA256 header).
	// Empty turns signing off on both sides.
	HashKey string `env:"HASH_KEY"`

	// MaxContentBytes caps a single record's content. Zero means no cap.
	MaxContentBytes int `env:"MAX_CONTENT_BYTES"`

	Version string `env:"VERSION"`
}

type Server struct {
	HTTPAddress    string        `env:"ADDRESS"`
	GRPCAddress    string        `env:"GRPC_ADDRESS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter is the client's connection to the record server.
type Adapter struct {
	HTTPAddress    string        `env:"ADDRESS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	PageSize       int           `env:"PAGE_SIZE"`
}

// Workers controls the client sync scheduler.
type Workers struct {
	SyncInterval  time.Duration `env:"SYNC_INTERVAL"`
	DebounceDelay time.Duration `env:"DEBOUNCE_DELAY"`
}

type Log struct {
	// File is only used by the client; the server logs to stdout.
	File string `env:"FILE"`
}

// GetStructuredConfig builds the server config: environment first, then
// command-line flags, then the JSON file named by either of them. A later
// source overrides non-zero fields of the earlier ones.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
