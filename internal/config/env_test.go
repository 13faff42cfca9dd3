// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv unsets every variable StructuredConfig reads and then applies
// vars. t.Setenv restores the previous environment on cleanup.
func isolateEnv(t *testing.T, vars map[string]string) {
	t.Helper()

	params, err := env.GetFieldParams(&StructuredConfig{})
	require.NoError(t, err)
	for _, p := range params {
		t.Setenv(p.Key, "")
		require.NoError(t, os.Unsetenv(p.Key))
	}

	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv(t *testing.T) {
	isolateEnv(t, map[string]string{
		"CONFIG":                  "/etc/six-notes.json",
		"APP_TOKEN_SIGN_KEY":      "sign",
		"APP_TOKEN_ISSUER":        "six-notes",
		"APP_TOKEN_DURATION":      "2h",
		"APP_HASH_KEY":            "hmac",
		"APP_MAX_CONTENT_BYTES":   "65536",
		"APP_VERSION":             "0.3.0",
		"SERVER_ADDRESS":          ":8080",
		"SERVER_GRPC_ADDRESS":     ":9090",
		"SERVER_REQUEST_TIMEOUT":  "30s",
		"ADAPTER_ADDRESS":         "http://notes.local",
		"ADAPTER_REQUEST_TIMEOUT": "15s",
		"ADAPTER_PAGE_SIZE":       "40",
		"WORKERS_SYNC_INTERVAL":   "10s",
		"WORKERS_DEBOUNCE_DELAY":  "2s",
		"LOG_FILE":                "/tmp/six-notes.log",
		"STORAGE_DB_DATABASE_URI": "postgres://notes@db/notes",
	})

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, StructuredConfig{
		App: App{
			TokenSignKey:    "sign",
			TokenIssuer:     "six-notes",
			TokenDuration:   2 * time.Hour,
			HashKey:         "hmac",
			MaxContentBytes: 65536,
			Version:         "0.3.0",
		},
		Storage:      Storage{DB: DB{DSN: "postgres://notes@db/notes"}},
		Server:       Server{HTTPAddress: ":8080", GRPCAddress: ":9090", RequestTimeout: 30 * time.Second},
		Adapter:      Adapter{HTTPAddress: "http://notes.local", RequestTimeout: 15 * time.Second, PageSize: 40},
		Workers:      Workers{SyncInterval: 10 * time.Second, DebounceDelay: 2 * time.Second},
		Log:          Log{File: "/tmp/six-notes.log"},
		JSONFilePath: "/etc/six-notes.json",
	}, cfg)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	isolateEnv(t, nil)

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))
	assert.Equal(t, StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"WORKERS_DEBOUNCE_DELAY": "2 seconds",
		"ADAPTER_PAGE_SIZE":      "many",
		"APP_MAX_CONTENT_BYTES":  "1e3",
	} {
		t.Run(key, func(t *testing.T) {
			isolateEnv(t, map[string]string{key: value})

			var cfg StructuredConfig
			assert.Error(t, parseEnv(&cfg))
		})
	}
}
