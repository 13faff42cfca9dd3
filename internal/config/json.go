package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Duration reads either a Go duration string ("30s", "1h") or an integer
// number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if s, err := strconv.Unquote(string(b)); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}

	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a string or an integer: %s", b)
	}
	*d = Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

type jsonApp struct {
	TokenSignKey    string   `json:"token_sign_key"`
	TokenIssuer     string   `json:"token_issuer"`
	TokenDuration   Duration `json:"token_duration"`
	HashKey         string   `json:"hash_key"`
	MaxContentBytes int      `json:"max_content_bytes"`
	Version         string   `json:"version"`
}

type jsonServer struct {
	HTTPAddress    string   `json:"http_address"`
	GRPCAddress    string   `json:"grpc_address"`
	RequestTimeout Duration `json:"request_timeout"`
}

type jsonAdapter struct {
	HTTPAddress    string   `json:"http_address"`
	RequestTimeout Duration `json:"request_timeout"`
	PageSize       int      `json:"page_size"`
}

type jsonWorkers struct {
	SyncInterval  Duration `json:"sync_interval"`
	DebounceDelay Duration `json:"debounce_delay"`
}

// jsonConfig is the on-disk layout of the JSON config file. Both the server
// and the client read the same file; each ignores the sections it has no
// use for.
type jsonConfig struct {
	App     jsonApp     `json:"app"`
	Server  jsonServer  `json:"server"`
	Adapter jsonAdapter `json:"adapter"`
	Workers jsonWorkers `json:"workers"`
	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`
	Log struct {
		File string `json:"file"`
	} `json:"log"`
}

func (j *jsonConfig) structured() *StructuredConfig {
	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:    j.App.TokenSignKey,
			TokenIssuer:     j.App.TokenIssuer,
			TokenDuration:   time.Duration(j.App.TokenDuration),
			HashKey:         j.App.HashKey,
			MaxContentBytes: j.App.MaxContentBytes,
			Version:         j.App.Version,
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
			PageSize:       j.Adapter.PageSize,
		},
		Workers: Workers{
			SyncInterval:  time.Duration(j.Workers.SyncInterval),
			DebounceDelay: time.Duration(j.Workers.DebounceDelay),
		},
	}
	cfg.Storage.DB.DSN = j.Storage.DB.DSN
	cfg.Log.File = j.Log.File
	return cfg
}

func parseJSON(path string) (*StructuredConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	var file jsonConfig
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("error decoding json config %s: %w", path, err)
	}

	return file.structured(), nil
}
