package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects config layers in priority order. Loading errors
// are joined and reported by build, so one run shows every broken source.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{configs: make([]*StructuredConfig, 0, 4)}
}

func (b *configBuilder) add(layer *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, layer)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	layer := new(StructuredConfig)
	return b.add(layer, parseEnv(layer))
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	return b.add(ParseFlags(args))
}

// withJSONPath adds an explicit JSON path (the client's --config flag).
func (b *configBuilder) withJSONPath(path string) *configBuilder {
	if path == "" {
		return b
	}
	return b.add(&StructuredConfig{JSONFilePath: path}, nil)
}

// withJSON loads the file named by the last layer that sets JSONFilePath.
func (b *configBuilder) withJSON() *configBuilder {
	var path string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			path = cfg.JSONFilePath
		}
	}
	if path == "" {
		return b
	}
	return b.add(parseJSON(path))
}

// merge folds the layers into one config; a later layer overrides the
// non-zero fields of earlier ones.
func (b *configBuilder) merge() (*StructuredConfig, error) {
	merged := new(StructuredConfig)
	for _, layer := range b.configs {
		if err := mergo.Merge(merged, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	return merged, nil
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	cfg, err := b.merge()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}
