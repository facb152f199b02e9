// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset or
// names a missing file.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cfpredict/config.yaml",
	"/etc/cfpredict/config.yml",
}

// ConfigPathEnvVar names an explicit YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig is the bottom layer of every Load.
func defaultConfig() *Config {
	return &Config{
		Mode: ModeBatch,
		Data: DataConfig{
			TrainPath:  "./datafiles/train.csv",
			QueryPath:  "./datafiles/test.csv",
			OutputPath: "./datafiles/conclusion.csv",
			Header:     true,
			Precision:  6,
		},
		Predict: PredictConfig{
			ShortCircuit:    true,
			UndefinedPolicy: "nan",
			Workers:         0, // 0 = use runtime.NumCPU()
		},
		Cache: CacheConfig{
			Capacity: 10000,
			TTL:      10 * time.Minute,

			PersistPath:       "",
			PersistTTL:        24 * time.Hour,
			PersistGCInterval: 10 * time.Minute,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			Timeout:           30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load merges, lowest precedence first, the built-in defaults, the YAML
// file found by findConfigFile (if any) and the environment variables in
// envMappings, then validates the result.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is Load with an explicit YAML file, which must exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return load(path)
}

// layer is one koanf source in precedence order.
type layer struct {
	name     string
	provider koanf.Provider
	parser   koanf.Parser
}

func layers(configPath string) []layer {
	ls := []layer{{name: "defaults", provider: structs.Provider(defaultConfig(), "koanf")}}
	if configPath != "" {
		ls = append(ls, layer{name: "file " + configPath, provider: file.Provider(configPath), parser: yaml.Parser()})
	}
	return append(ls, layer{name: "environment", provider: env.Provider("", ".", envTransformFunc)})
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")
	for _, l := range layers(configPath) {
		if err := k.Load(l.provider, l.parser); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}

	if err := splitCommaLists(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// findConfigFile returns CONFIG_PATH if that file exists, else the first
// existing entry of DefaultConfigPaths, else "".
func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// listKeys hold []string values. YAML supplies real lists; the environment
// supplies "a, b,c".
var listKeys = []string{"server.cors_origins"}

func splitCommaLists(k *koanf.Koanf) error {
	for _, key := range listKeys {
		raw, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		items := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' })
		list := make([]string, 0, len(items))
		for _, it := range items {
			if it = strings.TrimSpace(it); it != "" {
				list = append(list, it)
			}
		}
		if err := k.Set(key, list); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return nil
}

// envMappings routes recognized environment variables (matched without
// case) to koanf keys. Anything else in the environment is ignored.
var envMappings = map[string]string{
	"mode": "mode",

	"train_path":       "data.train_path",
	"query_path":       "data.query_path",
	"output_path":      "data.output_path",
	"csv_header":       "data.header",
	"output_precision": "data.precision",

	"short_circuit":    "predict.short_circuit",
	"undefined_policy": "predict.undefined_policy",
	"predict_workers":  "predict.workers",

	"cache_enabled":             "cache.enabled",
	"cache_capacity":            "cache.capacity",
	"cache_ttl":                 "cache.ttl",
	"cache_persist_path":        "cache.persist_path",
	"cache_persist_ttl":         "cache.persist_ttl",
	"cache_persist_gc_interval": "cache.persist_gc_interval",
	"cache_persist_purge":       "cache.persist_purge",

	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"shutdown_timeout":    "server.shutdown_timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps TRAIN_PATH to data.train_path and so on. An empty
// result tells koanf to skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
