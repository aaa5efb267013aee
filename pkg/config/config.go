// Package config loads engine configuration from environment variables or a
// YAML file, following the env-var-first, flat-struct convention this
// codebase uses for all of its configuration surfaces.
//
// Example Usage:
//
//	cfg := config.LoadFromEnv()
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("invalid config: %v", err)
//	}
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values mirrored from the spec's boundary constants.
const (
	DefaultShardCount        = 20
	DefaultPageSize          = 5
	DefaultRequestWindowSize = 1440
)

// EngineConfig holds all tunables for constructing and operating the search
// engine. It is organized the way the rest of the codebase organizes its
// config: one flat struct, documented per field, loadable from either the
// environment or a YAML file.
type EngineConfig struct {
	// ShardCount is the number of lock-striped buckets used by the
	// concurrent accumulator map (component G). Independent of thread
	// count; a fixed default is fine.
	ShardCount int `yaml:"shard_count"`

	// PageSize is the default page length used by the paginator helper
	// when callers don't specify one explicitly.
	PageSize int `yaml:"page_size"`

	// RequestWindowSize is the number of most recent search calls the
	// request window tracks for its empty-result count.
	RequestWindowSize int `yaml:"request_window_size"`

	// StopWordsPath, if non-empty, is a file containing whitespace
	// separated stop words, loaded in addition to StopWords.
	StopWordsPath string `yaml:"stopwords_path"`

	// StopWords is an explicit list of stop words.
	StopWords []string `yaml:"stopwords"`
}

// DefaultEngineConfig returns the zero-value-safe defaults used when no
// environment variables or YAML file override them.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ShardCount:        DefaultShardCount,
		PageSize:          DefaultPageSize,
		RequestWindowSize: DefaultRequestWindowSize,
	}
}

// LoadFromEnv loads configuration from environment variables, falling back
// to DefaultEngineConfig for anything unset.
//
// Recognized variables:
//   - FTS_SHARD_COUNT
//   - FTS_PAGE_SIZE
//   - FTS_REQUEST_WINDOW
//   - FTS_STOPWORDS_FILE
//   - FTS_STOPWORDS (space-separated)
func LoadFromEnv() EngineConfig {
	cfg := DefaultEngineConfig()

	if v := os.Getenv("FTS_SHARD_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ShardCount = n
		}
	}
	if v := os.Getenv("FTS_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("FTS_REQUEST_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestWindowSize = n
		}
	}
	cfg.StopWordsPath = os.Getenv("FTS_STOPWORDS_FILE")
	if v := os.Getenv("FTS_STOPWORDS"); v != "" {
		cfg.StopWords = strings.Fields(v)
	}
	return cfg
}

// LoadFromYAML decodes an EngineConfig from a YAML file at path, seeded with
// DefaultEngineConfig so unspecified fields keep their defaults.
func LoadFromYAML(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ResolveStopWords merges StopWords with the contents of StopWordsPath (if
// set), returning the combined, space-separated stop-word source text ready
// to hand to the engine constructor.
func (c EngineConfig) ResolveStopWords() (string, error) {
	words := append([]string{}, c.StopWords...)
	if c.StopWordsPath != "" {
		data, err := os.ReadFile(c.StopWordsPath)
		if err != nil {
			return "", fmt.Errorf("reading stopwords file: %w", err)
		}
		words = append(words, strings.Fields(string(data))...)
	}
	return strings.Join(words, " "), nil
}

// Validate rejects non-positive tunables.
func (c EngineConfig) Validate() error {
	if c.ShardCount <= 0 {
		return fmt.Errorf("shard_count must be positive, got %d", c.ShardCount)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.RequestWindowSize <= 0 {
		return fmt.Errorf("request_window_size must be positive, got %d", c.RequestWindowSize)
	}
	return nil
}
