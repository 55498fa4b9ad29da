/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config defines the client configuration and its loaders. A
// configuration is assembled from defaults, an optional YAML file, and
// GDATA_-prefixed environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DataSource holds the connection settings of a SQL-backed token store.
type DataSource struct {
	Type            string `yaml:"type" env:"TYPE"`
	Hostname        string `yaml:"hostname" env:"HOSTNAME"`
	Port            int    `yaml:"port" env:"PORT"`
	Name            string `yaml:"name" env:"NAME"`
	Username        string `yaml:"username" env:"USERNAME"`
	Password        string `yaml:"password" env:"PASSWORD"`
	SSLMode         string `yaml:"sslmode" env:"SSLMODE"`
	Path            string `yaml:"path" env:"PATH"`
	Options         string `yaml:"options" env:"OPTIONS"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// CacheConfig controls the cache fronting a persistent token store.
type CacheConfig struct {
	Disabled bool `yaml:"disabled" env:"DISABLED"`
	Size     int  `yaml:"size" env:"SIZE"`
	TTL      int  `yaml:"ttl" env:"TTL"`
}

// StoreConfig selects the token store backend.
type StoreConfig struct {
	// Type is one of "memory", "bolt" or "database".
	Type string `yaml:"type" env:"TYPE"`
	// BoltPath is the file path of the bolt backend.
	BoltPath string `yaml:"bolt_path" env:"BOLT_PATH"`
	// DataSource configures the database backend.
	DataSource DataSource  `yaml:"datasource" envPrefix:"DATASOURCE_"`
	Cache      CacheConfig `yaml:"cache" envPrefix:"CACHE_"`
}

// Config is the full client configuration.
type Config struct {
	// HTTPTimeout is the dispatcher timeout in seconds.
	HTTPTimeout int `yaml:"http_timeout" env:"HTTP_TIMEOUT"`
	// MaxRedirects bounds redirect following in the request pipeline.
	MaxRedirects int `yaml:"max_redirects" env:"MAX_REDIRECTS"`
	// ExpirySkew is the allowance in seconds subtracted from OAuth2 expiry
	// before a proactive refresh.
	ExpirySkew int `yaml:"expiry_skew" env:"EXPIRY_SKEW"`
	// ChunkSize is the default resumable upload chunk size in bytes.
	ChunkSize int64       `yaml:"chunk_size" env:"CHUNK_SIZE"`
	Store     StoreConfig `yaml:"store" envPrefix:"STORE_"`
}

// Store backend types.
const (
	StoreTypeMemory   = "memory"
	StoreTypeBolt     = "bolt"
	StoreTypeDatabase = "database"
)

const envPrefix = "GDATA_"

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeout:  30,
		MaxRedirects: 5,
		ExpirySkew:   60,
		ChunkSize:    262144,
		Store: StoreConfig{
			Type: StoreTypeMemory,
		},
	}
}

// Load assembles the configuration. A .env file in the working directory is
// loaded into the environment when present; then the YAML file at path (if
// any) overrides the defaults, and GDATA_-prefixed environment variables
// override both.
func Load(path string) (*Config, error) {
	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return cfg, nil
}
