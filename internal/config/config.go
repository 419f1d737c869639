package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// ErrNoConfiguration is returned by Load when no config file exists yet.
var ErrNoConfiguration = errors.New("no configuration")

// Provider names accepted in security.provider
const (
	ProviderGPG = "gpg"
	ProviderAge = "age"
)

// Config holds the persisted fa configuration
type Config struct {
	Store    StoreConfig    `json:"store"`
	Security SecurityConfig `json:"security"`
}

// StoreConfig locates the store files
type StoreConfig struct {
	BasePath     string `json:"base_path"`
	DefaultStore string `json:"default_store"`
}

// SecurityConfig names the encryption identity and the provider that understands it
type SecurityConfig struct {
	Identity string `json:"identity"`
	Provider string `json:"provider,omitempty"`
}

// ProviderName returns the configured provider, defaulting to gpg
func (c *Config) ProviderName() string {
	if c.Security.Provider == "" {
		return ProviderGPG
	}
	return c.Security.Provider
}

// Resolver reads and writes the configuration file inside a single directory.
type Resolver struct {
	dir string
}

// NewResolver returns a resolver rooted at dir
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// Dir returns the configuration directory
func (r *Resolver) Dir() string {
	return r.dir
}

// Path returns the full path to the config file
func (r *Resolver) Path() string {
	return filepath.Join(r.dir, FileName)
}

// Load reads the config file. It fails with ErrNoConfiguration when the file
// does not exist; the caller is expected to run the init flow.
func (r *Resolver) Load() (*Config, error) {
	path := r.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: could not find a configuration file at %s", ErrNoConfiguration, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Create builds a fresh configuration and writes it, replacing any previous
// file. The store base path is absolutized and created along with the config
// directory.
func (r *Resolver) Create(basePath, defaultStore, identity, provider string) (*Config, error) {
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path %q: %w", basePath, err)
	}

	if err := os.MkdirAll(absBase, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	cfg := &Config{
		Store: StoreConfig{
			BasePath:     absBase,
			DefaultStore: defaultStore,
		},
		Security: SecurityConfig{
			Identity: identity,
			Provider: provider,
		},
	}

	if err := r.save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefaultStore rewrites the whole config file with a new default store.
// The base path and identity are carried over unchanged.
func (r *Resolver) SetDefaultStore(cfg *Config, name string) (*Config, error) {
	updated := *cfg
	updated.Store.DefaultStore = name

	if err := r.save(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// save writes the config to the resolver's path
func (r *Resolver) save(cfg *Config) error {
	// Ensure config directory exists
	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to JSON (not JSON5 for writing - JSON is valid JSON5)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(r.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
