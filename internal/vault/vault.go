// Package vault manages the set of stores under the configured base path:
// resolving which store a command targets, opening it in the mode the
// command needs, and creating, listing, removing and defaulting stores.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/provider"
	"github.com/semmy-space/fa/internal/store"
)

// Mode says how Open treats an existing or missing store file
type Mode int

const (
	// MustExist fails with store.ErrNoStore when the store is missing
	MustExist Mode = iota
	// CreateIfAbsent creates an empty store when it is missing
	CreateIfAbsent
	// MustNotExist fails with store.ErrAlreadyPresent when the store exists
	MustNotExist
)

// String returns a human-readable mode name
func (m Mode) String() string {
	switch m {
	case MustExist:
		return "must-exist"
	case CreateIfAbsent:
		return "create-if-absent"
	case MustNotExist:
		return "must-not-exist"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ResolveStoreName returns the explicit store name if given, else the configured default.
func ResolveStoreName(explicit string, cfg *config.Config) string {
	if explicit != "" {
		return explicit
	}
	return cfg.Store.DefaultStore
}

// Manager operates on the stores described by one configuration.
type Manager struct {
	resolver *config.Resolver
	cfg      *config.Config
	provider provider.Provider
}

// NewManager creates a Manager
func NewManager(resolver *config.Resolver, cfg *config.Config, p provider.Provider) *Manager {
	return &Manager{
		resolver: resolver,
		cfg:      cfg,
		provider: p,
	}
}

// Config returns the configuration the manager currently works with
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Path returns the file path of the named store
func (m *Manager) Path(name string) string {
	return store.Resolve(name, m.cfg.Store.BasePath)
}

// Open resolves name and loads or creates the store according to mode.
func (m *Manager) Open(ctx context.Context, name string, mode Mode) (*store.Store, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	path := m.Path(name)
	identity := m.cfg.Security.Identity

	slog.Debug("opening store", "name", name, "path", path, "mode", mode)

	switch mode {
	case MustExist:
		return store.Load(ctx, m.provider, name, path, identity)
	case CreateIfAbsent:
		exists, err := store.Exists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			return store.Create(ctx, m.provider, name, path, identity)
		}
		return store.Load(ctx, m.provider, name, path, identity)
	case MustNotExist:
		return store.Create(ctx, m.provider, name, path, identity)
	default:
		return nil, fmt.Errorf("unknown open mode %v", mode)
	}
}

// CreateStore creates a new empty store
func (m *Manager) CreateStore(ctx context.Context, name string) (*store.Store, error) {
	return m.Open(ctx, name, MustNotExist)
}

// ListStores returns the names of the stores in the base path, sorted.
// A base path without stores yields an empty list.
func (m *Manager) ListStores() ([]string, error) {
	entries, err := os.ReadDir(m.cfg.Store.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	suffix := "." + store.Extension
	names := []string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), suffix)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// RemoveStore deletes a store after proving it can be decrypted with the
// configured identity.
func (m *Manager) RemoveStore(ctx context.Context, name string) error {
	st, err := m.Open(ctx, name, MustExist)
	if err != nil {
		return err
	}

	if err := os.Remove(st.Path()); err != nil {
		return fmt.Errorf("failed to remove store file: %w", err)
	}
	if err := os.Remove(store.LockPath(st.Path())); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to remove lock file", "path", store.LockPath(st.Path()), "error", err)
	}

	slog.Debug("removed store", "name", name, "credentials", st.Len())
	return nil
}

// SetDefault makes name the default store. It returns false without error
// when the store does not exist, leaving the configuration unchanged.
func (m *Manager) SetDefault(name string) (bool, error) {
	if err := store.ValidateName(name); err != nil {
		return false, err
	}

	exists, err := store.Exists(m.Path(name))
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	updated, err := m.resolver.SetDefaultStore(m.cfg, name)
	if err != nil {
		return false, err
	}
	m.cfg = updated
	return true, nil
}
