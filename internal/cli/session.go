package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/provider"
	"github.com/semmy-space/fa/internal/secrets"
	"github.com/semmy-space/fa/internal/store"
	"github.com/semmy-space/fa/internal/vault"
)

// newProvider builds the encryption provider named in the configuration.
// Tests replace it with an in-memory double.
var newProvider = func(name string, g *Globals) (provider.Provider, error) {
	return provider.New(name, provider.Options{
		GPGBinary: g.GPGBinary,
		Secrets:   secrets.NewStore,
	})
}

// loadManager loads the configuration and returns a store manager for it
func loadManager(res *config.Resolver, g *Globals) (*vault.Manager, error) {
	cfg, err := res.Load()
	if err != nil {
		return nil, err
	}

	p, err := newProvider(cfg.ProviderName(), g)
	if err != nil {
		return nil, err
	}

	return vault.NewManager(res, cfg, p), nil
}

// withStoreLock runs fn while holding the advisory lock of the named store
func withStoreLock(ctx context.Context, m *vault.Manager, name string, fn func() error) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	lock, err := store.Acquire(ctx, m.Path(name), store.LockTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			slog.Warn("failed to release store lock", "store", name, "error", err)
		}
	}()

	return fn()
}

// withExistingStoreLock is withStoreLock for commands that never create the
// store. A missing store fails before its lock file is created.
func withExistingStoreLock(ctx context.Context, m *vault.Manager, name string, fn func() error) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	path := m.Path(name)
	exists, err := store.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w at %s", store.ErrNoStore, path)
	}

	return withStoreLock(ctx, m, name, fn)
}
