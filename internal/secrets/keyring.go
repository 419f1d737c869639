package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/adrg/xdg"
)

// KeyringStore keeps secrets in the OS keyring under the fa service.
type KeyringStore struct {
	ring keyring.Keyring
}

// keyringConfig names fa's collection in every backend keyring supports.
// The keyring's own file backend reuses FA_STORE_PASSWORD when it is set.
func keyringConfig() keyring.Config {
	prompt := keyring.TerminalPrompt
	if password := os.Getenv(PasswordVariable); password != "" {
		prompt = keyring.FixedStringPrompt(password)
	}

	return keyring.Config{
		ServiceName:              ServiceName,
		KeychainName:             "login",
		KeychainTrustApplication: true, // macOS: don't prompt every access
		LibSecretCollectionName:  ServiceName,
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
		WinCredPrefix:            ServiceName,
		FileDir:                  filepath.Join(xdg.DataHome, ServiceName, "keyring"),
		FilePasswordFunc:         prompt,
	}
}

// NewKeyringStore opens the platform keyring.
// Returns an error if no keyring backend is available.
func NewKeyringStore() (*KeyringStore, error) {
	ring, err := keyring.Open(keyringConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &KeyringStore{ring: ring}, nil
}

// keyringError maps a missing item to ErrNotFound
func keyringError(op string, err error) error {
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("keyring %s failed: %w", op, err)
}

// Get implements Store
func (s *KeyringStore) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		return "", keyringError("get", err)
	}
	return string(item.Data), nil
}

// Set implements Store
func (s *KeyringStore) Set(key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:         key,
		Data:        []byte(value),
		Label:       ServiceName + " " + key,
		Description: "fa encryption identity",
	})
	if err != nil {
		return keyringError("set", err)
	}
	return nil
}

// Delete implements Store
func (s *KeyringStore) Delete(key string) error {
	if err := s.ring.Remove(key); err != nil {
		return keyringError("delete", err)
	}
	return nil
}

// List implements Store
func (s *KeyringStore) List() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, keyringError("list", err)
	}
	return keys, nil
}
