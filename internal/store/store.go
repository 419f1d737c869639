package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/semmy-space/fa/internal/provider"
)

// Store is the in-memory view of one store file.
type Store struct {
	name        string
	path        string
	identity    string
	provider    provider.Provider
	credentials []Credential
	dirty       bool
}

// Create creates a new, empty store at path. The file is claimed exclusively
// and immediately holds an encrypted empty list; if encryption fails the
// claimed file is removed again.
func Create(ctx context.Context, p provider.Provider, name, path, identity string) (*Store, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w at %s", ErrAlreadyPresent, path)
		}
		return nil, fmt.Errorf("failed to create store file: %w", err)
	}

	s := &Store{
		name:        name,
		path:        path,
		identity:    identity,
		provider:    p,
		credentials: []Credential{},
	}

	ciphertext, err := s.encode(ctx)
	if err == nil {
		_, err = f.Write(ciphertext)
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil {
			slog.Warn("failed to remove partially created store", "path", path, "error", rerr)
		}
		return nil, err
	}

	slog.Debug("created store", "name", name, "path", path)
	return s, nil
}

// Load reads and decrypts the store at path.
func Load(ctx context.Context, p provider.Provider, name, path, identity string) (*Store, error) {
	exists, err := Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w at %s", ErrNoStore, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	credentials, err := decode(ctx, p, identity, data)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded store", "name", name, "path", path, "credentials", len(credentials))
	return &Store{
		name:        name,
		path:        path,
		identity:    identity,
		provider:    p,
		credentials: credentials,
	}, nil
}

// decode decrypts data and parses the credential list
func decode(ctx context.Context, p provider.Provider, identity string, data []byte) ([]Credential, error) {
	// A store that was never written decrypts to nothing
	if len(data) == 0 {
		return []Credential{}, nil
	}

	plaintext, err := p.Decrypt(ctx, identity, data)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(plaintext)) == 0 {
		return []Credential{}, nil
	}

	var credentials []Credential
	if err := json.Unmarshal(plaintext, &credentials); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if credentials == nil {
		credentials = []Credential{}
	}
	return credentials, nil
}

// encode serializes and encrypts the current credentials
func (s *Store) encode(ctx context.Context) ([]byte, error) {
	plaintext, err := json.Marshal(s.credentials)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return s.provider.Encrypt(ctx, s.identity, plaintext)
}

// Name returns the store name
func (s *Store) Name() string {
	return s.name
}

// Path returns the store file path
func (s *Store) Path() string {
	return s.path
}

// Dirty reports whether the store has unsaved changes
func (s *Store) Dirty() bool {
	return s.dirty
}

// Len returns the number of credentials
func (s *Store) Len() int {
	return len(s.credentials)
}

// Credentials returns a copy of the credentials in insertion order
func (s *Store) Credentials() []Credential {
	out := make([]Credential, len(s.credentials))
	copy(out, s.credentials)
	return out
}

// Contains reports whether a credential with this user and password exists
func (s *Store) Contains(user, password string) bool {
	for _, c := range s.credentials {
		if c.Matches(user, password) {
			return true
		}
	}
	return false
}

// Add appends c. It fails with ErrDuplicateCredential if the same
// user/password pair is already stored.
func (s *Store) Add(c Credential) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if s.Contains(c.User, c.Password) {
		return fmt.Errorf("%w: %s in store %s", ErrDuplicateCredential, c.User, s.name)
	}

	s.credentials = append(s.credentials, c)
	s.dirty = true
	return nil
}

// Remove deletes the first credential matching user and password exactly.
// It reports whether anything was removed.
func (s *Store) Remove(user, password string) bool {
	for i, c := range s.credentials {
		if c.Matches(user, password) {
			s.credentials = append(s.credentials[:i], s.credentials[i+1:]...)
			s.dirty = true
			return true
		}
	}
	return false
}

// Search returns credentials whose user starts with query, ignoring case,
// and that pass filter. Results keep insertion order.
func (s *Store) Search(query string, filter Filter) []Credential {
	q := strings.ToLower(query)

	results := []Credential{}
	for _, c := range s.credentials {
		if strings.HasPrefix(strings.ToLower(c.User), q) && filter.Match(c) {
			results = append(results, c)
		}
	}
	return results
}

// Save encrypts the credentials and replaces the store file. Nothing on
// disk changes unless encryption succeeded.
func (s *Store) Save(ctx context.Context) error {
	ciphertext, err := s.encode(ctx)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.path, ciphertext); err != nil {
		return err
	}

	s.dirty = false
	slog.Debug("saved store", "name", s.name, "path", s.path, "credentials", len(s.credentials))
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close store file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
