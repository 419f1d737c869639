// Package provider defines the encryption boundary used by credential stores.
//
// fa never implements cryptography itself: a Provider encrypts and decrypts
// opaque byte payloads for an identity it alone understands. Two providers
// exist, a gpg process per call and age identities kept in the secret store.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/semmy-space/fa/internal/secrets"
)

var (
	// ErrEncryption is returned when the provider fails to encrypt.
	ErrEncryption = errors.New("could not encrypt data for the store")
	// ErrDecryption is returned when the provider fails to decrypt.
	ErrDecryption = errors.New("could not decrypt data for the store")
	// ErrInvalidIdentity is returned when the provider rejects an identity.
	ErrInvalidIdentity = errors.New("invalid encryption identity")
)

// MinIdentityLength is the shortest identity handed to a provider for validation.
const MinIdentityLength = 2

// Provider encrypts and decrypts store payloads for an opaque identity.
//
// Decrypt of an empty ciphertext returns an empty plaintext without
// consulting the backend: a store file that was never written has no bytes.
type Provider interface {
	Encrypt(ctx context.Context, identity string, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, identity string, ciphertext []byte) ([]byte, error)
	IdentityIsValid(ctx context.Context, identity string) (bool, error)
}

// Options configures provider construction
type Options struct {
	// GPGBinary overrides the gpg executable (default "gpg")
	GPGBinary string

	// Secrets opens the secret store holding age identities.
	// Only called when the age provider is selected.
	Secrets func() (secrets.Store, error)
}

// New returns the provider registered under name
func New(name string, opts Options) (Provider, error) {
	switch name {
	case "", "gpg":
		return NewGPG(opts.GPGBinary), nil
	case "age":
		if opts.Secrets == nil {
			return nil, fmt.Errorf("age provider requires a secret store")
		}
		store, err := opts.Secrets()
		if err != nil {
			return nil, fmt.Errorf("failed to open secret store: %w", err)
		}
		return NewAge(store), nil
	default:
		return nil, fmt.Errorf("unknown encryption provider %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the supported provider names
func Names() []string {
	return []string{"gpg", "age"}
}
