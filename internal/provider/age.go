package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/semmy-space/fa/internal/secrets"
)

// secretPrefix namespaces age secret keys inside the secret store
const secretPrefix = "age-identity:"

// Age encrypts to age X25519 recipients. The identity string is the
// recipient (age1...); the matching secret key lives in a secrets.Store.
type Age struct {
	secrets secrets.Store
}

// NewAge creates an age provider backed by store
func NewAge(store secrets.Store) *Age {
	return &Age{secrets: store}
}

// SecretKeyName returns the secret store key for a recipient
func SecretKeyName(recipient string) string {
	return secretPrefix + recipient
}

// Encrypt encrypts plaintext to the recipient named by identity.
func (a *Age) Encrypt(ctx context.Context, identity string, plaintext []byte) ([]byte, error) {
	recipient, err := age.ParseX25519Recipient(identity)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing recipient %q: %v", ErrEncryption, identity, err)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("%w: creating age encryptor: %v", ErrEncryption, err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("%w: writing plaintext: %v", ErrEncryption, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing age encryption: %v", ErrEncryption, err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts ciphertext with the secret key stored for identity.
func (a *Age) Decrypt(ctx context.Context, identity string, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}

	id, err := a.identity(identity)
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			return nil, fmt.Errorf("%w: no secret key stored for %s", ErrDecryption, identity)
		}
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted plaintext: %v", ErrDecryption, err)
	}
	return plaintext, nil
}

// IdentityIsValid reports whether identity is a recipient whose secret key
// is present in the secret store.
func (a *Age) IdentityIsValid(ctx context.Context, identity string) (bool, error) {
	if len(identity) < MinIdentityLength {
		return false, nil
	}
	if _, err := age.ParseX25519Recipient(identity); err != nil {
		return false, nil
	}

	id, err := a.identity(identity)
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return id.Recipient().String() == identity, nil
}

// ImportIdentities reads an age identity file and stores every X25519 key
// it contains. It returns the recipients that were stored.
func (a *Age) ImportIdentities(r io.Reader) ([]string, error) {
	ids, err := age.ParseIdentities(r)
	if err != nil {
		return nil, fmt.Errorf("parsing age identities: %w", err)
	}

	var recipients []string
	for _, id := range ids {
		x, ok := id.(*age.X25519Identity)
		if !ok {
			continue
		}
		recipient := x.Recipient().String()
		if err := a.secrets.Set(SecretKeyName(recipient), x.String()); err != nil {
			return recipients, fmt.Errorf("storing identity %s: %w", recipient, err)
		}
		recipients = append(recipients, recipient)
	}

	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: no X25519 identities found", ErrInvalidIdentity)
	}
	return recipients, nil
}

// identity loads and parses the secret key stored for recipient
func (a *Age) identity(recipient string) (*age.X25519Identity, error) {
	key, err := a.secrets.Get(SecretKeyName(recipient))
	if err != nil {
		return nil, err
	}

	id, err := age.ParseX25519Identity(key)
	if err != nil {
		return nil, fmt.Errorf("parsing stored secret key: %w", err)
	}
	return id, nil
}
