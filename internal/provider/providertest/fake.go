// Package providertest provides an in-memory provider.Provider for tests.
package providertest

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/semmy-space/fa/internal/provider"
)

// Fake "encrypts" by base64-encoding the payload behind an identity header.
// Decrypting with another identity fails, as does anything after
// FailEncrypt/FailDecrypt is set.
type Fake struct {
	FailEncrypt bool
	FailDecrypt bool

	// Invalid lists identities IdentityIsValid rejects
	Invalid map[string]bool

	EncryptCalls int
	DecryptCalls int
}

// New returns a working fake provider
func New() *Fake {
	return &Fake{Invalid: map[string]bool{}}
}

func header(identity string) []byte {
	return []byte("fake:" + identity + ":")
}

// Encrypt implements provider.Provider
func (f *Fake) Encrypt(ctx context.Context, identity string, plaintext []byte) ([]byte, error) {
	f.EncryptCalls++
	if f.FailEncrypt {
		return nil, fmt.Errorf("%w: fake provider refused", provider.ErrEncryption)
	}
	out := header(identity)
	return append(out, base64.StdEncoding.EncodeToString(plaintext)...), nil
}

// Decrypt implements provider.Provider
func (f *Fake) Decrypt(ctx context.Context, identity string, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	f.DecryptCalls++
	if f.FailDecrypt {
		return nil, fmt.Errorf("%w: fake provider refused", provider.ErrDecryption)
	}

	h := header(identity)
	if !bytes.HasPrefix(ciphertext, h) {
		return nil, fmt.Errorf("%w: not encrypted for %s", provider.ErrDecryption, identity)
	}
	plaintext, err := base64.StdEncoding.DecodeString(string(ciphertext[len(h):]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrDecryption, err)
	}
	return plaintext, nil
}

// IdentityIsValid implements provider.Provider
func (f *Fake) IdentityIsValid(ctx context.Context, identity string) (bool, error) {
	if len(identity) < provider.MinIdentityLength {
		return false, nil
	}
	return !f.Invalid[identity], nil
}
