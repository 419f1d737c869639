package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultGPGBinary is the executable used when none is configured
const DefaultGPGBinary = "gpg"

// GPG runs one isolated gpg process per operation. Payloads travel over
// stdin/stdout; the full input is written before any output is read.
type GPG struct {
	binary string
}

// NewGPG creates a gpg provider. An empty binary means DefaultGPGBinary.
func NewGPG(binary string) *GPG {
	if binary == "" {
		binary = DefaultGPGBinary
	}
	return &GPG{binary: binary}
}

// Encrypt encrypts plaintext to the key named by identity.
func (g *GPG) Encrypt(ctx context.Context, identity string, plaintext []byte) ([]byte, error) {
	out, err := g.run(ctx, plaintext,
		"--encrypt",
		"--trust-model", "always",
		"--recipient", identity,
		"--output", "-",
	)
	if err != nil {
		return nil, providerError(ErrEncryption, err)
	}
	return out, nil
}

// Decrypt decrypts ciphertext with whichever secret key gpg finds for it.
func (g *GPG) Decrypt(ctx context.Context, identity string, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}

	out, err := g.run(ctx, ciphertext,
		"--decrypt",
		"--output", "-",
	)
	if err != nil {
		return nil, providerError(ErrDecryption, err)
	}
	return out, nil
}

// IdentityIsValid reports whether gpg knows a key for identity.
func (g *GPG) IdentityIsValid(ctx context.Context, identity string) (bool, error) {
	if len(identity) < MinIdentityLength {
		return false, nil
	}

	_, err := g.run(ctx, nil, "--list-keys", identity)
	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// exitError records a non-zero gpg exit together with its diagnostics
type exitError struct {
	code   int
	stderr string
}

func (e *exitError) Error() string {
	if e.stderr == "" {
		return fmt.Sprintf("gpg exited with status %d", e.code)
	}
	return fmt.Sprintf("gpg exited with status %d: %s", e.code, e.stderr)
}

// run executes gpg with the common batch flags and returns its stdout.
func (g *GPG) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	full := append([]string{"--batch", "--no-tty", "--quiet", "--yes"}, args...)

	slog.Debug("running gpg", "binary", g.binary, "args", args, "input_bytes", len(stdin))

	cmd := exec.CommandContext(ctx, g.binary, full...)
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, &exitError{
				code:   ee.ExitCode(),
				stderr: strings.TrimSpace(stderr.String()),
			}
		}
		return nil, fmt.Errorf("failed to run %s: %w", g.binary, err)
	}

	return stdout.Bytes(), nil
}

// providerError tags non-zero exits with kind; launch failures stay I/O errors.
func providerError(kind error, err error) error {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %v", kind, exitErr)
	}
	return err
}
