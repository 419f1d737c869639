package provider

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGPG mimics the gpg command line used by GPG. Encryption prefixes the
// payload; recipient "bad" fails. Only "KNOWN" passes --list-keys. Every
// invocation is appended to $FAKE_GPG_LOG.
const fakeGPG = `#!/bin/sh
[ -n "$FAKE_GPG_LOG" ] && echo "$*" >> "$FAKE_GPG_LOG"
mode=""
recipient=""
while [ $# -gt 0 ]; do
  case "$1" in
    --encrypt) mode=enc ;;
    --decrypt) mode=dec ;;
    --list-keys) mode=list; shift; recipient="$1" ;;
    --recipient) shift; recipient="$1" ;;
  esac
  shift
done
case "$mode" in
  enc)
    if [ "$recipient" = "bad" ]; then echo "gpg: bad: skipped: No public key" >&2; exit 2; fi
    printf 'FAKEGPG:'
    cat
    ;;
  dec)
    input=$(cat)
    case "$input" in
      FAKEGPG:*) printf '%s' "${input#FAKEGPG:}" ;;
      *) echo "gpg: decryption failed: No secret key" >&2; exit 2 ;;
    esac
    ;;
  list)
    [ "$recipient" = "KNOWN" ] && exit 0
    exit 2
    ;;
esac
`

func newFakeGPG(t *testing.T) (*GPG, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake gpg is a shell script")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "gpg")
	require.NoError(t, os.WriteFile(bin, []byte(fakeGPG), 0700))

	logPath := filepath.Join(dir, "calls.log")
	t.Setenv("FAKE_GPG_LOG", logPath)

	return NewGPG(bin), logPath
}

func callCount(t *testing.T, logPath string) int {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func TestGPGRoundTrip(t *testing.T) {
	g, _ := newFakeGPG(t)
	ctx := context.Background()

	plaintext := []byte(`[{"user":"alice","password":"s3cret"}]`)
	ciphertext, err := g.Encrypt(ctx, "KNOWN", plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := g.Decrypt(ctx, "KNOWN", ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestGPGEncryptFailure(t *testing.T) {
	g, _ := newFakeGPG(t)

	_, err := g.Encrypt(context.Background(), "bad", []byte("[]"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncryption)
	assert.Contains(t, err.Error(), "No public key")
}

func TestGPGDecryptFailure(t *testing.T) {
	g, _ := newFakeGPG(t)

	_, err := g.Decrypt(context.Background(), "KNOWN", []byte("garbage"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestGPGDecryptEmptySkipsProcess(t *testing.T) {
	g, logPath := newFakeGPG(t)

	plaintext, err := g.Decrypt(context.Background(), "KNOWN", nil)
	require.NoError(t, err)
	assert.Empty(t, plaintext)
	assert.Equal(t, 0, callCount(t, logPath))
}

func TestGPGIdentityIsValid(t *testing.T) {
	g, logPath := newFakeGPG(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		identity string
		valid    bool
	}{
		{name: "known key", identity: "KNOWN", valid: true},
		{name: "unknown key", identity: "UNKNOWN", valid: false},
		{name: "single char", identity: "K", valid: false},
		{name: "empty", identity: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := g.IdentityIsValid(ctx, tt.identity)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
		})
	}

	// Short identities never reach the process
	assert.Equal(t, 2, callCount(t, logPath))
}

func TestGPGMissingBinary(t *testing.T) {
	g := NewGPG(filepath.Join(t.TempDir(), "no-such-gpg"))

	_, err := g.Encrypt(context.Background(), "KNOWN", []byte("[]"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEncryption)

	_, err = g.IdentityIsValid(context.Background(), "KNOWN")
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	p, err := New("", Options{})
	require.NoError(t, err)
	assert.IsType(t, &GPG{}, p)

	_, err = New("age", Options{})
	assert.Error(t, err)

	_, err = New("rot13", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encryption provider")
}
