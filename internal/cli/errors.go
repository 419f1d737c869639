package cli

import (
	"errors"
	"io/fs"

	"github.com/semmy-space/fa/internal/config"
	"github.com/semmy-space/fa/internal/output"
	"github.com/semmy-space/fa/internal/provider"
	"github.com/semmy-space/fa/internal/store"
	"github.com/semmy-space/fa/internal/transfer"
)

// errorKind maps a sentinel to its exit code and hint
type errorKind struct {
	sentinel error
	code     int
	hint     string
}

// Order matters: the first matching sentinel wins.
var errorKinds = []errorKind{
	{config.ErrNoConfiguration, output.ExitConfigError, "Run: fa init"},
	{config.ErrEnvironmentVariable, output.ExitConfigError, "Set HOME or pass --config-dir"},
	{store.ErrNoStore, output.ExitNotFound, "List stores with: fa store list"},
	{store.ErrAlreadyPresent, output.ExitConflict, ""},
	{store.ErrDuplicateCredential, output.ExitConflict, ""},
	{store.ErrUnexpectedFilterSyntax, output.ExitUsage, "Use --filter tag/<value> or --filter site/<value>"},
	{store.ErrInvalidName, output.ExitUsage, ""},
	{store.ErrInvalidCredential, output.ExitUsage, ""},
	{ErrUnknownCommand, output.ExitUsage, "Show the full tree with: fa schema"},
	{provider.ErrInvalidIdentity, output.ExitAuth, "Check the identity in: fa config view"},
	{provider.ErrDecryption, output.ExitAuth, "Is the key for the configured identity available?"},
	{provider.ErrEncryption, output.ExitAuth, "Is the key for the configured identity available?"},
	{store.ErrSerialization, output.ExitDataError, ""},
	{transfer.ErrMissingColumn, output.ExitDataError, "The CSV header needs username and password columns"},
	{transfer.ErrInvalidRow, output.ExitDataError, ""},
	{store.ErrLocked, output.ExitTempFail, "Another fa process is using the store. Try again"},
	{fs.ErrPermission, output.ExitForbidden, ""},
}

// AsCLIError converts any error returned by a command to a CLIError
func AsCLIError(err error) *output.CLIError {
	if err == nil {
		return nil
	}

	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	for _, kind := range errorKinds {
		if errors.Is(err, kind.sentinel) {
			return output.NewCLIError(kind.code, err.Error()).WithHint(kind.hint).WithCause(err)
		}
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return output.NewCLIError(output.ExitIOError, err.Error()).WithCause(err)
	}

	return output.NewCLIError(output.ExitGeneral, err.Error()).WithCause(err)
}
