package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCLIError(t *testing.T) {
	err := NewCLIError(ExitNotFound, "store not found")
	assert.Equal(t, ExitNotFound, err.ExitCode)
	assert.Equal(t, "store not found", err.Message)
	assert.Empty(t, err.Hint)
	assert.Nil(t, err.Unwrap())
}

func TestCLIErrorError(t *testing.T) {
	err := &CLIError{Message: "something broke"}
	assert.Equal(t, "something broke", err.Error())
}

func TestCLIErrorWithHint(t *testing.T) {
	err := NewCLIError(ExitConfigError, "no configuration")
	result := err.WithHint("Run: fa init")

	// Fluent builder returns same pointer
	assert.Same(t, err, result)
	assert.Equal(t, "Run: fa init", err.Hint)
}

func TestCLIErrorWithCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewCLIError(ExitIOError, "failed").WithCause(cause)

	assert.ErrorIs(t, err, cause)
}

func TestCLIErrorImplementsError(t *testing.T) {
	var err error = NewCLIError(ExitGeneral, "test")
	assert.Equal(t, "test", err.Error())
}
