package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	path := Resolve("main", t.TempDir())
	ctx := context.Background()

	first, err := Acquire(ctx, path, time.Second)
	require.NoError(t, err)

	_, err = Acquire(ctx, path, 200*time.Millisecond)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Release())

	second, err := Acquire(ctx, path, time.Second)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}
