package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background(), "todos")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Put(ctx, "todos", []byte(`[1]`)))
	require.NoError(t, m.Put(ctx, "todos", []byte(`[1,2]`)))

	got, err := m.Get(ctx, "todos")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := []byte(`"abc"`)
	require.NoError(t, m.Put(ctx, "k", in))
	in[1] = 'x'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	out[1] = 'y'

	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(again))
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemory()

	assert.ErrorIs(t, m.Put(ctx, "k", []byte(`1`)), context.Canceled)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
