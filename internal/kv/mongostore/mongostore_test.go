//go:build integration

package mongostore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/kv"
)

func TestStoreAgainstMongo(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	s, err := Open(ctx, uri, "todos_test", "kv")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Get(ctx, "todos")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Put(ctx, "todos", []byte(`[]`)))
	require.NoError(t, s.Put(ctx, "todos", []byte(`[{"id":"a","text":"x","completed":true}]`)))

	got, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","text":"x","completed":true}]`, string(got))

	n, err := s.coll.CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
