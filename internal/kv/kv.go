// Package kv defines the key-value storage contract the todo list is
// persisted through, plus an in-memory implementation.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is an opaque get/put service keyed by string. Values are raw
// JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
