package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is a key/value store of JSON documents. Put replaces the whole value.
type Repository interface {
	Get(ctx context.Context, key string) (Document, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, filter DocumentListFilter) ([]Document, error)
	Close() error
}

var (
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)
