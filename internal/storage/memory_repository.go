package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository keeps documents in process memory. Used by tests and --ephemeral runs.
type MemoryRepository struct {
	mu   sync.Mutex
	docs map[string]Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]Document)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[key]
	if !ok {
		return Document{}, ErrNotFound
	}
	doc.Value = append([]byte(nil), doc.Value...)
	return doc, nil
}

func (r *MemoryRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.docs[key]
	r.docs[key] = Document{
		Key:       key,
		Value:     append([]byte(nil), value...),
		Revision:  prev.Revision + 1,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[key]; !ok {
		return ErrNotFound
	}
	delete(r.docs, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, filter DocumentListFilter) ([]Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Document, 0, len(r.docs))
	for k, doc := range r.docs {
		if filter.Prefix != "" && !strings.HasPrefix(k, filter.Prefix) {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *MemoryRepository) Close() error { return nil }
