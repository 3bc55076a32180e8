package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "levelup-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestDocumentPutGetDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	if _, err := repo.Get(ctx, KeyTasks); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first put, got %v", err)
	}

	if err := repo.Put(ctx, KeyTasks, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := repo.Get(ctx, KeyTasks)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Value) != `[{"id":"1"}]` || got.Revision != 1 || !got.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected document: %+v value=%s", got, got.Value)
	}

	if err := repo.Put(ctx, KeyTasks, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = repo.Get(ctx, KeyTasks)
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if string(got.Value) != `[]` || got.Revision != 2 {
		t.Fatalf("expected whole-value replace with revision 2, got %+v value=%s", got, got.Value)
	}

	if err := repo.Delete(ctx, KeyTasks); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, KeyTasks); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDocumentPutRejectsEmptyKey(t *testing.T) {
	repo := setupRepo(t)
	if err := repo.Put(context.Background(), "  ", []byte(`{}`)); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestDocumentListOrdersByKeyAndEscapesPrefix(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	for _, key := range []string{KeyTasks, "check_%raw", KeyCustomAchievements, KeyCheckInHistory} {
		if err := repo.Put(ctx, key, []byte(`null`)); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	all, err := repo.List(ctx, DocumentListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Binary key order: 'I' (0x49) sorts before '_' (0x5F).
	want := []string{KeyCheckInHistory, "check_%raw", KeyCustomAchievements, KeyTasks}
	if len(all) != len(want) {
		t.Fatalf("expected %d documents, got %+v", len(want), all)
	}
	for i, key := range want {
		if all[i].Key != key {
			t.Fatalf("position %d: got %q want %q (all=%+v)", i, all[i].Key, key, all)
		}
	}

	prefixed, err := repo.List(ctx, DocumentListFilter{Prefix: "check"})
	if err != nil {
		t.Fatalf("list prefix: %v", err)
	}
	if len(prefixed) != 2 {
		t.Fatalf("expected 2 documents with prefix, got %d", len(prefixed))
	}

	literal, err := repo.List(ctx, DocumentListFilter{Prefix: "check_%"})
	if err != nil {
		t.Fatalf("list literal prefix: %v", err)
	}
	if len(literal) != 1 || literal[0].Key != "check_%raw" {
		t.Fatalf("expected LIKE wildcards to be escaped, got %+v", literal)
	}
}

func TestOpenSQLiteCreatesDirectoryAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "levelup.db")
	repo, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	if err := repo.Put(context.Background(), KeyLastCheckInDate, []byte(`"2026-02-09"`)); err != nil {
		t.Fatalf("put after open: %v", err)
	}
}

func TestMemoryRepositoryMatchesSQLiteSemantics(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	if _, err := repo.Get(ctx, KeyTasks); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_ = repo.Put(ctx, KeyTasks, []byte(`[1]`))
	_ = repo.Put(ctx, KeyTasks, []byte(`[2]`))
	got, err := repo.Get(ctx, KeyTasks)
	if err != nil || string(got.Value) != `[2]` || got.Revision != 2 {
		t.Fatalf("unexpected document: %+v err=%v", got, err)
	}
	got.Value[0] = 'x'
	again, _ := repo.Get(ctx, KeyTasks)
	if string(again.Value) != `[2]` {
		t.Fatal("Get must return a copy")
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
