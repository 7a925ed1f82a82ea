package kv_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"studyhub/internal/platform/kv"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type doc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "studyhub.db")
	clk := fixedClock{at: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	store, err := kv.NewSQLiteStore(ctx, dbPath, clk)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Put(ctx, kv.KeyCourses, doc{Name: "first", Items: []string{"a"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, kv.KeyCourses, doc{Name: "second", Items: []string{"a", "b"}}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := kv.NewSQLiteStore(ctx, dbPath, clk)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	got := doc{}
	ok, err := reopened.Get(ctx, kv.KeyCourses, &got)
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%t err=%v", ok, err)
	}
	if got.Name != "second" || len(got.Items) != 2 {
		t.Fatalf("expected latest value, got %+v", got)
	}
}

func TestSQLiteStoreMissingAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := kv.NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "studyhub.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	var total int
	ok, err := store.Get(ctx, kv.KeyExperience, &total)
	if err != nil || ok {
		t.Fatalf("missing key should report ok=false without error, got ok=%t err=%v", ok, err)
	}
	if err := store.Put(ctx, kv.KeyExperience, 42); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, kv.KeyExperience); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := store.Get(ctx, kv.KeyExperience, &total); ok {
		t.Fatalf("deleted key should be missing")
	}
}

func TestMemoryStoreDecodeMismatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Put(ctx, "k", "text"); err != nil {
		t.Fatalf("put: %v", err)
	}
	var n int
	if _, err := store.Get(ctx, "k", &n); err == nil {
		t.Fatalf("expected decode error for mismatched type")
	}
}
