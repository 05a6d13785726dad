package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"vato-reader/internal/lastread"
)

func newTestRepo(t *testing.T) (*KVRepo, *sql.DB) {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewKVRepo(db), db
}

func TestKVRepo_GetSetDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, lastread.ErrKeyNotFound) {
		t.Errorf("Get() missing key error = %v, want ErrKeyNotFound", err)
	}

	if err := repo.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "v2" {
		t.Errorf("Get() = %q, want v2", got)
	}

	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
	if _, err := repo.Get(ctx, "k"); !errors.Is(err, lastread.ErrKeyNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrKeyNotFound", err)
	}
}

func TestKVRepo_SetAll(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	values := map[string]string{"a": "1", "b": "2", "c": "3"}
	if err := repo.SetAll(ctx, values); err != nil {
		t.Fatalf("SetAll() error = %v", err)
	}
	for key, want := range values {
		got, err := repo.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", key, err)
		}
		if got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestKVRepo_SetAllIsAtomic(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "a", "old"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Reject writes to key "b" so the second statement of the batch fails.
	_, err := db.Exec(`CREATE TRIGGER reject_b BEFORE INSERT ON kv WHEN NEW.key = 'b'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END;`)
	if err != nil {
		t.Fatalf("Failed to create trigger: %v", err)
	}

	// Go map iteration order is random, so write the batch until "a" has
	// been attempted before "b" at least once; every attempt must roll back.
	for i := 0; i < 10; i++ {
		if err := repo.SetAll(ctx, map[string]string{"a": "new", "b": "x"}); err == nil {
			t.Fatal("SetAll() expected error, got nil")
		}
	}

	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "old" {
		t.Errorf("Get() = %q after failed batch, want old", got)
	}
}

func TestKVRepo_BacksTracker(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	tracker := lastread.NewTracker(repo)

	tracker.Save(ctx, "2", "7", "vat_2_7.html")
	pos, ok := tracker.Load(ctx)
	if !ok {
		t.Fatal("Load() reported no position after Save()")
	}
	if pos.ChapterID != "2" || pos.VatNumber != "7" || pos.FileName != "vat_2_7.html" {
		t.Errorf("Load() = %+v", pos)
	}

	tracker.Clear(ctx)
	if _, ok := tracker.Load(ctx); ok {
		t.Error("Load() after Clear() should report no position")
	}
}
