package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "comicshelf.db"))
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func TestRepository_GetMissingKey(t *testing.T) {
	repo := newTestRepo(t)

	_, found, err := repo.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found {
		t.Fatal("expected missing key to report not found")
	}
}

func TestRepository_SetOverwritesInPlace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, KeySessionFragment, "c=001"); err != nil {
		t.Fatalf("first Set returned error: %v", err)
	}
	if err := repo.Set(ctx, KeySessionFragment, "c=002"); err != nil {
		t.Fatalf("second Set returned error: %v", err)
	}

	value, found, err := repo.Get(ctx, KeySessionFragment)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found || value != "c=002" {
		t.Fatalf("expected overwritten value c=002, got %q found=%v", value, found)
	}

	var count int
	row := repo.db.QueryRow(`SELECT COUNT(*) FROM kv WHERE key = ?`, KeySessionFragment)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row per key, got %d", count)
	}
}

func TestRepository_BoolRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	accepted, err := repo.GetBool(ctx, KeyDisclaimerAccepted)
	if err != nil {
		t.Fatalf("GetBool returned error: %v", err)
	}
	if accepted {
		t.Fatal("expected unset flag to read false")
	}

	if err := repo.SetBool(ctx, KeyDisclaimerAccepted, true); err != nil {
		t.Fatalf("SetBool returned error: %v", err)
	}
	accepted, err = repo.GetBool(ctx, KeyDisclaimerAccepted)
	if err != nil {
		t.Fatalf("GetBool returned error: %v", err)
	}
	if !accepted {
		t.Fatal("expected persisted flag to read true")
	}
}

func TestRepository_CheckWritable(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.CheckWritable(context.Background()); err != nil {
		t.Fatalf("CheckWritable returned error: %v", err)
	}
}
