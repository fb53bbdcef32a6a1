package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/waste3d/survivors-profile/internal/domain"
)

func newTestRepo(t *testing.T) *BlobRepository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "profile.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	repo := NewBlobRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestBlobRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestBlobRepository_PutOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Get = %q, want second", got)
	}

	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get after Delete err = %v", err)
	}
}
