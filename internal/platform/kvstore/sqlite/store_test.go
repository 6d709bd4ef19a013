package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/storyfront/internal/platform/kvstore"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected error")
	}
}

func TestStoreRoundTripAndUpsert(t *testing.T) {
	t.Parallel()

	store := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
	ctx := context.Background()

	if _, ok, err := store.Load(ctx, "visitor", "cookie_consent"); err != nil || ok {
		t.Fatalf("Load() before save = (%t, %v), want (false, nil)", ok, err)
	}
	if err := store.Save(ctx, "visitor", "cookie_consent", "rejected"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, "visitor", "cookie_consent", "accepted"); err != nil {
		t.Fatalf("Save() upsert error = %v", err)
	}
	value, ok, err := store.Load(ctx, "visitor", "cookie_consent")
	if err != nil || !ok || value != "accepted" {
		t.Fatalf("Load() = (%q, %t, %v), want (%q, true, nil)", value, ok, err, "accepted")
	}
	if _, ok, _ := store.Load(ctx, "other", "cookie_consent"); ok {
		t.Fatal("value leaked across namespaces")
	}
}

func TestStoreRejectsBlankKey(t *testing.T) {
	t.Parallel()

	store := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
	if err := store.Save(context.Background(), "visitor", "", "x"); err == nil {
		t.Fatal("expected blank key error")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kv.db")
	first, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Save(context.Background(), "visitor", "cookie_consent", "accepted"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := openStore(t, path)
	value, ok, err := second.Load(context.Background(), "visitor", "cookie_consent")
	if err != nil || !ok || value != "accepted" {
		t.Fatalf("Load() after reopen = (%q, %t, %v)", value, ok, err)
	}
}

func TestStoreBacksOriginViews(t *testing.T) {
	t.Parallel()

	origin := kvstore.NewOrigin(openStore(t, filepath.Join(t.TempDir(), "kv.db")))
	writer := origin.View("visitor")
	reader := origin.View("visitor")
	defer writer.Close()
	defer reader.Close()

	var got kvstore.Change
	reader.Subscribe("cookie_consent", func(c kvstore.Change) { got = c })
	if err := writer.Set(context.Background(), "cookie_consent", "accepted"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got.Value != "accepted" || !got.Present {
		t.Fatalf("change = %+v", got)
	}
}

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store
}
