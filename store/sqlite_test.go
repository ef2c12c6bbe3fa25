package store

import (
	"context"
	"path/filepath"
	"testing"
)

// Compile-time check that SQLiteStore implements CredentialStore.
var _ CredentialStore = (*SQLiteStore)(nil)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, KeyUserToken, "tok-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, KeyUserToken)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "tok-1" {
		t.Errorf("Get = %q, want tok-1", got)
	}

	// Overwrite.
	if err := s.Set(ctx, KeyUserToken, "tok-2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = s.Get(ctx, KeyUserToken)
	if got != "tok-2" {
		t.Errorf("Get after overwrite = %q, want tok-2", got)
	}

	if err := s.Remove(ctx, KeyUserToken); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got, err = s.Get(ctx, KeyUserToken)
	if err != nil {
		t.Fatalf("Get after remove: %v", err)
	}
	if got != "" {
		t.Errorf("Get after remove = %q, want empty", got)
	}
}

func TestAbsentKeyIsNotAnError(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Get(context.Background(), "never-set")
	if err != nil {
		t.Fatalf("Get absent key: %v", err)
	}
	if got != "" {
		t.Errorf("Get absent key = %q, want empty", got)
	}
	if err := s.Remove(context.Background(), "never-set"); err != nil {
		t.Fatalf("Remove absent key: %v", err)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, KeyUserToken, "tok")
	s.Set(ctx, KeyThemePreference, "dark")

	if err := s.Remove(ctx, KeyUserToken); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	pref, _ := s.Get(ctx, KeyThemePreference)
	if pref != "dark" {
		t.Errorf("preference = %q, want dark after token removal", pref)
	}
}
