package storage

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestMigrationsIdempotent runs Open twice on the same database and verifies
// the schema_version count stays correct (migration not re-applied).
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer s2.Close()

	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(v1) != len(v2) {
		t.Errorf("migration count changed: %d -> %d", len(v1), len(v2))
	}
}

func TestMigrationsOrdered(t *testing.T) {
	s := openTestStore(t)

	versions, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	if len(versions) == 0 {
		t.Fatal("expected at least one applied migration")
	}
	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Errorf("migrations not in ascending order: %v", versions)
			break
		}
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSetGetReplace(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("cc_profile", `{"name":"a"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("cc_profile", `{"name":"b"}`); err != nil {
		t.Fatalf("Set (replace): %v", err)
	}

	got, err := s.Get("cc_profile")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"name":"b"}` {
		t.Errorf("Get = %q, want replaced value", got)
	}

	entries, err := s.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after replace, got %d", len(entries))
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("token", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("token"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op.
	if err := s.Delete("token"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

// TestSurvivesReopen verifies values persist across process restarts.
func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s1.Set("user_id", "u-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get("user_id")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != "u-1" {
		t.Errorf("Get = %q, want %q", got, "u-1")
	}
}

func TestEntriesOrdered(t *testing.T) {
	s := openTestStore(t)

	for _, k := range []string{"user_id", "cc_profile", "token"} {
		if err := s.Set(k, "v"); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	entries, err := s.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []string{"cc_profile", "token", "user_id"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Key != want[i] {
			t.Errorf("entries[%d].Key = %q, want %q", i, e.Key, want[i])
		}
		if e.UpdatedAt.IsZero() {
			t.Errorf("entries[%d].UpdatedAt is zero", i)
		}
	}
}
