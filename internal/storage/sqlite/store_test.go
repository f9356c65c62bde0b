package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/mindflow/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	db := store.GetDB()
	if err := store.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if store.GetDB() != db {
		t.Error("second Init() should keep the open connection")
	}
}

func TestPutLoadDelete(t *testing.T) {
	store := setupTestStore(t)

	want := map[string]models.Value{
		"is_logged_in":            models.BoolValue(true),
		"daily_water_limit":       models.IntValue(2500),
		"reminder_interval":       models.Int64Value(3600),
		"habits":                  models.StringValue(`[{"id":"a","emoji":"🏃"}]`),
		"water_intake_2026-10-16": models.IntValue(750),
	}
	for k, v := range want {
		if err := store.Put(k, v); err != nil {
			t.Fatalf("failed to put %s: %v", k, err)
		}
	}

	// Overwrite keeps one row per key
	if err := store.Put("daily_water_limit", models.IntValue(3000)); err != nil {
		t.Fatalf("failed to overwrite: %v", err)
	}
	want["daily_water_limit"] = models.IntValue(3000)

	got, err := store.LoadAll()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadAll() mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete("habits"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	got, _ = store.LoadAll()
	if _, ok := got["habits"]; ok {
		t.Error("deleted key still present")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}
	got, _ = store.LoadAll()
	if len(got) != 0 {
		t.Errorf("expected empty store after Clear, got %d rows", len(got))
	}
}

func TestLoadAllSkipsUnreadableRows(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetDB().Exec("INSERT INTO kv (key, kind, value) VALUES ('step_goal', 'int', 'lots')"); err != nil {
		t.Fatalf("failed to insert bad row: %v", err)
	}
	if err := store.Put("step_goal_ok", models.IntValue(10)); err != nil {
		t.Fatalf("failed to put: %v", err)
	}

	got, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if _, ok := got["step_goal"]; ok {
		t.Error("unparseable row should be skipped")
	}
	if got["step_goal_ok"].Int != 10 {
		t.Error("readable row should survive a bad neighbour")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("failed to init: %v", err)
	}
	if err := first.Put("dark_mode_enabled", models.BoolValue(true)); err != nil {
		t.Fatalf("failed to put: %v", err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer second.Close()

	got, err := second.LoadAll()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if !got["dark_mode_enabled"].Bool {
		t.Error("value did not survive reopen")
	}
}

func TestOperationsBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never.db"))
	if _, err := store.LoadAll(); err == nil {
		t.Error("LoadAll() before Init should fail")
	}
	if err := store.Put("k", models.IntValue(1)); err == nil {
		t.Error("Put() before Init should fail")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() before Init = %v, want nil", err)
	}
}
