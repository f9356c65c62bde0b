package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/mindflow/internal/clock"
	"github.com/julianstephens/mindflow/internal/prefs"
	"github.com/julianstephens/mindflow/internal/storage"
	"github.com/julianstephens/mindflow/internal/storage/sqlite"
)

func TestSQLiteBackupsOnly(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mindflow.db")
	ctx := New(sqlite.NewStore(dbPath), clock.NewFixed(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)),
		prefs.WithBcryptCost(bcrypt.MinCost))
	defer ctx.Close()

	if path, ok := ctx.SQLitePath(); !ok || path != dbPath {
		t.Errorf("SQLitePath() = %q, %v", path, ok)
	}

	if err := ctx.Prefs.SetStepGoal(9000); err != nil {
		t.Fatalf("failed to set step goal: %v", err)
	}
	ctx.PerformAutomaticBackup()

	mgr, ok := ctx.Backups()
	if !ok {
		t.Fatal("SQLite backend should support backups")
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 automatic backup, got %d", len(backups))
	}

	mem := New(storage.NewMemoryStore(), nil)
	defer mem.Close()
	if _, ok := mem.Backups(); ok {
		t.Error("memory backend should not support backups")
	}
	mem.PerformAutomaticBackup()
}

func TestBar(t *testing.T) {
	tests := []struct {
		pct  float64
		full int
	}{
		{0, 0},
		{50, 5},
		{42.857, 4},
		{100, 10},
		{250, 10},
		{-5, 0},
	}
	for _, tt := range tests {
		bar := Bar(tt.pct, 10)
		if got := strings.Count(bar, "█"); got != tt.full {
			t.Errorf("Bar(%v) has %d full cells, want %d", tt.pct, got, tt.full)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("Bar(%v) width = %d, want 10", tt.pct, got)
		}
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"Habit", "Streak"}, [][]string{{"Stretch", "3"}, {"Read", "0"}})
	for _, want := range []string{"Habit", "Streak", "Stretch", "Read"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
