package habits

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/clock"
	apperrors "github.com/julianstephens/mindflow/internal/errors"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/prefs"
	"github.com/julianstephens/mindflow/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *clock.Fixed) {
	t.Helper()
	clk := clock.NewFixed(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC))
	ctx := cli.New(sqlite.NewStore(filepath.Join(t.TempDir(), "test.db")), clk,
		prefs.WithBcryptCost(bcrypt.MinCost))
	t.Cleanup(func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("failed to close context: %v", err)
		}
	})
	return ctx, clk
}

func TestHabitAddCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &HabitAddCmd{Name: "Meditate", Frequency: "Weekly", Reminder: "07:30"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	habits := ctx.Prefs.Habits()
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	h := habits[0]
	if h.Frequency != models.FrequencyWeekly || h.Emoji != "🎯" || h.Icon != "🎯" {
		t.Errorf("unexpected defaults: %+v", h)
	}
	if h.ReminderTime == nil || *h.ReminderTime != "07:30" {
		t.Errorf("reminder time = %v", h.ReminderTime)
	}
	if h.CreatedDate != "2026-10-16" {
		t.Errorf("created date = %s", h.CreatedDate)
	}

	// Names are unique regardless of case
	if err := (&HabitAddCmd{Name: "meditate", Frequency: "daily"}).Run(ctx); err == nil {
		t.Error("expected duplicate name to be rejected")
	}
}

func TestHabitAddCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tests := []struct {
		name string
		cmd  HabitAddCmd
	}{
		{"bad frequency", HabitAddCmd{Name: "Run", Frequency: "hourly"}},
		{"bad reminder", HabitAddCmd{Name: "Run", Frequency: "daily", Reminder: "7pm"}},
		{"blank name", HabitAddCmd{Name: "  ", Frequency: "daily"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if n := len(ctx.Prefs.Habits()); n != 0 {
		t.Errorf("invalid habits were stored: %d", n)
	}
}

func TestHabitToggleCmd(t *testing.T) {
	ctx, clk := setupTestDB(t)
	if err := (&HabitAddCmd{Name: "Read", Frequency: "daily"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	toggle := &HabitToggleCmd{Habit: "read"}
	if err := toggle.Run(ctx); err != nil {
		t.Fatalf("habit toggle failed: %v", err)
	}
	clk.Advance(24 * time.Hour)
	if err := toggle.Run(ctx); err != nil {
		t.Fatalf("habit toggle failed: %v", err)
	}

	h, err := ctx.Prefs.FindHabit("Read")
	if err != nil {
		t.Fatalf("failed to find habit: %v", err)
	}
	if got := ctx.Prefs.Calculator().Streak(h); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}

	// Toggling again undoes today
	if err := toggle.Run(ctx); err != nil {
		t.Fatalf("habit toggle failed: %v", err)
	}
	h, _ = ctx.Prefs.FindHabit("Read")
	if ctx.Prefs.Calculator().IsCompletedToday(h) {
		t.Error("second toggle should undo today's completion")
	}

	if err := (&HabitToggleCmd{Habit: "Missing"}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("toggle unknown habit error = %v, want ErrNotFound", err)
	}
}

func TestHabitListAndShowCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Errorf("habit list on empty store failed: %v", err)
	}

	if err := (&HabitAddCmd{Name: "Walk", Frequency: "daily"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	if err := (&HabitToggleCmd{Habit: "Walk"}).Run(ctx); err != nil {
		t.Fatalf("habit toggle failed: %v", err)
	}
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Errorf("habit list failed: %v", err)
	}
	if err := (&HabitShowCmd{Habit: "Walk"}).Run(ctx); err != nil {
		t.Errorf("habit show failed: %v", err)
	}
}

func TestHabitDeleteCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&HabitAddCmd{Name: "Journal", Frequency: "daily"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	if err := (&HabitDeleteCmd{Habit: "Journal"}).Run(ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	if n := len(ctx.Prefs.Habits()); n != 0 {
		t.Errorf("expected no habits, got %d", n)
	}
	if err := (&HabitDeleteCmd{Habit: "Journal"}).Run(ctx); err == nil {
		t.Error("deleting a missing habit should fail")
	}
}

func TestLatest(t *testing.T) {
	if got := latest([]string{"2026-10-14", "2026-10-16", "2026-10-15"}); got != "2026-10-16" {
		t.Errorf("latest() = %s", got)
	}
}
