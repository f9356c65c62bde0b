package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/codec"
	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/keyring"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/notifier"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: backend reachable
	rows, err := checkBackendReachable(ctx)
	if err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	// Check 2: stored collections decode (only if the backend is reachable)
	if rows != nil {
		if err := checkStoredData(rows); err != nil {
			fmt.Printf("❌ Stored data: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Stored data: OK\n")
		}
	} else {
		fmt.Printf("⊘ Stored data: SKIPPED (storage not reachable)\n")
	}

	// Check 3: backups present (warning only)
	if _, ok := ctx.SQLitePath(); ok {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	} else {
		fmt.Printf("⊘ Backups present: SKIPPED (backups only apply to SQLite)\n")
	}

	// Check 4: keyring (informational)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("ℹ OS keyring: not available, pass --config to use PostgreSQL\n")
	}

	// Check 5: tray app (informational)
	if err := checkTrayLockfile(); err != nil {
		fmt.Printf("ℹ Tray app: %v\n", err)
	} else {
		fmt.Printf("✓ Tray app: OK\n")
	}

	fmt.Println()
	if hasError {
		return errors.New("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkBackendReachable(ctx *cli.Context) (map[string]models.Value, error) {
	if err := ctx.Prefs.Reload(); err != nil {
		return nil, err
	}
	rows, err := ctx.Backend.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read stored values: %w", err)
	}
	return rows, nil
}

func checkStoredData(rows map[string]models.Value) error {
	var result *multierror.Error
	if v, ok := rows[constants.KeyHabits]; ok {
		if _, err := codec.Decode[models.Habit](v.Str); err != nil {
			result = multierror.Append(result, fmt.Errorf("habits: %w", err))
		}
	}
	if v, ok := rows[constants.KeyMoodEntries]; ok {
		if _, err := codec.Decode[models.MoodEntry](v.Str); err != nil {
			result = multierror.Append(result, fmt.Errorf("mood entries: %w", err))
		}
	}
	if v, ok := rows[constants.KeyUserData]; ok {
		if _, _, err := codec.DecodeOne[models.User](v.Str); err != nil {
			result = multierror.Append(result, fmt.Errorf("user profile: %w", err))
		}
	}
	return result.ErrorOrNil()
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, _ := ctx.Backups()
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.BackupDir())
	}
	return nil
}

func checkTrayLockfile() error {
	dir, err := notifier.GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, constants.NotifierLockfileName)); err != nil {
		return fmt.Errorf("%s lockfile not found, reminders will not be delivered", constants.TrayAppExecutable)
	}
	return nil
}
