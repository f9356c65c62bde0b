package system

import (
	"testing"

	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/storage"
)

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx := setupTestDB(t)
	if _, err := ctx.Prefs.AddWaterIntake(500); err != nil {
		t.Fatalf("failed to add water: %v", err)
	}

	// Missing backups and a missing tray app are warnings, not failures
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx := setupTestDB(t)
	ctx.PerformAutomaticBackup()

	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("expected backups to be found: %v", err)
	}
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed: %v", err)
	}
}

func TestDoctorCmd_MissingBackups(t *testing.T) {
	ctx := setupTestDB(t)
	if err := checkBackupsPresent(ctx); err == nil {
		t.Error("expected a warning for a database without backups")
	}
}

func TestDoctorCmd_CorruptedData(t *testing.T) {
	backend := storage.NewMemoryStore()
	backend.Seed(map[string]models.Value{
		constants.KeyHabits:      models.StringValue("{not json"),
		constants.KeyMoodEntries: models.StringValue("[]"),
	})
	ctx := newContext(t, backend)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail on undecodable habits")
	}
}

func TestDoctorCmd_UnreachableStorage(t *testing.T) {
	backend := storage.NewMemoryStore()
	backend.FailLoad = true
	ctx := newContext(t, backend)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail when storage cannot be read")
	}
}

func TestCheckStoredData(t *testing.T) {
	tests := []struct {
		name    string
		rows    map[string]models.Value
		wantErr bool
	}{
		{"empty", map[string]models.Value{}, false},
		{"valid", map[string]models.Value{
			constants.KeyHabits:      models.StringValue("[]"),
			constants.KeyMoodEntries: models.StringValue(""),
			constants.KeyUserData:    models.StringValue(`{"name":"Ada","email":"ada@example.com"}`),
		}, false},
		{"bad moods", map[string]models.Value{
			constants.KeyMoodEntries: models.StringValue("[{"),
		}, true},
		{"bad user", map[string]models.Value{
			constants.KeyUserData: models.StringValue("nope"),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkStoredData(tt.rows); (err != nil) != tt.wantErr {
				t.Errorf("checkStoredData() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
