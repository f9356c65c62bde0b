package system

import (
	"strings"
	"testing"
)

func TestRemindCmd(t *testing.T) {
	ctx := setupTestDB(t)
	sender := &fakeSender{}
	ctx.Notifier = sender

	if _, err := ctx.Prefs.AddWaterIntake(750); err != nil {
		t.Fatalf("failed to add water: %v", err)
	}

	if err := (&RemindCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("dry run must not notify")
	}

	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	if len(sender.sent) != 1 || !strings.HasSuffix(sender.sent[0], "(750/2000 ml)") {
		t.Fatalf("sent = %v, want one reminder at 750/2000", sender.sent)
	}
}

func TestRemindCmd_NotDue(t *testing.T) {
	ctx := setupTestDB(t)
	sender := &fakeSender{}
	ctx.Notifier = sender

	ctx.Prefs.SetHydrationRemindersEnabled(false)
	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}

	ctx.Prefs.SetHydrationRemindersEnabled(true)
	if err := ctx.Prefs.SetWaterIntakeToday(2000); err != nil {
		t.Fatalf("failed to set water: %v", err)
	}
	if err := (&RemindCmd{}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}

	if len(sender.sent) != 0 {
		t.Errorf("no reminder expected, got %v", sender.sent)
	}
}
