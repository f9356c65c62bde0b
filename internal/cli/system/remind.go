package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/reminder"
)

type RemindCmd struct {
	Daemon bool `help:"Keep running and remind on the configured interval." short:"d"`
	DryRun bool `help:"Print the reminder instead of sending it." name:"dry-run"`
}

func (cmd *RemindCmd) Run(ctx *cli.Context) error {
	r := reminder.New(ctx.Prefs, ctx.Notifier)
	r.DryRun = cmd.DryRun

	if cmd.Daemon {
		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Printf("💧 Hydration reminders running (%s). Press Ctrl+C to stop.\n", r.Schedule())
		return r.Run(runCtx)
	}

	sent, err := r.Check(context.Background())
	if err != nil {
		return err
	}
	switch {
	case sent && cmd.DryRun:
		fmt.Println(r.Message())
	case sent:
		fmt.Println("✓ Hydration reminder sent")
	case !ctx.Prefs.AreHydrationRemindersEnabled():
		fmt.Println("Hydration reminders are turned off.")
	default:
		fmt.Println("✓ Daily water goal reached, no reminder needed")
	}
	return nil
}
