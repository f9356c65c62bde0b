// Package reminder sends hydration reminders through the tray notifier while
// the user is below their daily water limit.
package reminder

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/logger"
	"github.com/julianstephens/mindflow/internal/notifier"
)

// Messages are picked at random for each reminder.
var Messages = []string{
	"💧 Stay hydrated, you're doing great!",
	"💧 Every sip counts! Keep up the good work!",
	"💧 Your body thanks you for staying hydrated! 🌊",
	"💧 Remember to drink water, your future self will thank you!",
	"💧 Hydration = Energy! Let's keep that momentum going! ⚡",
	"💧 You're crushing your hydration goals today! 💪",
	"💧 Small sips, big impact! Keep hydrated! 🌟",
	"💧 Water: Your secret weapon for feeling amazing! 💫",
}

// Source is the slice of settings a reminder reads. *prefs.Manager satisfies it.
type Source interface {
	AreHydrationRemindersEnabled() bool
	WaterIntakeToday() int
	DailyWaterLimit() int
	ReminderInterval() int64
}

// Reloader is implemented by sources that can re-read shared state written
// by other processes.
type Reloader interface {
	Reload() error
}

// ShouldRemind reports whether a reminder is due.
func ShouldRemind(enabled bool, intake, limit int) bool {
	return enabled && intake < limit
}

type Reminder struct {
	src    Source
	sender notifier.Sender
	pick   func(n int) int
	DryRun bool
}

func New(src Source, sender notifier.Sender) *Reminder {
	return &Reminder{src: src, sender: sender, pick: rand.IntN}
}

// Message renders the reminder text for the current intake.
func (r *Reminder) Message() string {
	msg := Messages[r.pick(len(Messages))]
	return fmt.Sprintf("%s (%d/%d ml)", msg, r.src.WaterIntakeToday(), r.src.DailyWaterLimit())
}

// Check sends one reminder if one is due. In dry-run mode the message is
// logged instead of sent.
func (r *Reminder) Check(ctx context.Context) (bool, error) {
	if !ShouldRemind(r.src.AreHydrationRemindersEnabled(), r.src.WaterIntakeToday(), r.src.DailyWaterLimit()) {
		logger.Debug("no hydration reminder due")
		return false, nil
	}

	msg := r.Message()
	if r.DryRun {
		logger.Info("hydration reminder (dry run)", "message", msg)
		return true, nil
	}
	if err := r.sender.Notify(ctx, msg); err != nil {
		return false, fmt.Errorf("failed to send hydration reminder: %w", err)
	}
	logger.Debug("hydration reminder sent", "message", msg)
	return true, nil
}

// Schedule is the cron spec for the stored reminder interval.
func (r *Reminder) Schedule() string {
	interval := r.src.ReminderInterval()
	if interval <= 0 {
		interval = constants.DefaultReminderIntervalSec
	}
	return fmt.Sprintf("@every %ds", interval)
}

// Run checks on every interval until ctx is cancelled, reloading the source
// first when it is a Reloader. Overlapping checks are skipped. Send failures
// are logged and do not stop the loop.
func (r *Reminder) Run(ctx context.Context) error {
	l := cronLogger{}
	c := cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)

	spec := r.Schedule()
	if _, err := c.AddFunc(spec, func() {
		if rl, ok := r.src.(Reloader); ok {
			if err := rl.Reload(); err != nil {
				logger.Warn("Failed to reload settings", "error", err)
			}
		}
		if _, err := r.Check(ctx); err != nil {
			logger.Warn("hydration reminder failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	logger.Info("hydration reminders started", "schedule", spec)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("hydration reminders stopped")
	return nil
}

// cronLogger routes cron's own logging into the app logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
