package settings

import (
	"fmt"

	"github.com/julianstephens/mindflow/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	HydrationReminders *bool  `help:"Enable or disable hydration reminders."`
	ReminderInterval   *int64 `help:"Seconds between hydration reminders."`
	WaterLimit         *int   `help:"Daily water limit in ml."`
	StepGoal           *int   `help:"Daily step goal."`
	DarkMode           *bool  `help:"Enable or disable dark mode."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	p := ctx.Prefs

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Hydration Reminders:  %v\n", p.AreHydrationRemindersEnabled())
		fmt.Printf("  Reminder Interval:    %d s\n", p.ReminderInterval())
		fmt.Printf("  Daily Water Limit:    %d ml\n", p.DailyWaterLimit())
		fmt.Printf("  Daily Step Goal:      %d\n", p.StepGoal())
		fmt.Printf("  Dark Mode:            %v\n", p.IsDarkModeEnabled())
		return nil
	}

	updated := false
	if c.HydrationReminders != nil {
		p.SetHydrationRemindersEnabled(*c.HydrationReminders)
		updated = true
	}
	if c.ReminderInterval != nil {
		if err := p.SetReminderInterval(*c.ReminderInterval); err != nil {
			return err
		}
		updated = true
	}
	if c.WaterLimit != nil {
		if err := p.SetDailyWaterLimit(*c.WaterLimit); err != nil {
			return err
		}
		updated = true
	}
	if c.StepGoal != nil {
		if err := p.SetStepGoal(*c.StepGoal); err != nil {
			return err
		}
		updated = true
	}
	if c.DarkMode != nil {
		p.SetDarkModeEnabled(*c.DarkMode)
		updated = true
	}

	if updated {
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
