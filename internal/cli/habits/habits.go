package habits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with streaks and weekly progress."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done today, or undo it."`
	Show   HabitShowCmd   `cmd:"" help:"Show one habit in detail."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Emoji     string `help:"Emoji shown next to the habit."`
	Frequency string `help:"daily, weekly or monthly." default:"daily"`
	Reminder  string `help:"Reminder time (HH:MM)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Prefs.FindHabit(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	freq, err := models.ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}
	habit := models.NewHabit(c.Name, c.Emoji, freq, ctx.Clock.Now())
	if c.Reminder != "" {
		habit.ReminderTime = &c.Reminder
	}

	if err := ctx.Prefs.AddHabit(habit); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	fmt.Printf("✓ Added habit: %s %s\n", habit.Emoji, habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Prefs.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	calc := ctx.Prefs.Calculator()
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		done := " "
		if calc.IsCompletedToday(h) {
			done = "✓"
		}
		rows = append(rows, []string{
			done,
			h.Emoji + " " + h.Name,
			string(h.Frequency),
			strconv.Itoa(calc.Streak(h)),
			cli.Bar(calc.ProgressPercentage(h), 7) + " " + cli.Percent(calc.ProgressPercentage(h)),
		})
	}

	fmt.Println(cli.Table([]string{"Today", "Habit", "Frequency", "Streak", "Last 7 days"}, rows))
	fmt.Printf("%s completed today\n", cli.Percent(ctx.Prefs.TodaysHabitCompletion()))
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Prefs.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	updated, err := ctx.Prefs.ToggleHabitToday(habit.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	calc := ctx.Prefs.Calculator()
	if calc.IsCompletedToday(updated) {
		fmt.Printf("✓ %s done for today (streak: %d)\n", updated.Name, calc.Streak(updated))
	} else {
		fmt.Printf("○ %s marked not done for today\n", updated.Name)
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Prefs.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	calc := ctx.Prefs.Calculator()

	fmt.Println(cli.TitleStyle.Render(h.Emoji + " " + h.Name))
	fmt.Printf("ID:         %s\n", h.ID)
	fmt.Printf("Frequency:  %s\n", h.Frequency)
	fmt.Printf("Created:    %s\n", h.CreatedDate)
	if h.ReminderTime != nil {
		fmt.Printf("Reminder:   %s\n", *h.ReminderTime)
	}
	fmt.Printf("Streak:     %d\n", calc.Streak(h))
	fmt.Printf("This week:  %s\n", calc.WeeklyProgressLabel(h))
	if n := len(h.CompletionDates); n > 0 {
		fmt.Printf("Completed:  %d days, most recently %s\n", n, latest(h.CompletionDates))
	}
	return nil
}

func latest(dates []string) string {
	last := ""
	for _, d := range dates {
		if strings.Compare(d, last) > 0 {
			last = d
		}
	}
	return last
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Prefs.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Prefs.DeleteHabit(habit.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	fmt.Printf("✓ Deleted habit: %s\n", habit.Name)
	return nil
}
