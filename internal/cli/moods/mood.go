package moods

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/models"
)

type MoodCmd struct {
	Add    MoodAddCmd    `cmd:"" help:"Record how you feel."`
	List   MoodListCmd   `cmd:"" help:"List journal entries, newest first."`
	Trend  MoodTrendCmd  `cmd:"" help:"Show the daily average mood for the last week."`
	Delete MoodDeleteCmd `cmd:"" help:"Delete a journal entry."`
}

type MoodAddCmd struct {
	Level int      `arg:"" help:"Mood from 1 (very sad) to 5 (very happy)."`
	Note  string   `help:"Optional note."`
	Tags  []string `help:"Comma-separated tags." sep:","`
	Emoji string   `help:"Override the emoji for this level."`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	var note *string
	if n := strings.TrimSpace(c.Note); n != "" {
		note = &n
	}
	entry := models.NewMoodEntry(c.Level, c.Emoji, note, c.Tags, ctx.Clock.Now())

	if err := ctx.Prefs.AddMoodEntry(entry); err != nil {
		return fmt.Errorf("failed to add mood entry: %w", err)
	}

	fmt.Printf("✓ Recorded %s %s at %s\n", entry.Emoji, models.MoodLabel(entry.MoodLevel), entry.Time)
	return nil
}

type MoodListCmd struct {
	Limit int `help:"Show at most this many entries (0 for all)." default:"20"`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	entries := ctx.Prefs.MoodEntries()
	if len(entries) == 0 {
		fmt.Println("No mood entries found.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		note := ""
		if e.Note != nil {
			note = *e.Note
		}
		rows = append(rows, []string{
			e.Date + " " + e.Time,
			e.Emoji + " " + models.MoodLabel(e.MoodLevel),
			note,
			strings.Join(e.Tags, ", "),
			e.ID[:min(8, len(e.ID))],
		})
	}
	fmt.Println(cli.Table([]string{"When", "Mood", "Note", "Tags", "ID"}, rows))
	return nil
}

type MoodTrendCmd struct{}

func (c *MoodTrendCmd) Run(ctx *cli.Context) error {
	fmt.Println(cli.TitleStyle.Render("Mood, last 7 days"))
	for _, day := range ctx.Prefs.MoodForLast7Days() {
		level := int(day.Value + 0.5)
		fmt.Printf("%s  %s %.1f %s\n", day.Date, cli.Bar(day.Value*20, 10), day.Value, models.MoodEmoji(level))
	}
	if e, ok := ctx.Prefs.TodaysMoodEntry(); ok {
		fmt.Printf("\nLatest today: %s %s at %s\n", e.Emoji, models.MoodLabel(e.MoodLevel), e.Time)
	}
	return nil
}

type MoodDeleteCmd struct {
	ID string `arg:"" help:"Entry ID or unique ID prefix."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	var matches []models.MoodEntry
	for _, e := range ctx.Prefs.MoodEntries() {
		if strings.HasPrefix(e.ID, c.ID) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("no mood entry matches %q", c.ID)
	case 1:
	default:
		return fmt.Errorf("%q matches %d entries; use a longer prefix", c.ID, len(matches))
	}

	if err := ctx.Prefs.DeleteMoodEntry(matches[0].ID); err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	fmt.Printf("✓ Deleted mood entry from %s %s\n", matches[0].Date, matches[0].Time)
	return nil
}
