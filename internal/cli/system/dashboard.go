package system

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/models"
)

type DashboardCmd struct{}

func (cmd *DashboardCmd) Run(ctx *cli.Context) error {
	fmt.Println(renderDashboard(ctx))
	return nil
}

func renderDashboard(ctx *cli.Context) string {
	p := ctx.Prefs
	now := ctx.Clock.Now()

	title := "🌿 MindFlow"
	if u, ok := p.User(); ok && p.IsLoggedIn() {
		title += " · " + u.Name
	}

	habits := p.Habits()
	done := 0
	for _, h := range habits {
		if p.Calculator().IsCompletedToday(h) {
			done++
		}
	}
	completion := p.TodaysHabitCompletion()

	water, waterLimit := p.WaterIntakeToday(), p.DailyWaterLimit()
	steps, stepGoal := p.StepCountToday(), p.StepGoal()

	mood := "no entry yet"
	if e, ok := p.TodaysMoodEntry(); ok {
		avg := p.Calculator().AverageMoodToday(p.MoodEntries())
		mood = fmt.Sprintf("%s %s (avg %.1f)", e.Emoji, models.MoodLabel(e.MoodLevel), avg)
	}

	lines := []string{
		cli.TitleStyle.Render(title),
		cli.MutedStyle.Render(now.Format("Monday, " + constants.DateFormat)),
		"",
		fmt.Sprintf("Habits  %s %d/%d (%s)", cli.Bar(completion, 20), done, len(habits), cli.Percent(completion)),
		fmt.Sprintf("Water   %s %d/%d ml", cli.Bar(percentOf(water, waterLimit), 20), water, waterLimit),
		fmt.Sprintf("Steps   %s %d/%d", cli.Bar(percentOf(steps, stepGoal), 20), steps, stepGoal),
		fmt.Sprintf("Mood    %s", mood),
	}
	return cli.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func percentOf(v, of int) float64 {
	if of <= 0 {
		return 0
	}
	return float64(v) / float64(of) * 100
}
