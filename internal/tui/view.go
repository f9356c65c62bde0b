package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = m.habitList.View()
	case StateWater:
		content = docStyle.Render(m.viewWater())
	case StateMood:
		content = docStyle.Render(m.viewMood())
	}

	var footer string
	switch {
	case m.err != nil:
		footer = errorStyle.Render("❌ " + m.err.Error())
	case m.status != "":
		footer = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		footer,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewWater() string {
	intake, limit := m.prefs.WaterIntakeToday(), m.prefs.DailyWaterLimit()
	pct := 0.0
	if limit > 0 {
		pct = float64(intake) / float64(limit) * 100
	}
	series := m.prefs.WaterIntakeForLast7Days()
	return strings.Join([]string{
		fmt.Sprintf("Today: %d/%d ml", intake, limit),
		cli.Bar(pct, 30),
		"",
		fmt.Sprintf("Weekly average: %.0f ml", stats.WeeklyAverage(series)),
	}, "\n")
}

func (m Model) viewMood() string {
	lines := []string{"How are you feeling?", ""}
	for level := 1; level <= 5; level++ {
		lines = append(lines, fmt.Sprintf("[%d] %s %s", level, models.MoodEmoji(level), models.MoodLabel(level)))
	}
	if e, ok := m.prefs.TodaysMoodEntry(); ok {
		lines = append(lines, "", fmt.Sprintf("Latest today: %s %s at %s", e.Emoji, models.MoodLabel(e.MoodLevel), e.Time))
	}
	return strings.Join(lines, "\n")
}
