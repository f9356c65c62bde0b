package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case habitlist.ToggleHabitMsg:
		h, err := m.prefs.ToggleHabitToday(msg.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if m.prefs.Calculator().IsCompletedToday(h) {
			m.setStatus(fmt.Sprintf("✓ %s done for today", h.Name))
		} else {
			m.setStatus(fmt.Sprintf("○ %s marked not done", h.Name))
		}
		m.refreshHabits()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		}

		switch m.state {
		case StateWater:
			if key.Matches(msg, m.keys.Water) {
				total, err := m.prefs.AddWaterIntake(constants.DefaultGlassML)
				if err != nil {
					m.setError(err)
				} else {
					m.setStatus(fmt.Sprintf("💧 +%d ml, %d/%d ml today", constants.DefaultGlassML, total, m.prefs.DailyWaterLimit()))
				}
			}
			return m, nil
		case StateMood:
			if key.Matches(msg, m.keys.Mood) {
				level, _ := strconv.Atoi(msg.String())
				entry := models.NewMoodEntry(level, "", nil, nil, m.clock.Now())
				if err := m.prefs.AddMoodEntry(entry); err != nil {
					m.setError(err)
				} else {
					m.setStatus(fmt.Sprintf("✓ Recorded %s %s", entry.Emoji, models.MoodLabel(level)))
				}
			}
			return m, nil
		}
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status, m.err = s, nil
}

func (m *Model) setError(err error) {
	m.status, m.err = "", err
}
