// Package tui is the interactive "today" screen: toggle habits, log water and
// record a mood without leaving the terminal.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindflow/internal/clock"
	"github.com/julianstephens/mindflow/internal/prefs"
	"github.com/julianstephens/mindflow/internal/tui/components/habitlist"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateWater
	StateMood
)

var tabTitles = []string{"Habits", "Water", "Mood"}

type Model struct {
	prefs     *prefs.Manager
	clock     clock.Clock
	state     SessionState
	keys      KeyMap
	help      help.Model
	habitList habitlist.Model
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

func NewModel(p *prefs.Manager, c clock.Clock) Model {
	m := Model{
		prefs:     p,
		clock:     clock.Or(c),
		state:     StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: habitlist.New(nil, 0, 0),
	}
	m.refreshHabits()
	return m
}

func (m *Model) refreshHabits() {
	calc := m.prefs.Calculator()
	habits := m.prefs.Habits()
	items := make([]habitlist.Item, len(habits))
	for i, h := range habits {
		items[i] = habitlist.Item{
			Habit:  h,
			Done:   calc.IsCompletedToday(h),
			Streak: calc.Streak(h),
			Week:   calc.WeeklyProgressLabel(h),
		}
	}
	m.habitList.SetItems(items)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits:
		keys = append(keys, habitlist.DefaultKeyMap().Toggle)
	case StateWater:
		keys = append(keys, m.keys.Water)
	case StateMood:
		keys = append(keys, m.keys.Mood)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}
