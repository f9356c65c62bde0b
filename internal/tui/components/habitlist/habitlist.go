package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mindflow/internal/models"
)

// ToggleHabitMsg asks the parent model to flip today's completion.
type ToggleHabitMsg struct {
	ID string
}

type Item struct {
	Habit  models.Habit
	Done   bool
	Streak int
	Week   string
}

func (i Item) Title() string {
	mark := "○"
	if i.Done {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s %s", mark, i.Habit.Emoji, i.Habit.Name)
}

func (i Item) Description() string {
	desc := string(i.Habit.Frequency) + " | " + i.Week
	if i.Streak > 0 {
		desc += fmt.Sprintf(" | 🔥 %d day streak", i.Streak)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle today"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

// Selected returns the highlighted item, if any.
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Toggle) {
		if i, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No habits yet.\n  Add one with 'mindflow habit add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
