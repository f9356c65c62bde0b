package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mindflow/internal/constants"
)

// Frequency is how often a habit is meant to be performed
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ParseFrequency accepts any casing of daily, weekly or monthly.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return f, nil
	}
	return "", fmt.Errorf("invalid frequency %q (expected daily, weekly or monthly)", s)
}

// Habit field names follow the persisted blob layout, so existing exports decode as-is.
type Habit struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Emoji           string    `json:"emoji"`
	Icon            string    `json:"icon"`
	Frequency       Frequency `json:"frequency"`
	ReminderTime    *string   `json:"reminderTime"`    // HH:MM
	CompletionDates []string  `json:"completionDates"` // YYYY-MM-DD, unique
	CreatedDate     string    `json:"createdDate"`     // YYYY-MM-DD
}

// NewHabit builds a habit with a fresh id. An empty emoji gets the default glyph and
// the icon mirrors the emoji.
func NewHabit(name, emoji string, freq Frequency, created time.Time) Habit {
	if emoji == "" {
		emoji = constants.DefaultHabitEmoji
	}
	return Habit{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(name),
		Emoji:           emoji,
		Icon:            emoji,
		Frequency:       freq,
		CompletionDates: []string{},
		CreatedDate:     created.Format(constants.DateFormat),
	}
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if h.ID == "" {
		return fmt.Errorf("habit id cannot be empty")
	}
	if _, err := ParseFrequency(string(h.Frequency)); err != nil {
		return err
	}
	if h.ReminderTime != nil {
		if _, err := time.Parse(constants.TimeFormat, *h.ReminderTime); err != nil {
			return fmt.Errorf("invalid reminder time (expected HH:MM): %w", err)
		}
	}
	seen := make(map[string]struct{}, len(h.CompletionDates))
	for _, d := range h.CompletionDates {
		if _, err := time.Parse(constants.DateFormat, d); err != nil {
			return fmt.Errorf("invalid completion date %q (expected YYYY-MM-DD)", d)
		}
		if _, dup := seen[d]; dup {
			return fmt.Errorf("completion date %s listed more than once", d)
		}
		seen[d] = struct{}{}
	}
	return nil
}

// Clone returns a copy that shares no slices or pointers with h.
func (h Habit) Clone() Habit {
	h.CompletionDates = slices.Clone(h.CompletionDates)
	if h.CompletionDates == nil {
		h.CompletionDates = []string{}
	}
	if h.ReminderTime != nil {
		rt := *h.ReminderTime
		h.ReminderTime = &rt
	}
	return h
}

// CloneHabits deep-copies a collection.
func CloneHabits(habits []Habit) []Habit {
	out := make([]Habit, len(habits))
	for i, h := range habits {
		out[i] = h.Clone()
	}
	return out
}
