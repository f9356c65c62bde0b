package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mindflow/internal/constants"
	apperrors "github.com/julianstephens/mindflow/internal/errors"
)

var moodEmojis = []string{"😢", "😔", "😐", "😊", "😄"}

var moodLabels = []string{"Very Sad", "Sad", "Neutral", "Happy", "Very Happy"}

var moodColors = []string{"#F48FB1", "#FFB74D", "#FFF176", "#A5D6A7", "#81C784"}

const unknownMoodColor = "#9E9E9E"

type MoodEntry struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"` // YYYY-MM-DD
	Time      string   `json:"time"` // HH:MM
	Emoji     string   `json:"emoji"`
	MoodLevel int      `json:"moodLevel"`
	Note      *string  `json:"note"`
	Tags      []string `json:"tags"`
}

// NewMoodEntry stamps an entry with a fresh id and the date and time of at.
// An empty emoji is filled from the level.
func NewMoodEntry(level int, emoji string, note *string, tags []string, at time.Time) MoodEntry {
	if emoji == "" {
		emoji = MoodEmoji(level)
	}
	if tags == nil {
		tags = []string{}
	}
	return MoodEntry{
		ID:        uuid.New().String(),
		Date:      at.Format(constants.DateFormat),
		Time:      at.Format(constants.TimeFormat),
		Emoji:     emoji,
		MoodLevel: level,
		Note:      note,
		Tags:      tags,
	}
}

func (m *MoodEntry) Validate() error {
	if m.MoodLevel < constants.MinMoodLevel || m.MoodLevel > constants.MaxMoodLevel {
		return fmt.Errorf("mood level %d: %w", m.MoodLevel, apperrors.ErrInvalidMoodLevel)
	}
	if _, err := time.Parse(constants.DateFormat, m.Date); err != nil {
		return fmt.Errorf("invalid mood date (expected YYYY-MM-DD): %w", err)
	}
	if m.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, m.Time); err != nil {
			return fmt.Errorf("invalid mood time (expected HH:MM): %w", err)
		}
	}
	return nil
}

func (m MoodEntry) Clone() MoodEntry {
	m.Tags = slices.Clone(m.Tags)
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.Note != nil {
		n := *m.Note
		m.Note = &n
	}
	return m
}

// CloneMoodEntries deep-copies a collection.
func CloneMoodEntries(entries []MoodEntry) []MoodEntry {
	out := make([]MoodEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// MoodEmoji maps a level to its glyph; out-of-range levels get the neutral face.
func MoodEmoji(level int) string {
	if level < constants.MinMoodLevel || level > constants.MaxMoodLevel {
		return moodEmojis[constants.NeutralMoodLevel-1]
	}
	return moodEmojis[level-1]
}

// MoodLabel maps a level to display text.
func MoodLabel(level int) string {
	if level < constants.MinMoodLevel || level > constants.MaxMoodLevel {
		return "Unknown"
	}
	return moodLabels[level-1]
}

// MoodColor maps a level to its chart colour.
func MoodColor(level int) string {
	if level < constants.MinMoodLevel || level > constants.MaxMoodLevel {
		return unknownMoodColor
	}
	return moodColors[level-1]
}
