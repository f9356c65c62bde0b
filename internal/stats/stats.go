// Package stats derives streaks, completion rates and rolling windows from
// habit, mood and counter data. Nothing here reads or writes storage; "today"
// comes from the injected clock.
package stats

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/julianstephens/mindflow/internal/clock"
	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/utils"
)

// Calculator computes derived metrics relative to its clock's current day.
type Calculator struct {
	clock clock.Clock
}

// New creates a Calculator. A nil clock means the system clock.
func New(c clock.Clock) *Calculator {
	return &Calculator{clock: clock.Or(c)}
}

func (c *Calculator) today() string {
	return utils.Today(c.clock)
}

// lastWeek is today and the six days before it, oldest first.
func (c *Calculator) lastWeek() []string {
	return utils.LastNDays(c.clock.Now(), constants.DefaultWindowDays)
}

func (c *Calculator) IsCompletedToday(h models.Habit) bool {
	return slices.Contains(h.CompletionDates, c.today())
}

// MarkCompleted returns a copy of h with today added to its completion dates.
// Marking an already completed habit changes nothing.
func (c *Calculator) MarkCompleted(h models.Habit) models.Habit {
	out := h.Clone()
	today := c.today()
	if !slices.Contains(out.CompletionDates, today) {
		out.CompletionDates = append(out.CompletionDates, today)
	}
	return out
}

// MarkIncomplete returns a copy of h without today in its completion dates.
func (c *Calculator) MarkIncomplete(h models.Habit) models.Habit {
	out := h.Clone()
	today := c.today()
	out.CompletionDates = slices.DeleteFunc(out.CompletionDates, func(d string) bool {
		return d == today
	})
	return out
}

// ToggleToday flips today's completion.
func (c *Calculator) ToggleToday(h models.Habit) models.Habit {
	if c.IsCompletedToday(h) {
		return c.MarkIncomplete(h)
	}
	return c.MarkCompleted(h)
}

func (c *Calculator) weekCompletions(h models.Habit) int {
	done := mapset.NewThreadUnsafeSet(h.CompletionDates...)
	week := mapset.NewThreadUnsafeSet(c.lastWeek()...)
	return done.Intersect(week).Cardinality()
}

// ProgressPercentage is the share of the last 7 calendar days, today
// included, on which h was completed.
func (c *Calculator) ProgressPercentage(h models.Habit) float64 {
	return float64(c.weekCompletions(h)) / float64(constants.DefaultWindowDays) * 100
}

// WeeklyProgressLabel renders the same window as ProgressPercentage.
func (c *Calculator) WeeklyProgressLabel(h models.Habit) string {
	return fmt.Sprintf("%d/%d days completed this week", c.weekCompletions(h), constants.DefaultWindowDays)
}

// Streak counts the consecutive completed days ending today, or ending
// yesterday when today is not done yet.
func (c *Calculator) Streak(h models.Habit) int {
	done := mapset.NewThreadUnsafeSet(h.CompletionDates...)
	now := c.clock.Now()

	cursor := utils.StartOfDay(now)
	if !done.Contains(cursor.Format(constants.DateFormat)) {
		cursor = utils.AddDays(now, -1)
	}

	streak := 0
	for done.Contains(cursor.Format(constants.DateFormat)) {
		streak++
		cursor = utils.AddDays(cursor, -1)
	}
	return streak
}

// RollingAggregate lists counts for the last days calendar days ending today,
// oldest first. Dates missing from counts read as 0.
func (c *Calculator) RollingAggregate(counts map[string]int, days int) []models.DayValue {
	dates := utils.LastNDays(c.clock.Now(), days)
	series := make([]models.DayValue, 0, len(dates))
	for _, d := range dates {
		series = append(series, models.DayValue{Date: d, Value: counts[d]})
	}
	return series
}

// AverageMood is the mean level of entries recorded on date, or the neutral
// level when there are none.
func AverageMood(entries []models.MoodEntry, date string) float64 {
	sum, n := 0, 0
	for _, e := range entries {
		if e.Date == date {
			sum += e.MoodLevel
			n++
		}
	}
	if n == 0 {
		return float64(constants.NeutralMoodLevel)
	}
	return float64(sum) / float64(n)
}

// AverageMoodToday is AverageMood for the current day.
func (c *Calculator) AverageMoodToday(entries []models.MoodEntry) float64 {
	return AverageMood(entries, c.today())
}

// MoodSeries is the daily average mood for the last days calendar days,
// oldest first.
func (c *Calculator) MoodSeries(entries []models.MoodEntry, days int) []models.DayScore {
	dates := utils.LastNDays(c.clock.Now(), days)
	series := make([]models.DayScore, 0, len(dates))
	for _, d := range dates {
		series = append(series, models.DayScore{Date: d, Value: AverageMood(entries, d)})
	}
	return series
}

// TodaysMoodEntry returns the first entry dated today. Entries are kept
// newest first, so that is the latest one.
func (c *Calculator) TodaysMoodEntry(entries []models.MoodEntry) (models.MoodEntry, bool) {
	today := c.today()
	for _, e := range entries {
		if e.Date == today {
			return e.Clone(), true
		}
	}
	return models.MoodEntry{}, false
}

func completionOn(habits []models.Habit, date string) float64 {
	if len(habits) == 0 {
		return 0
	}
	done := 0
	for _, h := range habits {
		if slices.Contains(h.CompletionDates, date) {
			done++
		}
	}
	return float64(done) / float64(len(habits)) * 100
}

// TodaysHabitCompletion is the percentage of habits completed today; 0 with
// no habits.
func (c *Calculator) TodaysHabitCompletion(habits []models.Habit) float64 {
	return completionOn(habits, c.today())
}

// DailyHabitCompletion is the per-day completion percentage across all
// habits for the last days calendar days, oldest first.
func (c *Calculator) DailyHabitCompletion(habits []models.Habit, days int) []models.DayScore {
	dates := utils.LastNDays(c.clock.Now(), days)
	series := make([]models.DayScore, 0, len(dates))
	for _, d := range dates {
		series = append(series, models.DayScore{Date: d, Value: completionOn(habits, d)})
	}
	return series
}

// WeeklyAverage is the mean value of series; 0 when empty.
func WeeklyAverage(series []models.DayValue) float64 {
	if len(series) == 0 {
		return 0
	}
	total := 0
	for _, p := range series {
		total += p.Value
	}
	return float64(total) / float64(len(series))
}

// Total sums a series.
func Total(series []models.DayValue) int {
	total := 0
	for _, p := range series {
		total += p.Value
	}
	return total
}
