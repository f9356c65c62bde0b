// Package prefs is the single entry point for reading and changing the
// tracker's stored state: profile, habits, mood journal, counters and settings.
package prefs

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/mindflow/internal/auth"
	"github.com/julianstephens/mindflow/internal/cache"
	"github.com/julianstephens/mindflow/internal/clock"
	"github.com/julianstephens/mindflow/internal/codec"
	"github.com/julianstephens/mindflow/internal/constants"
	apperrors "github.com/julianstephens/mindflow/internal/errors"
	"github.com/julianstephens/mindflow/internal/logger"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/stats"
	"github.com/julianstephens/mindflow/internal/storage"
	"github.com/julianstephens/mindflow/internal/utils"
)

// Manager combines the key-value store, the collection caches and the metric
// calculator. Mutations read the current collection, change it, refresh the
// cache and then queue the write, so a read right after a mutation always
// sees it.
type Manager struct {
	store  *storage.KeyValueStore
	clock  clock.Clock
	calc   *stats.Calculator
	hasher *auth.Hasher
	ttl    time.Duration

	initOnce sync.Once
	habits   *cache.TTL[models.Habit]
	moods    *cache.TTL[models.MoodEntry]

	// mu serializes read-modify-write cycles on the collections
	mu sync.Mutex
}

// Option configures a Manager
type Option func(*Manager)

func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(m *Manager) { m.hasher = auth.NewHasher(cost) }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// New wraps store. Nothing is read from the backend until the first call.
func New(store *storage.KeyValueStore, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttl:   constants.CacheTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.clock = clock.Or(m.clock)
	if m.hasher == nil {
		m.hasher = auth.NewHasher(bcrypt.DefaultCost)
	}
	m.calc = stats.New(m.clock)
	return m
}

func (m *Manager) setup() {
	m.initOnce.Do(func() {
		m.habits = cache.New(m.ttl, m.clock, models.CloneHabits)
		m.moods = cache.New(m.ttl, m.clock, models.CloneMoodEntries)
	})
}

// Calculator exposes the metric calculator bound to the manager's clock.
func (m *Manager) Calculator() *stats.Calculator {
	return m.calc
}

func (m *Manager) today() string {
	return utils.Today(m.clock)
}

// decodeCollection reads key and degrades to an empty collection when the
// stored text is corrupt.
func decodeCollection[T any](store *storage.KeyValueStore, key string) []T {
	items, err := codec.Decode[T](store.GetString(key, ""))
	if err != nil {
		logger.Warn("Discarding unreadable collection", "key", key, "error", err)
	}
	return items
}

func encodeCollection[T any](store *storage.KeyValueStore, key string, items []T) {
	text, err := codec.Encode(items)
	if err != nil {
		logger.Warn("Failed to encode collection", "key", key, "error", err)
		return
	}
	store.PutString(key, text)
}

// Habits

func (m *Manager) Habits() []models.Habit {
	m.setup()
	return m.habits.GetOrLoad(func() []models.Habit {
		return decodeCollection[models.Habit](m.store, constants.KeyHabits)
	})
}

// SaveHabits replaces the whole collection.
func (m *Manager) SaveHabits(habits []models.Habit) {
	m.setup()
	m.habits.Set(habits)
	encodeCollection(m.store, constants.KeyHabits, habits)
}

// Habit finds a habit by id.
func (m *Manager) Habit(id string) (models.Habit, error) {
	for _, h := range m.Habits() {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %s: %w", id, apperrors.ErrNotFound)
}

// FindHabit matches by id or, failing that, by case-insensitive name.
func (m *Manager) FindHabit(ref string) (models.Habit, error) {
	habits := m.Habits()
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q: %w", ref, apperrors.ErrNotFound)
}

func (m *Manager) AddHabit(h models.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	habits := m.Habits()
	habits = append(habits, h.Clone())
	m.SaveHabits(habits)
	logger.Debug("Habit added", "id", h.ID, "name", h.Name)
	return nil
}

// UpdateHabit replaces the habit with the same id.
func (m *Manager) UpdateHabit(h models.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	habits := m.Habits()
	for i := range habits {
		if habits[i].ID == h.ID {
			habits[i] = h.Clone()
			m.SaveHabits(habits)
			return nil
		}
	}
	return fmt.Errorf("habit %s: %w", h.ID, apperrors.ErrNotFound)
}

func (m *Manager) DeleteHabit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	habits := m.Habits()
	kept := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(habits) {
		return fmt.Errorf("habit %s: %w", id, apperrors.ErrNotFound)
	}
	m.SaveHabits(kept)
	return nil
}

// ToggleHabitToday flips today's completion for the habit and returns the
// updated habit.
func (m *Manager) ToggleHabitToday(id string) (models.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	habits := m.Habits()
	for i := range habits {
		if habits[i].ID == id {
			habits[i] = m.calc.ToggleToday(habits[i])
			m.SaveHabits(habits)
			return habits[i].Clone(), nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %s: %w", id, apperrors.ErrNotFound)
}

// TodaysHabitCompletion is the percentage of habits done today.
func (m *Manager) TodaysHabitCompletion() float64 {
	return m.calc.TodaysHabitCompletion(m.Habits())
}

// HabitCompletionForLast7Days is the daily completion percentage across all
// habits, oldest first.
func (m *Manager) HabitCompletionForLast7Days() []models.DayScore {
	return m.calc.DailyHabitCompletion(m.Habits(), constants.DefaultWindowDays)
}

// Mood journal

// MoodEntries returns the journal newest first.
func (m *Manager) MoodEntries() []models.MoodEntry {
	m.setup()
	return m.moods.GetOrLoad(func() []models.MoodEntry {
		return decodeCollection[models.MoodEntry](m.store, constants.KeyMoodEntries)
	})
}

func (m *Manager) SaveMoodEntries(entries []models.MoodEntry) {
	m.setup()
	m.moods.Set(entries)
	encodeCollection(m.store, constants.KeyMoodEntries, entries)
}

// AddMoodEntry puts e at the front of the journal. Entries with a level
// outside 1..5 are rejected with ErrInvalidMoodLevel.
func (m *Manager) AddMoodEntry(e models.MoodEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.MoodEntries()
	entries = append([]models.MoodEntry{e.Clone()}, entries...)
	m.SaveMoodEntries(entries)
	return nil
}

func (m *Manager) DeleteMoodEntry(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.MoodEntries()
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("mood entry %s: %w", id, apperrors.ErrNotFound)
	}
	m.SaveMoodEntries(kept)
	return nil
}

// TodaysMoodEntry is the latest entry recorded today.
func (m *Manager) TodaysMoodEntry() (models.MoodEntry, bool) {
	return m.calc.TodaysMoodEntry(m.MoodEntries())
}

// MoodForLast7Days is the daily average mood, neutral on empty days.
func (m *Manager) MoodForLast7Days() []models.DayScore {
	return m.calc.MoodSeries(m.MoodEntries(), constants.DefaultWindowDays)
}

// Counters

func (m *Manager) counterSeries(keyFn func(string) string) []models.DayValue {
	dates := utils.LastNDays(m.clock.Now(), constants.DefaultWindowDays)
	counts := make(map[string]int, len(dates))
	for _, d := range dates {
		if v := m.store.GetInt(keyFn(d), 0); v != 0 {
			counts[d] = v
		}
	}
	return m.calc.RollingAggregate(counts, constants.DefaultWindowDays)
}

func (m *Manager) SetDailyWaterLimit(ml int) error {
	if ml <= 0 {
		return fmt.Errorf("daily water limit must be positive, got %d", ml)
	}
	m.store.PutInt(constants.KeyDailyWaterLimit, ml)
	return nil
}

func (m *Manager) DailyWaterLimit() int {
	return m.store.GetInt(constants.KeyDailyWaterLimit, constants.DefaultDailyWaterLimit)
}

func (m *Manager) SetWaterIntakeToday(ml int) error {
	if ml < 0 {
		return fmt.Errorf("water intake cannot be negative, got %d", ml)
	}
	m.store.PutInt(utils.WaterIntakeKey(m.today()), ml)
	return nil
}

func (m *Manager) WaterIntakeToday() int {
	return m.store.GetInt(utils.WaterIntakeKey(m.today()), 0)
}

// AddWaterIntake adds ml to today's total and returns the new total.
func (m *Manager) AddWaterIntake(ml int) (int, error) {
	if ml <= 0 {
		return 0, fmt.Errorf("water amount must be positive, got %d", ml)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := utils.WaterIntakeKey(m.today())
	total := m.store.GetInt(key, 0) + ml
	m.store.PutInt(key, total)
	return total, nil
}

// WaterIntakeForLast7Days lists daily intake, oldest first.
func (m *Manager) WaterIntakeForLast7Days() []models.DayValue {
	return m.counterSeries(utils.WaterIntakeKey)
}

func (m *Manager) SaveStepCount(steps int) error {
	if steps < 0 {
		return fmt.Errorf("step count cannot be negative, got %d", steps)
	}
	m.store.PutInt(utils.StepCountKey(m.today()), steps)
	return nil
}

func (m *Manager) StepCountToday() int {
	return m.store.GetInt(utils.StepCountKey(m.today()), 0)
}

func (m *Manager) SetStepGoal(goal int) error {
	if goal <= 0 {
		return fmt.Errorf("step goal must be positive, got %d", goal)
	}
	m.store.PutInt(constants.KeyStepGoal, goal)
	return nil
}

func (m *Manager) StepGoal() int {
	return m.store.GetInt(constants.KeyStepGoal, constants.DefaultStepGoal)
}

// StepCountForLast7Days lists daily steps, oldest first.
func (m *Manager) StepCountForLast7Days() []models.DayValue {
	return m.counterSeries(utils.StepCountKey)
}

// Settings

func (m *Manager) SetHydrationRemindersEnabled(enabled bool) {
	m.store.PutBool(constants.KeyHydrationRemindersEnabled, enabled)
}

func (m *Manager) AreHydrationRemindersEnabled() bool {
	return m.store.GetBool(constants.KeyHydrationRemindersEnabled, constants.DefaultHydrationRemindersEnabled)
}

// SetReminderInterval stores the hydration reminder period in seconds.
func (m *Manager) SetReminderInterval(seconds int64) error {
	if seconds <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %d", seconds)
	}
	m.store.PutInt64(constants.KeyReminderInterval, seconds)
	return nil
}

func (m *Manager) ReminderInterval() int64 {
	return m.store.GetInt64(constants.KeyReminderInterval, constants.DefaultReminderIntervalSec)
}

func (m *Manager) SetDarkModeEnabled(enabled bool) {
	m.store.PutBool(constants.KeyDarkModeEnabled, enabled)
}

func (m *Manager) IsDarkModeEnabled() bool {
	return m.store.GetBool(constants.KeyDarkModeEnabled, constants.DefaultDarkModeEnabled)
}

// Profile and session

// SaveUser hashes password, stores the profile and marks the session logged
// in. Any earlier profile is replaced.
func (m *Manager) SaveUser(u models.User, password string) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if err := u.Validate(); err != nil {
		return err
	}
	hash, err := m.hasher.Hash(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	if u.RegisteredDate == "" {
		u.RegisteredDate = m.today()
	}

	text, err := codec.EncodeOne(u)
	if err != nil {
		return err
	}
	m.store.PutString(constants.KeyUserData, text)
	m.store.PutBool(constants.KeyIsLoggedIn, true)
	logger.Info("Profile saved", "email", u.Email)
	return nil
}

// User returns the stored profile, if any.
func (m *Manager) User() (models.User, bool) {
	u, ok, err := codec.DecodeOne[models.User](m.store.GetString(constants.KeyUserData, ""))
	if err != nil {
		logger.Warn("Discarding unreadable profile", "key", constants.KeyUserData, "error", err)
		return models.User{}, false
	}
	return u, ok
}

// ValidateLogin checks email and password against the stored profile. It
// returns ErrNoUser when nobody has registered and ErrInvalidCredentials on
// any mismatch. A successful check marks the session logged in.
func (m *Manager) ValidateLogin(email, password string) error {
	u, ok := m.User()
	if !ok {
		return apperrors.ErrNoUser
	}
	if !strings.EqualFold(strings.TrimSpace(email), u.Email) {
		return apperrors.ErrInvalidCredentials
	}
	if err := m.hasher.Verify(u.PasswordHash, password); err != nil {
		return err
	}
	m.store.PutBool(constants.KeyIsLoggedIn, true)
	return nil
}

func (m *Manager) IsLoggedIn() bool {
	return m.store.GetBool(constants.KeyIsLoggedIn, false)
}

func (m *Manager) SetRememberMe(remember bool) {
	m.store.PutBool(constants.KeyRememberMe, remember)
}

func (m *Manager) ShouldRememberUser() bool {
	return m.store.GetBool(constants.KeyRememberMe, false)
}

// Logout erases every stored key, profile and settings included, and empties
// the caches.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Clear()
	m.ClearCache()
	logger.Info("Logged out; local data cleared")
}

// Cache and lifecycle

// ClearCache drops cached collections; the next read decodes from the store.
func (m *Manager) ClearCache() {
	m.setup()
	m.habits.Clear()
	m.moods.Clear()
}

// CacheStates reports the habit and mood cache states.
func (m *Manager) CacheStates() (habits, moods cache.State) {
	m.setup()
	return m.habits.State(), m.moods.State()
}

// Reload re-reads the backend and drops the caches, picking up changes made
// by other processes.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Reload(); err != nil {
		return err
	}
	m.ClearCache()
	return nil
}

// Flush waits until queued writes reach the backend.
func (m *Manager) Flush() {
	m.store.Flush()
}

// Close drops the caches and drains and closes the store.
func (m *Manager) Close() error {
	var result *multierror.Error
	m.ClearCache()
	if err := m.store.Close(); err != nil && !errors.Is(err, apperrors.ErrClosed) {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
