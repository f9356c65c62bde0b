package constants

const (
	// Session and profile
	KeyUserData   = "user_data"
	KeyIsLoggedIn = "is_logged_in"
	KeyRememberMe = "remember_me"

	// Collections
	KeyHabits      = "habits"
	KeyMoodEntries = "mood_entries"

	// Hydration
	KeyDailyWaterLimit           = "daily_water_limit"
	KeyWaterIntakePrefix         = "water_intake_"
	KeyHydrationRemindersEnabled = "hydration_reminders_enabled"
	KeyReminderInterval          = "reminder_interval"

	// Steps
	KeyStepCountPrefix = "step_count_"
	KeyStepGoal        = "step_goal"

	// Appearance
	KeyDarkModeEnabled = "dark_mode_enabled"

	// Defaults
	DefaultDailyWaterLimit           = 2000
	DefaultGlassML                   = 250
	DefaultStepGoal                  = 10000
	DefaultHydrationRemindersEnabled = true
	DefaultReminderIntervalSec       = int64(30)
	DefaultDarkModeEnabled           = false

	// Rolling windows
	DefaultWindowDays = 7

	// Mood scale
	MinMoodLevel     = 1
	MaxMoodLevel     = 5
	NeutralMoodLevel = 3

	// Habit defaults
	DefaultHabitEmoji = "🎯"
)
