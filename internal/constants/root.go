package constants

import "time"

const (
	AppName            = "mindflow"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/mindflow/mindflow.db"
	DefaultConfigFile  = "~/.config/mindflow/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the calendar-day format used for completion dates and counter keys (yyyy-MM-dd)
	DateFormat = "2006-01-02"

	// TimeFormat is the time-of-day format used on mood entries (HH:mm)
	TimeFormat = "15:04"

	// CacheTTL bounds how long a decoded collection is served without re-reading the store
	CacheTTL = 30 * time.Second

	// Write queue constants
	WriteQueueSize     = 50
	WriteQueueDrainMax = 5 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mindflow-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "mindflow-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.mindflow"
	TrayAppExecutable      = "mindflow-tray"
)
