package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/mindflow/internal/logger"
)

var (
	// ErrCorrupt is returned when stored text exists but cannot be decoded
	ErrCorrupt = errors.New("stored data is corrupt")
	// ErrNotFound is returned when an entity with the requested id does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidMoodLevel is returned for mood levels outside 1..5
	ErrInvalidMoodLevel = errors.New("mood level must be between 1 and 5")
	// ErrInvalidCredentials is returned when email or password do not match the stored user
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoUser is returned when no user has registered on this device
	ErrNoUser = errors.New("no registered user")
	// ErrClosed is returned by components used after Close
	ErrClosed = errors.New("already closed")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
