package cli

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindflow/internal/backup"
	"github.com/julianstephens/mindflow/internal/clock"
	"github.com/julianstephens/mindflow/internal/logger"
	"github.com/julianstephens/mindflow/internal/notifier"
	"github.com/julianstephens/mindflow/internal/prefs"
	"github.com/julianstephens/mindflow/internal/storage"
	"github.com/julianstephens/mindflow/internal/storage/sqlite"
)

// Context is handed to every command's Run method.
type Context struct {
	Backend  storage.Backend
	Prefs    *prefs.Manager
	Clock    clock.Clock
	Notifier notifier.Sender
	Prompt   Prompter
}

// New builds a command context over backend. Extra options go to the
// preferences manager.
func New(backend storage.Backend, c clock.Clock, opts ...prefs.Option) *Context {
	c = clock.Or(c)
	opts = append([]prefs.Option{prefs.WithClock(c)}, opts...)
	return &Context{
		Backend:  backend,
		Prefs:    prefs.New(storage.NewKeyValueStore(backend), opts...),
		Clock:    c,
		Notifier: notifier.New(),
		Prompt:   HuhPrompter{},
	}
}

// Close flushes pending writes and releases the backend.
func (c *Context) Close() error {
	return c.Prefs.Close()
}

// SQLitePath returns the database file when the backend is SQLite. Backups
// only apply to that backend.
func (c *Context) SQLitePath() (string, bool) {
	if s, ok := c.Backend.(*sqlite.Store); ok {
		return s.GetConfigPath(), true
	}
	return "", false
}

// Backups returns a backup manager for the SQLite database, if there is one.
func (c *Context) Backups() (*backup.Manager, bool) {
	path, ok := c.SQLitePath()
	if !ok {
		return nil, false
	}
	return backup.NewManager(path, c.Clock), true
}

// PerformAutomaticBackup creates a backup after pending writes land and only
// logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr, ok := c.Backups()
	if !ok {
		return
	}
	c.Prefs.Flush()
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Prompter asks the user for input that must not come from flags.
type Prompter interface {
	Password(title string) (string, error)
	Confirm(title string) (bool, error)
}

// HuhPrompter prompts on the terminal.
type HuhPrompter struct{}

func (HuhPrompter) Password(title string) (string, error) {
	var pw string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&pw).
		Run()
	return pw, err
}

func (HuhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
