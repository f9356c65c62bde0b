package system

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/mindflow/internal/cli"
	"github.com/julianstephens/mindflow/internal/clock"
	"github.com/julianstephens/mindflow/internal/prefs"
	"github.com/julianstephens/mindflow/internal/storage"
	"github.com/julianstephens/mindflow/internal/storage/sqlite"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeSender) Notify(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, text)
	return nil
}

func newContext(t *testing.T, backend storage.Backend) *cli.Context {
	t.Helper()
	gokeyring.MockInit()
	clk := clock.NewFixed(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC))
	ctx := cli.New(backend, clk, prefs.WithBcryptCost(bcrypt.MinCost))
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	return newContext(t, sqlite.NewStore(filepath.Join(t.TempDir(), "test.db")))
}
