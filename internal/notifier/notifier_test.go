package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/mindflow/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withConfigDir(t *testing.T, dir string) {
	t.Helper()
	old := userConfigDirFunc
	userConfigDirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userConfigDirFunc = old })
}

func withProcess(t *testing.T, executable string) {
	t.Helper()
	old := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
	t.Cleanup(func() { findProcessFunc = old })
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	withConfigDir(t, tempDir)

	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("failed to get tray dir: %v", err)
	}
	if dir != trayDir {
		t.Errorf("GetTrayAppConfigDir() = %s, want %s", dir, trayDir)
	}

	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatalf("failed to create tray dir: %v", err)
	}
	settings := `{"settings": {"lockfile_dir": "/custom/mindflow/dir"}}`
	if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settings), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("failed to get tray dir: %v", err)
	}
	if dir != "/custom/mindflow/dir" {
		t.Errorf("GetTrayAppConfigDir() = %s, want custom dir", dir)
	}
}

func TestReadLockfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, err := readLockfile(path); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("missing lockfile = %v, want ErrTrayNotRunning", err)
	}

	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"two parts", "8080|12345", "malformed"},
		{"garbage", "invalid", "malformed"},
		{"empty secret", "8080|12345|", "secret"},
		{"empty port", "|12345|s3cret", "port"},
		{"port out of range", "99999|12345|s3cret", "range"},
		{"bad pid", "8080|abc|s3cret", "process ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write lockfile: %v", err)
			}
			_, err := readLockfile(path)
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("readLockfile(%q) = %v, want error mentioning %q", tt.content, err, tt.errPart)
			}
		})
	}

	if err := os.WriteFile(path, []byte("8080|12345|s3cret\n"), 0644); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}
	ep, err := readLockfile(path)
	if err != nil {
		t.Fatalf("readLockfile() = %v", err)
	}
	if ep.port != 8080 || ep.pid != 12345 || ep.secret != "s3cret" {
		t.Errorf("readLockfile() = %+v", ep)
	}
}

func TestVerifyProcess(t *testing.T) {
	ep := endpoint{port: 8080, pid: 42, secret: "s"}

	withProcess(t, "")
	if err := ep.verifyProcess(); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("missing process = %v, want ErrTrayNotRunning", err)
	}

	withProcess(t, "other-app")
	if err := ep.verifyProcess(); err == nil {
		t.Error("expected error for wrong executable")
	}

	withProcess(t, "mindflow-tray")
	if err := ep.verifyProcess(); err != nil {
		t.Errorf("verifyProcess() = %v", err)
	}
}

func newTrayServer(t *testing.T) (*httptest.Server, *[]WebhookPayload) {
	t.Helper()
	var got []WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get(secretHeader) != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		got = append(got, payload)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &got
}

func serverPort(t *testing.T, server *httptest.Server) int {
	t.Helper()
	parts := strings.Split(server.URL, ":")
	port, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		t.Fatalf("failed to parse server port: %v", err)
	}
	return port
}

func TestSend(t *testing.T) {
	server, _ := newTrayServer(t)
	port := serverPort(t, server)
	n := New()
	ctx := context.Background()

	if err := n.send(ctx, endpoint{port: port, secret: "test-secret"}, WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("send() = %v", err)
	}
	if err := n.send(ctx, endpoint{port: port, secret: "wrong"}, WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}
	if err := n.send(ctx, endpoint{port: port, secret: "test-secret"}, WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := n.send(cancelled, endpoint{port: port, secret: "test-secret"}, WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNotifyEndToEnd(t *testing.T) {
	server, got := newTrayServer(t)
	port := serverPort(t, server)

	configDir := t.TempDir()
	withConfigDir(t, configDir)
	withProcess(t, "mindflow-tray")

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatalf("failed to create tray dir: %v", err)
	}
	lock := strconv.Itoa(port) + "|4242|test-secret"
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0600); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}

	if err := New().Notify(context.Background(), "Time to drink water 💧"); err != nil {
		t.Fatalf("Notify() = %v", err)
	}
	if len(*got) != 1 || (*got)[0].Text != "Time to drink water 💧" || (*got)[0].DurationMs != constants.NotificationDurationMs {
		t.Errorf("server received %+v", *got)
	}
}
