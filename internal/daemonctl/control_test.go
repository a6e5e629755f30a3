package daemonctl

import (
	"path/filepath"
	"testing"
	"time"
)

func TestProcessInfoWithoutDaemon(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "vidbridge.sock")
	reachable, pid, err := ProcessInfo(socket)
	if err != nil {
		t.Fatalf("ProcessInfo returned error: %v", err)
	}
	if reachable || pid != 0 {
		t.Fatalf("expected unreachable daemon, got reachable=%v pid=%d", reachable, pid)
	}
}

func TestStopWithoutDaemon(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "vidbridge.sock")
	stopped, err := Stop(socket, time.Second)
	if err != nil || stopped {
		t.Fatalf("expected no-op stop, got stopped=%v err=%v", stopped, err)
	}
	if err := WaitForShutdown(socket, time.Second); err != nil {
		t.Fatalf("WaitForShutdown: %v", err)
	}
}

func TestLaunchRejectsEmptyExecutable(t *testing.T) {
	if err := Launch("  ", LaunchOptions{}); err == nil {
		t.Fatal("expected error for empty executable path")
	}
}

func TestWaitForClientTimesOut(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "vidbridge.sock")
	if _, err := WaitForClient(socket, 300*time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}
}
