package rombuild

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCaptureReturnsOutputAndExitCode(t *testing.T) {
	e := NewExecutor(t.Context())

	res, err := e.Capture("sh", []string{"-c", "echo out; echo err >&2"}, "")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.ExitCode != 0 || strings.TrimSpace(res.Stdout) != "out" || strings.TrimSpace(res.Stderr) != "err" {
		t.Errorf("unexpected result: %+v", res)
	}

	res, err = e.Capture("sh", []string{"-c", "exit 3"}, "")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", res.ExitCode)
	}
}

func TestCaptureHonorsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	e := NewExecutor(t.Context())
	res, err := e.Capture("pwd", nil, dir)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != dir {
		t.Errorf("pwd = %q, want %q", strings.TrimSpace(res.Stdout), dir)
	}
}

func TestCancelledContextKillsCommand(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewExecutor(ctx)

	done := make(chan error, 1)
	go func() {
		done <- e.Run("sleep", []string{"30"}, "")
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected error after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("command was not killed after cancellation")
	}
}
