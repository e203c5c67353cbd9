package rombuild

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRunBuildReturns130WhenCanceled(t *testing.T) {
	homeDir = t.TempDir()
	logDir = filepath.Join(homeDir, "logs")
	serverReleaseDir = filepath.Join(homeDir, "server-releases")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	args := []string{"-r", "axion", "-d", "pipa", "-v", "vanilla", "--non-interactive", "--date", "20240101"}
	code := runBuild(ctx, &Config{Values: map[string]string{}}, args)
	if code != 130 {
		t.Errorf("exit code = %d, want 130 after cancellation", code)
	}
}

func TestRunBuildRejectsBadFlagValue(t *testing.T) {
	homeDir = t.TempDir()
	logDir = filepath.Join(homeDir, "logs")
	serverReleaseDir = filepath.Join(homeDir, "server-releases")

	args := []string{"-r", "grapheneos", "--non-interactive"}
	code := runBuild(context.Background(), &Config{Values: map[string]string{}}, args)
	if code != 1 {
		t.Errorf("exit code = %d, want 1 for an invalid selection", code)
	}
}
