package rombuild

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskSpaceWinsOverLaterSignatures(t *testing.T) {
	log := strings.Join([]string{
		"FAILED: ninja: build stopped",
		"error: package does not exist",
		"fatal error: No space left on device",
	}, "\n")

	got := classifyLog(log)
	if !strings.Contains(got, "disk space") {
		t.Errorf("classifyLog = %q, want disk space category", got)
	}
}

func TestFirstMatchInPriorityOrderWins(t *testing.T) {
	log := "cc1plus: Out of memory\nsome/file.java: package does not exist"
	got := classifyLog(log)
	if !strings.Contains(got, "memory") {
		t.Errorf("classifyLog = %q, want memory category", got)
	}
}

func TestUnknownContentIsUnclassified(t *testing.T) {
	if got := classifyLog("everything went fine"); got != "" {
		t.Errorf("classifyLog = %q, want empty", got)
	}
}

func TestClassifyLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.log")
	if err := os.WriteFile(path, []byte("ld: final link failed: No space left on device\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := classifyLogFile(path)
	if err != nil {
		t.Fatalf("classifyLogFile: %v", err)
	}
	if !strings.Contains(got, "disk space") {
		t.Errorf("classifyLogFile = %q, want disk space category", got)
	}

	clean := filepath.Join(dir, "clean.log")
	os.WriteFile(clean, []byte("ok\n"), 0o644)
	got, err = classifyLogFile(clean)
	if err != nil {
		t.Fatalf("classifyLogFile: %v", err)
	}
	if !strings.Contains(got, "unclassified") {
		t.Errorf("classifyLogFile = %q, want unclassified advisory", got)
	}

	if _, err := classifyLogFile(filepath.Join(dir, "missing.log")); err == nil {
		t.Error("expected error for missing file")
	}
}
