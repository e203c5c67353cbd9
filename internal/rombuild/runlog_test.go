package rombuild

import (
	"os"
	"strings"
	"testing"
)

func TestRunLogHeaderAndBody(t *testing.T) {
	dir := t.TempDir()
	opts := &BuildOptions{Rom: "axion", Device: "pipa", Variant: "both", DateString: "20240101", SkipSync: true}

	log, err := newRunLog(dir, opts)
	if err != nil {
		t.Fatalf("newRunLog: %v", err)
	}
	log.Printf("narrated line %d", 42)
	log.Write([]byte("raw tool output\n"))
	if err := log.Close(false); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(log.Path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"ROM:      axion",
		"Device:   pipa",
		"Variant:  both",
		"skip-sync=true",
		"narrated line 42",
		"raw tool output",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q\n%s", want, content)
		}
	}
}

func TestRunLogCompressesOnCompletion(t *testing.T) {
	dir := t.TempDir()
	opts := &BuildOptions{Rom: "lmodroid", Device: "pipa", Variant: "vanilla", DateString: "20240101"}

	log, err := newRunLog(dir, opts)
	if err != nil {
		t.Fatalf("newRunLog: %v", err)
	}
	log.Printf("the full transcript survives compression")
	if err := log.Close(true); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := os.Stat(log.Path); !os.IsNotExist(err) {
		t.Error("plain log file should be removed after compression")
	}

	content, err := readLogFile(log.Path + ".xz")
	if err != nil {
		t.Fatalf("readLogFile: %v", err)
	}
	if !strings.Contains(content, "the full transcript survives compression") {
		t.Errorf("compressed log lost its body:\n%s", content)
	}
}

func TestNilRunLogIsSafe(t *testing.T) {
	var log *RunLog
	log.Printf("no panic")
	if _, err := log.Write([]byte("x")); err != nil {
		t.Errorf("nil Write: %v", err)
	}
	if err := log.Close(true); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
