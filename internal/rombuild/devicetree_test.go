package rombuild

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUpdateDeviceTreesSkipsMissingRepos(t *testing.T) {
	opts := &BuildOptions{Rom: "axion", Device: "pipa", Variant: "vanilla", DateString: "20240101"}
	runner := &fakeRunner{}
	b := testBuilder(t, opts, runner)

	// Only one of the expected trees exists on disk.
	present := filepath.Join(b.romPath, "device/xiaomi/pipa")
	if err := os.MkdirAll(present, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	b.UpdateDeviceTrees()

	if !runner.ran("git checkout lineage-22.2") {
		t.Errorf("present repo was not switched to branch: %v", runner.commands)
	}
	if !runner.ran("git pull") {
		t.Errorf("present repo was not pulled: %v", runner.commands)
	}
	// One checkout and one pull for the single present repo, nothing for
	// the absent ones.
	if len(runner.commands) != 2 {
		t.Errorf("expected 2 git commands, got %v", runner.commands)
	}
}

func TestUpdateDeviceTreesUnknownMappingIsNoop(t *testing.T) {
	opts := &BuildOptions{Rom: "axion", Device: "pipa", Variant: "vanilla", DateString: "20240101"}
	runner := &fakeRunner{}
	b := testBuilder(t, opts, runner)
	b.opts.Rom = "unknown"

	b.UpdateDeviceTrees()
	if len(runner.commands) != 0 {
		t.Errorf("expected no commands, got %v", runner.commands)
	}
}
