package rombuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// treeMarker is the well-known file whose presence confirms a directory is a
// previously initialized source tree.
const treeMarker = "build/envsetup.sh"

func (b *RomBuilder) validSourceTree() bool {
	if fi, err := os.Stat(b.romPath); err != nil || !fi.IsDir() {
		return false
	}
	_, err := os.Stat(filepath.Join(b.romPath, treeMarker))
	return err == nil
}

// SetupEnvironment ensures a source tree exists at the per-ROM path and is
// ready for a build. Either a destructive full sync or a skip-sync reuse of
// the existing tree; a skip-sync request against an unusable tree is
// promoted to a full sync with a warning.
func (b *RomBuilder) SetupEnvironment(ctx context.Context) error {
	b.say(colInfo, "=== Building %s for %s ===", b.rom.Name, b.opts.Device)
	b.say(colNote, "ROM Directory: %s", b.romPath)
	b.say(colNote, "ROM Variant: %s", b.opts.Variant)
	b.say(colNote, "Build Fastboot: %v", b.opts.BuildFastboot)
	b.say(colNote, "Source: %s (branch: %s)", b.rom.ManifestURL, b.rom.Branch)
	b.say(colNote, "Release Directory: %s", b.releaseDir)

	if err := b.ensureReleaseDir(); err != nil {
		return fmt.Errorf("failed to create release directory: %w", err)
	}

	unlock, err := acquireTreeLock(b.rom.Directory)
	if err != nil {
		return err
	}
	defer unlock()

	skip := b.opts.SkipSync
	if skip && !b.validSourceTree() {
		b.say(colWarn, "%s is missing or not a valid source tree (%s not found)", b.romPath, treeMarker)
		b.say(colWarn, "Falling back to a full sync")
		skip = false
	}

	if !skip {
		if err := b.fullSync(ctx); err != nil {
			return err
		}
	} else {
		b.step("Using existing source at: %s", b.romPath)
		b.refreshDeviceManifest()
		b.filteredSync()
		if !b.opts.NonInteractive {
			if askForConfirmation(colSuccess, "Pull latest device tree changes?") {
				b.UpdateDeviceTrees()
			}
		}
	}

	// Verify we ended up with a usable tree either way.
	if !b.validSourceTree() {
		return fmt.Errorf("%w: %s not found in %s", errInvalidSourceTree, treeMarker, b.romPath)
	}

	b.reportRequiredRepos()
	b.step("Environment setup complete")
	return nil
}

// fullSync destroys any existing tree and materializes a fresh checkout.
func (b *RomBuilder) fullSync(ctx context.Context) error {
	if fi, err := os.Stat(b.romPath); err == nil && fi.IsDir() {
		b.say(colWarn, "Removing existing directory: %s", b.romPath)
		if err := os.RemoveAll(b.romPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", b.romPath, err)
		}
	}

	b.step("Creating source directory: %s", b.romPath)
	if err := os.MkdirAll(b.romPath, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", b.romPath, err)
	}

	b.step("Initializing repo from %s (%s)", b.rom.ManifestURL, b.rom.Branch)
	args := []string{"init", "-u", b.rom.ManifestURL, "-b", b.rom.Branch, "--git-lfs"}
	if err := b.runner.Run("repo", args, b.romPath); err != nil {
		return fmt.Errorf("%w: repo init: %v", errSyncFailure, err)
	}

	if err := b.installDeviceManifest(); err != nil {
		return err
	}

	cores := runtime.NumCPU()
	b.step("Syncing source code (may take a while)")
	b.say(colWarn, "Using %d parallel jobs for sync", cores)
	args = []string{"sync", "-c", "-j" + strconv.Itoa(cores), "--force-sync", "--no-clone-bundle", "--no-tags"}
	if err := b.runner.Run("repo", args, b.romPath); err != nil {
		return fmt.Errorf("%w: repo sync: %v", errSyncFailure, err)
	}
	return nil
}

// cleanLocalManifests empties .repo/local_manifests so only the current
// device fragment ends up in the checkout.
func (b *RomBuilder) cleanLocalManifests() (string, error) {
	dir := filepath.Join(b.romPath, ".repo", "local_manifests")
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				os.Remove(filepath.Join(dir, e.Name()))
			}
		}
		return dir, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// installDeviceManifest downloads the device manifest fragment into the
// local_manifests directory. Fatal when the pair has no known manifest or
// the download fails.
func (b *RomBuilder) installDeviceManifest() error {
	b.step("Setting up local manifests directory")
	dir, err := b.cleanLocalManifests()
	if err != nil {
		return err
	}

	b.step("Adding device manifest for %s", b.opts.Device)
	url, err := deviceManifestURL(b.opts.Rom, b.opts.Device)
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(dir, "device.xml")
	if err := downloadTool(b.runner, url, manifestPath); err != nil {
		return fmt.Errorf("%w: device manifest download: %v", errSyncFailure, err)
	}

	if sum, err := fileBlake3(manifestPath); err == nil {
		b.manifestDigest = sum
		b.say(colNote, "Device manifest blake3: %s", sum)
	}
	return nil
}

// refreshDeviceManifest is the best-effort variant used on the skip-sync
// path. A missing mapping or failed download is reported, not fatal.
func (b *RomBuilder) refreshDeviceManifest() {
	b.step("Updating device manifest")
	if err := b.installDeviceManifest(); err != nil {
		b.say(colWarn, "Device manifest refresh failed: %v", err)
	}
}

// filteredSync refreshes only the device-adjacent sub-trees. Best effort.
func (b *RomBuilder) filteredSync() {
	cores := runtime.NumCPU()
	b.step("Syncing device-specific repositories")
	args := []string{"sync", "-c", "-j" + strconv.Itoa(cores), "--force-sync", "--no-clone-bundle", "--no-tags", "-f"}
	args = append(args, syncSubPaths...)
	if err := b.runner.Run("repo", args, b.romPath); err != nil {
		b.say(colWarn, "Filtered sync failed: %v", err)
	}
}

// reportRequiredRepos lists which expected sub-trees are present. Presence
// checking only, never enforcement.
func (b *RomBuilder) reportRequiredRepos() {
	repos := requiredRepos[b.opts.Device]
	if len(repos) == 0 {
		return
	}
	b.step("Checking expected device trees")
	for _, rel := range repos {
		if fi, err := os.Stat(filepath.Join(b.romPath, rel)); err == nil && fi.IsDir() {
			b.say(colSuccess, "  present: %s", rel)
		} else {
			b.say(colWarn, "  missing: %s", rel)
		}
	}
}
