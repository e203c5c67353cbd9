package rombuild

import (
	"os"
	"path/filepath"
	"strings"
)

// UpdateDeviceTrees pulls the latest changes for the device's sub-repository
// list, switching each to the branch the manifest tracks first. Repositories
// absent on disk are reported and skipped. Best effort only; a failed pull
// never aborts the run.
func (b *RomBuilder) UpdateDeviceTrees() {
	repos := deviceTreeRepos(b.opts.Rom, b.opts.Device)
	if len(repos) == 0 {
		b.say(colWarn, "No device tree mapping known for %s + %s", b.opts.Rom, b.opts.Device)
		return
	}

	b.step("Updating device trees for %s", b.opts.Device)
	for _, repo := range repos {
		dir := filepath.Join(b.romPath, repo.Path)
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			b.say(colWarn, "Skipping %s (not present on disk)", repo.Path)
			continue
		}

		b.step("Pulling %s (branch %s)", repo.Path, repo.Branch)
		if res, err := b.runner.Capture("git", []string{"checkout", repo.Branch}, dir); err != nil || res.ExitCode != 0 {
			b.say(colWarn, "Could not switch %s to %s: %s", repo.Path, repo.Branch, strings.TrimSpace(res.Stderr))
			continue
		}

		res, err := b.runner.Capture("git", []string{"pull"}, dir)
		if err != nil {
			b.say(colWarn, "Error pulling %s: %v", repo.Path, err)
			continue
		}
		output := strings.TrimSpace(res.Stdout + res.Stderr)
		if res.ExitCode != 0 {
			b.say(colWarn, "Error pulling %s:\n%s", repo.Path, output)
		} else {
			b.say(colSuccess, "Updated %s\n%s", repo.Path, output)
		}
	}
}
