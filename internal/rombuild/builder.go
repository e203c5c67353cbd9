package rombuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RomBuilder drives one orchestration run: environment sync, build
// narration, artifact handling and reporting. All paths are carried
// explicitly; the process working directory is never changed.
type RomBuilder struct {
	opts       *BuildOptions
	cfg        *Config
	rom        RomInfo
	device     DeviceInfo
	romPath    string
	releaseDir string
	runner     Runner
	log        *RunLog
	start      time.Time

	manifestDigest string
	artifacts      []Artifact
}

func NewRomBuilder(opts *BuildOptions, cfg *Config, runner Runner, log *RunLog) *RomBuilder {
	rom := romTable[opts.Rom]
	device := deviceTable[opts.Device]

	releaseDir := filepath.Join(serverReleaseDir, fmt.Sprintf("%s-%s", opts.Rom, opts.Device))
	if opts.LocalPath {
		releaseDir = filepath.Join(homeDir, fmt.Sprintf("%s-%s-releases", opts.Rom, opts.Device))
	}

	return &RomBuilder{
		opts:       opts,
		cfg:        cfg,
		rom:        rom,
		device:     device,
		romPath:    filepath.Join(homeDir, rom.Directory),
		releaseDir: releaseDir,
		runner:     runner,
		log:        log,
		start:      time.Now(),
	}
}

// step prints a highlighted progress line and mirrors it into the run log.
func (b *RomBuilder) step(format string, a ...any) {
	colArrow.Print("-> ")
	colSuccess.Printf(format+"\n", a...)
	b.log.Printf(format, a...)
}

// say prints with the given style and mirrors the line into the run log.
func (b *RomBuilder) say(p colorPrinter, format string, a ...any) {
	cPrintf(p, format+"\n", a...)
	b.log.Printf(format, a...)
}

// wouldRun narrates a build command without executing it.
func (b *RomBuilder) wouldRun(cmd string) {
	b.say(colWarn, "Would run: %s", cmd)
}

// Run is the main execution flow. Sync failures are fatal; artifact, report
// and upload problems are logged and the run still finishes with an elapsed
// time summary.
func (b *RomBuilder) Run(ctx context.Context) error {
	if err := b.SetupEnvironment(ctx); err != nil {
		return err
	}

	b.say(colWarn, "Note: rombuilder can only simulate the ROM build process")
	b.say(colWarn, "because it cannot source the Android build environment directly.")

	for _, inv := range buildSequence(b.opts) {
		if inv.Fastboot {
			b.say(colInfo, "=== Building %s variant with fastboot ===", inv.Variant)
		} else {
			b.say(colInfo, "=== Building %s variant ===", inv.Variant)
		}
		b.BuildRom(inv.Variant, inv.Fastboot)
	}

	b.say(colInfo, "=== All builds complete ===")
	b.step("ROM files are available in: %s", b.releaseDir)

	if err := b.WriteReport(); err != nil {
		b.say(colWarn, "Report generation failed: %v", err)
	}

	if !b.opts.NonInteractive {
		if askForConfirmation(colSuccess, "Upload release artifacts now?") {
			if err := uploadMenu(ctx, b.cfg, b.runner, b.releaseDir); err != nil {
				b.say(colWarn, "Upload failed: %v", err)
			}
		}
	}

	elapsed := int(time.Since(b.start).Seconds())
	b.say(colNote, "Build time: %s", humanElapsed(elapsed))
	return nil
}

// ensureReleaseDir creates the release directory lazily, once the selection
// has been validated.
func (b *RomBuilder) ensureReleaseDir() error {
	return os.MkdirAll(b.releaseDir, 0o755)
}
