package rombuild

import (
	"fmt"
	"path/filepath"
)

// buildInvocation is one narrator call.
type buildInvocation struct {
	Variant  string
	Fastboot bool
}

// buildSequence expands the requested variant into the ordered narrator
// invocations: `both` means vanilla first, then gms, and the fastboot flag
// adds a second pass per variant.
func buildSequence(opts *BuildOptions) []buildInvocation {
	variants := []string{opts.Variant}
	if opts.Rom == "axion" && opts.Variant == "both" {
		variants = []string{"vanilla", "gms"}
	}

	var seq []buildInvocation
	for _, v := range variants {
		seq = append(seq, buildInvocation{Variant: v})
		if opts.BuildFastboot {
			seq = append(seq, buildInvocation{Variant: v, Fastboot: true})
		}
	}
	return seq
}

// BuildRom narrates the command sequence one real build of (variant,
// fastboot) would execute and the artifact moves it would produce. Nothing
// is executed; the build environment's envsetup.sh cannot be sourced from
// here.
func (b *RomBuilder) BuildRom(variant string, fastboot bool) {
	b.step("Setting up device: %s with variant: %s", b.opts.Device, variant)

	switch b.opts.Rom {
	case "axion":
		if variant == "gms" {
			b.step("Configuring build for GMS support")
			b.wouldRun(fmt.Sprintf("axion %s gms", b.opts.Device))
		} else {
			b.step("Configuring build for vanilla version (no GMS)")
			b.wouldRun(fmt.Sprintf("axion %s va", b.opts.Device))
		}
	case "lmodroid":
		b.wouldRun(fmt.Sprintf("lunch lmodroid_%s-userdebug || breakfast %s", b.opts.Device, b.opts.Device))
	}

	if b.opts.CleanBuild {
		b.say(colWarn, "Running clean build...")
		b.wouldRun("m clean")
	} else {
		b.say(colWarn, "Running incremental build...")
		b.wouldRun("m installclean")
	}

	if fastboot {
		b.say(colWarn, "Configuring for fastboot build...")
		b.wouldRun("export BUILD_FASTBOOT=true")
	} else {
		b.wouldRun("export BUILD_FASTBOOT=false")
	}

	b.step("Starting build process...")
	if b.opts.Rom == "axion" {
		b.say(colWarn, "Building %s for %s with variant: %s", b.rom.Name, b.opts.Device, variant)
		b.wouldRun(fmt.Sprintf("brunch %s", b.opts.Device))
	} else {
		b.say(colWarn, "Building %s for %s", b.rom.Name, b.opts.Device)
		b.wouldRun("m lmodroid")
	}
	b.step("Build successful! (simulation)")

	b.step("Copying build files to %s", b.releaseDir)
	for _, art := range artifactSet(b.opts.Rom, b.opts.Device, variant, b.opts.DateString, fastboot) {
		b.say(nil, "'%s' -> '%s'", art.Source, filepath.Join(b.releaseDir, art.Dest))
		if art.Note != "" {
			b.step("Copied %s", art.Note)
		}
		b.artifacts = append(b.artifacts, art)
	}
	b.step("Build files copied to: %s", b.releaseDir)
}
