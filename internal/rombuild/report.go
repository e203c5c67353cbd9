package rombuild

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteReport renders a Markdown build report into the release directory so
// it travels with the artifacts. Failures are reported by the caller and do
// not abort the run.
func (b *RomBuilder) WriteReport() error {
	name := fmt.Sprintf("build-report-%s.md", b.opts.DateString)
	path := filepath.Join(b.releaseDir, name)

	var md strings.Builder
	fmt.Fprintf(&md, "# %s build for %s\n\n", b.rom.Name, b.device.Name)
	fmt.Fprintf(&md, "Generated by rombuilder on %s.\n\n", time.Now().Format(time.RFC1123))

	md.WriteString("## Build\n\n")
	fmt.Fprintf(&md, "| | |\n|---|---|\n")
	fmt.Fprintf(&md, "| ROM | %s (`%s`) |\n", b.rom.Name, b.opts.Rom)
	fmt.Fprintf(&md, "| Device | %s (`%s`, %s, %s) |\n", b.device.Name, b.opts.Device, b.device.Soc, b.device.Manufacturer)
	fmt.Fprintf(&md, "| Variant | %s |\n", b.opts.Variant)
	fmt.Fprintf(&md, "| Date stamp | %s |\n", b.opts.DateString)
	fmt.Fprintf(&md, "| Manifest | %s (branch `%s`) |\n", b.rom.ManifestURL, b.rom.Branch)
	if url, err := deviceManifestURL(b.opts.Rom, b.opts.Device); err == nil {
		fmt.Fprintf(&md, "| Device manifest | %s |\n", url)
	}
	if b.manifestDigest != "" {
		fmt.Fprintf(&md, "| Device manifest blake3 | `%s` |\n", b.manifestDigest)
	}
	md.WriteString("\n")

	if len(b.artifacts) > 0 {
		md.WriteString("## Artifacts\n\n")
		for _, art := range b.artifacts {
			fmt.Fprintf(&md, "- `%s`\n", art.Dest)
		}
		md.WriteString("\n")
	}

	md.WriteString("## Flashing\n\n")
	md.WriteString("For OTA-style zips:\n\n")
	md.WriteString("1. Boot into recovery.\n")
	md.WriteString("2. `adb sideload <package>.zip`\n")
	md.WriteString("3. Reboot to system.\n\n")
	md.WriteString("For fastboot packages:\n\n")
	md.WriteString("1. Boot into the bootloader.\n")
	md.WriteString("2. Extract the `-FASTBOOT.zip` package and run its flash-all script,\n")
	md.WriteString("   or `fastboot update` the image zip directly.\n")

	if err := os.WriteFile(path, []byte(md.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	b.step("Build report written to: %s", path)
	return nil
}
