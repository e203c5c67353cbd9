package rombuild

import (
	"fmt"
	"path"
	"strings"
)

// axionVersionToken is the fixed version marker embedded in Axion package
// names, tracked manually against upstream.
const axionVersionToken = "1.2-BETA"

// Artifact is one simulated file move from the build output directory into
// the release directory. Source is relative to the source tree root.
type Artifact struct {
	Source string
	Dest   string
	Note   string
}

// outDir returns the build output directory for a device, relative to the
// source tree root.
func outDir(device string) string {
	return path.Join("out/target/product", device)
}

// primaryZipName is the main installable package name.
func primaryZipName(rom, device, variant, date string) string {
	if rom == "axion" {
		return fmt.Sprintf("axion-%s-%s-OFFICIAL-%s-%s.zip", axionVersionToken, date, strings.ToUpper(variant), device)
	}
	return fmt.Sprintf("lmodroid-%s-UNOFFICIAL-%s.zip", date, device)
}

// fastbootZipName is the bootloader-flashable package name.
func fastbootZipName(rom, device, variant, date string) string {
	if rom == "axion" {
		return fmt.Sprintf("axion-%s-%s-%s-FASTBOOT.zip", date, strings.ToUpper(variant), device)
	}
	return fmt.Sprintf("lmodroid-%s-%s-FASTBOOT.zip", date, device)
}

// otaJSONName is the OTA metadata file accompanying non-fastboot Axion
// builds.
func otaJSONName(device, variant string) string {
	return fmt.Sprintf("%s-%s.json", device, variant)
}

// artifactSet derives the full set of simulated file moves for one build
// invocation. It is a pure function of its inputs.
func artifactSet(rom, device, variant, date string, fastboot bool) []Artifact {
	out := outDir(device)
	var set []Artifact

	if fastboot {
		imgSource := path.Join(out, fmt.Sprintf("lineage_%s-img.zip", device))
		if rom != "axion" {
			imgSource = path.Join(out, fmt.Sprintf("lmodroid_%s-img.zip", device))
		}
		set = append(set, Artifact{
			Source: imgSource,
			Dest:   fastbootZipName(rom, device, variant, date),
			Note:   "fastboot image package",
		})
		return set
	}

	zipName := primaryZipName(rom, device, variant, date)
	set = append(set, Artifact{
		Source: path.Join(out, zipName),
		Dest:   zipName,
	})

	if rom == "axion" && (variant == "vanilla" || variant == "gms") {
		set = append(set, Artifact{
			Source: path.Join(out, strings.ToUpper(variant), device+".json"),
			Dest:   otaJSONName(device, variant),
			Note:   strings.ToUpper(variant) + " OTA config json",
		})
	}

	for _, img := range []string{"boot.img", "dtbo.img", "vendor_boot.img"} {
		set = append(set, Artifact{
			Source: path.Join(out, img),
			Dest:   img,
		})
	}
	return set
}
