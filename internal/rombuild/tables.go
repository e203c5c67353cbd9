package rombuild

import "fmt"

// RomInfo describes one supported ROM: where its manifest lives and which
// directory under $HOME the source tree is checked out to.
type RomInfo struct {
	Name        string
	Directory   string
	ManifestURL string
	Branch      string
}

// DeviceInfo describes one supported target device.
type DeviceInfo struct {
	Name         string
	Soc          string
	Manufacturer string
}

var romTable = map[string]RomInfo{
	"axion": {
		Name:        "Axion AOSP",
		Directory:   "ax",
		ManifestURL: "https://github.com/AxionAOSP/android.git",
		Branch:      "lineage-22.2",
	},
	"lmodroid": {
		Name:        "LMODroid",
		Directory:   "lmo",
		ManifestURL: "https://git.libremobileos.com/LMODroid/manifest.git",
		Branch:      "fifteen",
	},
}

var deviceTable = map[string]DeviceInfo{
	"pipa": {
		Name:         "Xiaomi Pad 6",
		Soc:          "Snapdragon 870",
		Manufacturer: "Xiaomi",
	},
	"raven": {
		Name:         "Pixel 6 Pro",
		Soc:          "Google Tensor",
		Manufacturer: "Google",
	},
}

// deviceManifests holds the per-(rom, device) local manifest fragment URLs.
// Not every combination is buildable; lmodroid has no raven trees.
var deviceManifests = map[string]string{
	"axion/pipa":    "https://raw.githubusercontent.com/ai94iq/local_manifests/main/axion-pipa-qpr2.xml",
	"axion/raven":   "https://raw.githubusercontent.com/ai94iq/local_manifests/main/axion-raven-qpr2.xml",
	"lmodroid/pipa": "https://raw.githubusercontent.com/ai94iq/local_manifests/main/lmov-pipa.xml",
}

// deviceManifestURL resolves the manifest fragment for a ROM/device pair.
func deviceManifestURL(rom, device string) (string, error) {
	url, ok := deviceManifests[rom+"/"+device]
	if !ok {
		return "", fmt.Errorf("%w: no device manifest for %s + %s", errUnsupportedCombination, rom, device)
	}
	return url, nil
}

// requiredRepos lists the sub-trees a usable checkout is expected to carry.
// Used for presence reporting only, never enforced.
var requiredRepos = map[string][]string{
	"pipa": {
		"device/xiaomi/pipa",
		"device/xiaomi/sm8250-common",
		"vendor/xiaomi/pipa",
		"vendor/xiaomi/sm8250-common",
		"kernel/xiaomi/sm8250",
		"hardware/xiaomi",
	},
	"raven": {
		"device/google/raviole",
		"device/google/gs101",
		"vendor/google/raven",
		"kernel/google/gs101",
		"hardware/google/pixel",
	},
}

// deviceTreeRepo is one sub-repository the updater can pull.
type deviceTreeRepo struct {
	Path   string
	Branch string
}

// deviceTreeRepos returns the repositories worth refreshing before a
// skip-sync build, each pinned to the branch the manifest tracks.
func deviceTreeRepos(rom, device string) []deviceTreeRepo {
	info, ok := romTable[rom]
	if !ok {
		return nil
	}
	var repos []deviceTreeRepo
	for _, p := range requiredRepos[device] {
		repos = append(repos, deviceTreeRepo{Path: p, Branch: info.Branch})
	}
	return repos
}

// syncSubPaths is the narrow path filter used for the skip-sync refresh.
var syncSubPaths = []string{"device/", "vendor/", "kernel/", "hardware/xiaomi/", "hardware/google/"}

// sortedRomIDs and sortedDeviceIDs keep menu and error output deterministic.
var sortedRomIDs = []string{"axion", "lmodroid"}
var sortedDeviceIDs = []string{"pipa", "raven"}
var variantIDs = []string{"vanilla", "gms", "both"}
