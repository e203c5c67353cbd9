package rombuild

import (
	"errors"
	"strings"
	"testing"
)

func TestDeviceManifestURLKnownPairs(t *testing.T) {
	cases := map[[2]string]string{
		{"axion", "pipa"}:    "https://raw.githubusercontent.com/ai94iq/local_manifests/main/axion-pipa-qpr2.xml",
		{"axion", "raven"}:   "https://raw.githubusercontent.com/ai94iq/local_manifests/main/axion-raven-qpr2.xml",
		{"lmodroid", "pipa"}: "https://raw.githubusercontent.com/ai94iq/local_manifests/main/lmov-pipa.xml",
	}
	for pair, want := range cases {
		got, err := deviceManifestURL(pair[0], pair[1])
		if err != nil {
			t.Errorf("deviceManifestURL(%s, %s): %v", pair[0], pair[1], err)
			continue
		}
		if got != want {
			t.Errorf("deviceManifestURL(%s, %s) = %q, want %q", pair[0], pair[1], got, want)
		}
	}
}

func TestDeviceManifestURLUnknownPair(t *testing.T) {
	_, err := deviceManifestURL("lmodroid", "raven")
	if !errors.Is(err, errUnsupportedCombination) {
		t.Errorf("expected errUnsupportedCombination, got %v", err)
	}
}

func TestDeviceTreeReposTrackRomBranch(t *testing.T) {
	repos := deviceTreeRepos("axion", "pipa")
	if len(repos) == 0 {
		t.Fatal("no device tree repos for axion/pipa")
	}
	for _, r := range repos {
		if r.Branch != "lineage-22.2" {
			t.Errorf("repo %s tracks %q, want lineage-22.2", r.Path, r.Branch)
		}
	}

	if repos := deviceTreeRepos("nope", "pipa"); repos != nil {
		t.Errorf("unknown rom gave repos: %v", repos)
	}
}

func TestTablesAreConsistent(t *testing.T) {
	for _, id := range sortedRomIDs {
		if _, ok := romTable[id]; !ok {
			t.Errorf("sortedRomIDs lists %q but romTable misses it", id)
		}
	}
	for _, id := range sortedDeviceIDs {
		if _, ok := deviceTable[id]; !ok {
			t.Errorf("sortedDeviceIDs lists %q but deviceTable misses it", id)
		}
	}
	for key := range deviceManifests {
		// every manifest entry must reference known identifiers
		rom, device, ok := strings.Cut(key, "/")
		if !ok {
			t.Errorf("malformed manifest key %q", key)
			continue
		}
		if _, ok := romTable[rom]; !ok {
			t.Errorf("manifest key %q references unknown rom", key)
		}
		if _, ok := deviceTable[device]; !ok {
			t.Errorf("manifest key %q references unknown device", key)
		}
	}
}
