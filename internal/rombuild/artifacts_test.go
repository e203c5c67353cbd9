package rombuild

import (
	"testing"
)

func destNames(set []Artifact) []string {
	var names []string
	for _, a := range set {
		names = append(names, a.Dest)
	}
	return names
}

func TestAxionVanillaArtifactNames(t *testing.T) {
	set := artifactSet("axion", "pipa", "vanilla", "20240101", false)

	want := []string{
		"axion-1.2-BETA-20240101-OFFICIAL-VANILLA-pipa.zip",
		"pipa-vanilla.json",
		"boot.img",
		"dtbo.img",
		"vendor_boot.img",
	}
	got := destNames(set)
	if len(got) != len(want) {
		t.Fatalf("artifact count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("artifact[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAxionFastbootArtifactNames(t *testing.T) {
	set := artifactSet("axion", "pipa", "vanilla", "20240101", true)

	if len(set) != 1 {
		t.Fatalf("fastboot artifact count = %d, want 1 (%v)", len(set), destNames(set))
	}
	if set[0].Dest != "axion-20240101-VANILLA-pipa-FASTBOOT.zip" {
		t.Errorf("fastboot name = %q", set[0].Dest)
	}
	if set[0].Source != "out/target/product/pipa/lineage_pipa-img.zip" {
		t.Errorf("fastboot source = %q", set[0].Source)
	}
}

func TestAxionGmsOtaJson(t *testing.T) {
	set := artifactSet("axion", "raven", "gms", "20231215", false)
	got := destNames(set)
	if got[0] != "axion-1.2-BETA-20231215-OFFICIAL-GMS-raven.zip" {
		t.Errorf("primary zip = %q", got[0])
	}
	if got[1] != "raven-gms.json" {
		t.Errorf("ota json = %q", got[1])
	}
	if set[1].Source != "out/target/product/raven/GMS/raven.json" {
		t.Errorf("ota json source = %q", set[1].Source)
	}
}

func TestLmodroidArtifactNames(t *testing.T) {
	set := artifactSet("lmodroid", "pipa", "vanilla", "20240101", false)
	got := destNames(set)
	if got[0] != "lmodroid-20240101-UNOFFICIAL-pipa.zip" {
		t.Errorf("primary zip = %q", got[0])
	}
	// No OTA json for lmodroid, just boot images.
	if len(got) != 4 {
		t.Errorf("artifact count = %d, want 4 (%v)", len(got), got)
	}

	fb := artifactSet("lmodroid", "pipa", "vanilla", "20240101", true)
	if len(fb) != 1 || fb[0].Dest != "lmodroid-20240101-pipa-FASTBOOT.zip" {
		t.Errorf("fastboot set = %v", destNames(fb))
	}
	if fb[0].Source != "out/target/product/pipa/lmodroid_pipa-img.zip" {
		t.Errorf("fastboot source = %q", fb[0].Source)
	}
}

func TestArtifactNamesAreDeterministic(t *testing.T) {
	a := destNames(artifactSet("axion", "pipa", "both", "20240101", false))
	b := destNames(artifactSet("axion", "pipa", "both", "20240101", false))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("naming not deterministic: %v vs %v", a, b)
		}
	}
}
