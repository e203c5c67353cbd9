package rombuild

import (
	"fmt"
	"os"
	"strings"
)

// failureSignature maps a known log substring to a human-readable cause.
// Resource exhaustion comes first: it tends to cascade into compiler errors,
// and the first match wins.
type failureSignature struct {
	Substr   string
	Category string
}

var failureSignatures = []failureSignature{
	{"No space left on device", "Out of disk space - free up space on the build volume"},
	{"Out of memory", "Out of memory - reduce parallel jobs or add swap"},
	{"package does not exist", "Missing Java package - a dependency repo is likely absent from the manifest"},
	{"has no member named", "C/C++ API mismatch - device tree and HALs are out of sync with the branch"},
	{"FAILED: ninja", "Ninja build failure - inspect the first failing rule above this line"},
	{"error: vendor/", "Proprietary vendor blob problem - re-extract or re-sync the vendor tree"},
}

// classifyLog returns the first matching failure category for a log body,
// or "" when nothing is recognized.
func classifyLog(content string) string {
	for _, sig := range failureSignatures {
		if strings.Contains(content, sig.Substr) {
			return sig.Category
		}
	}
	return ""
}

// classifyLogFile reads a log file and reports its failure category. The
// result is advisory only.
func classifyLogFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read log %s: %w", path, err)
	}
	if cat := classifyLog(string(data)); cat != "" {
		return cat, nil
	}
	return "unclassified - inspect the log manually", nil
}
