package rombuild

import (
	"bufio"
	"fmt"
	"slices"
	"strings"
	"time"
)

// BuildOptions is the fully resolved configuration for one run. It is
// constructed once from flags merged with interactive prompts and read-only
// afterwards.
type BuildOptions struct {
	Rom            string
	Device         string
	Variant        string // vanilla, gms or both; only meaningful for axion
	DateString     string
	SkipSync       bool
	CleanBuild     bool
	BuildFastboot  bool
	LocalPath      bool // release into $HOME instead of the server share
	NonInteractive bool
}

func defaultDateString() string {
	return time.Now().Format("20060102")
}

// validateOptions rejects unknown identifiers before any side effect happens.
func validateOptions(opts *BuildOptions) error {
	if opts.Rom != "" {
		if _, ok := romTable[opts.Rom]; !ok {
			return fmt.Errorf("%w: unknown ROM %q, valid options are: %s",
				errInvalidSelection, opts.Rom, strings.Join(sortedRomIDs, ", "))
		}
	}
	if opts.Device != "" {
		if _, ok := deviceTable[opts.Device]; !ok {
			return fmt.Errorf("%w: unknown device %q, valid options are: %s",
				errInvalidSelection, opts.Device, strings.Join(sortedDeviceIDs, ", "))
		}
	}
	if opts.Variant != "" && !slices.Contains(variantIDs, opts.Variant) {
		return fmt.Errorf("%w: unknown variant %q, valid options are: %s",
			errInvalidSelection, opts.Variant, strings.Join(variantIDs, ", "))
	}
	return nil
}

// resolveOptions fills in any missing required selection, either by prompting
// (interactive) or by failing (non-interactive). Flag values are validated
// first so a bad flag never reaches a prompt. The caller passes the shared
// input reader so consecutive menus never lose buffered type-ahead.
func resolveOptions(opts *BuildOptions, reader *bufio.Reader) error {
	if err := validateOptions(opts); err != nil {
		return err
	}

	if opts.DateString == "" {
		opts.DateString = defaultDateString()
	}

	if opts.Rom == "" {
		if opts.NonInteractive {
			return fmt.Errorf("%w: no ROM selected (use -r, valid options: %s)",
				errMissingSelection, strings.Join(sortedRomIDs, ", "))
		}
		rom, err := promptMenu("Select ROM to build:", sortedRomIDs, func(id string) string {
			return romTable[id].Name
		}, reader)
		if err != nil {
			return err
		}
		opts.Rom = rom
	}

	if opts.Device == "" {
		if opts.NonInteractive {
			return fmt.Errorf("%w: no device selected (use -d, valid options: %s)",
				errMissingSelection, strings.Join(sortedDeviceIDs, ", "))
		}
		device, err := promptMenu("Select target device:", sortedDeviceIDs, func(id string) string {
			info := deviceTable[id]
			return fmt.Sprintf("%s, %s", info.Name, info.Soc)
		}, reader)
		if err != nil {
			return err
		}
		opts.Device = device
	}

	// Only axion distinguishes build variants. LMODroid builds are always
	// narrated the same way, so default its variant silently.
	if opts.Variant == "" {
		if opts.Rom != "axion" {
			opts.Variant = "vanilla"
		} else if opts.NonInteractive {
			return fmt.Errorf("%w: no variant selected for axion (use -v, valid options: %s)",
				errMissingSelection, strings.Join(variantIDs, ", "))
		} else {
			variant, err := promptMenu("Select build variant:", variantIDs, nil, reader)
			if err != nil {
				return err
			}
			opts.Variant = variant
		}
	}

	return nil
}
