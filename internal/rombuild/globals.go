package rombuild

import (
	"errors"

	"github.com/gookit/color"
)

// Global variables
var (
	homeDir          string
	serverReleaseDir string
	logDir           string
	ConfigFile       = "/etc/rombuilder.conf"
	Debug            bool
	version          = "dev"     // default version; overridden at build time
	buildDate        = "unknown" // overridden at build time

	errInvalidSelection       = errors.New("invalid selection")
	errMissingSelection       = errors.New("missing selection")
	errUnsupportedCombination = errors.New("unsupported ROM/device combination")
	errSyncFailure            = errors.New("sync failed")
	errInvalidSourceTree      = errors.New("invalid source tree")
)

// color helpers
var (
	colInfo    = color.Info // style provided by gookit/color
	colWarn    = color.Warn
	colError   = color.Error
	colSuccess = color.HEX("#1976D2")
	colArrow   = color.HEX("#FFEB3B")
	colNote    = color.Tag("notice")
)
