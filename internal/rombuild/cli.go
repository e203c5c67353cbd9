package rombuild

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gookit/color"
)

// printHelp prints the commands table
func printHelp() {
	colSuccess.Println("Usage: rombuilder [command] [flags]")
	colSuccess.Println("Without a command the build flow runs.")
	fmt.Println()
	color.Info.Println("Available Commands:")

	type cmdInfo struct {
		Cmd  string
		Args string
		Desc string
	}
	cmds := []cmdInfo{
		{"build", "[flags]", "Sync sources and narrate a ROM build (default)"},
		{"logs", "", "TUI viewer for past run logs"},
		{"classify", "<logfile>", "Classify a failed build log"},
		{"upload", "[dir]", "Upload release artifacts"},
		{"version, --version", "", "Version information"},
		{"help", "", "This text"},
	}

	const columnWidth = 32
	for _, c := range cmds {
		usageString := "  " + c.Cmd
		if c.Args != "" {
			usageString += " " + c.Args
		}
		fmt.Print(usageString)
		pad := columnWidth - len(usageString)
		if pad < 1 {
			pad = 1
		}
		fmt.Print(strings.Repeat(" ", pad))
		color.Info.Println(c.Desc)
	}
	fmt.Println()

	color.Info.Println("Build Flags:")
	fmt.Println("  -r, --rom         ROM to build (axion, lmodroid)")
	fmt.Println("  -d, --device      Target device (pipa, raven)")
	fmt.Println("  -v, --variant     Axion variant (vanilla, gms, both)")
	fmt.Println("  -s, --skip-sync   Reuse the existing source tree")
	fmt.Println("  -c, --clean       Run a clean build instead of installclean")
	fmt.Println("  -f, --fastboot    Also produce the fastboot package")
	fmt.Println("      --local-path  Release into $HOME instead of the server share")
	fmt.Println("      --non-interactive  Never prompt; missing selections are fatal")
	fmt.Println("      --date        Override the date stamp (YYYYMMDD)")
	fmt.Println()
}

// Main is the CLI entrypoint for rombuilder.
func Main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	interrupted := make(chan struct{})
	go func() {
		select {
		case sig := <-sigs:
			colArrow.Print("\n-> ")
			color.Danger.Printf("Received %v. Build canceled by user\n", sig)
			close(interrupted)
			cancel()

			// Give the running command a moment to die and flush.
			select {
			case <-sigs:
				colArrow.Print("\n-> ")
				color.Danger.Println("Second interrupt received. Forcing immediate exit.")
				os.Exit(130)
			case <-time.After(2 * time.Second):
				os.Exit(130)
			}
		case <-ctx.Done():
		}
	}()

	cfg, err := loadConfig(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read configuration: %v\n", err)
	}
	initConfig(cfg)

	args := os.Args[1:]
	command := "build"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}

	var exitCode int
	switch command {
	case "build":
		exitCode = runBuild(ctx, cfg, args)

	case "logs":
		exitCode = runLogViewer()

	case "classify":
		if len(args) < 1 {
			fmt.Println("Usage: rombuilder classify <logfile>")
			exitCode = 1
			break
		}
		category, err := classifyLogFile(args[0])
		if err != nil {
			colError.Printf("Error: %v\n", err)
			exitCode = 1
			break
		}
		colArrow.Print("-> ")
		colNote.Printf("%s\n", category)

	case "upload":
		dir := serverReleaseDir
		if len(args) > 0 {
			dir = args[0]
		}
		if err := uploadMenu(ctx, cfg, NewExecutor(ctx), dir); err != nil {
			colError.Printf("Upload failed: %v\n", err)
			exitCode = 1
		}

	case "version", "--version":
		fmt.Printf("rombuilder %s (built %s)\n", version, buildDate)

	case "help", "--help", "-h":
		printHelp()

	default:
		colError.Printf("Unknown command: %s\n", command)
		printHelp()
		exitCode = 1
	}

	select {
	case <-interrupted:
		os.Exit(130)
	default:
	}
	os.Exit(exitCode)
}

// runBuild parses the build flags, resolves options and executes the
// orchestration flow.
func runBuild(ctx context.Context, cfg *Config, args []string) int {
	opts := &BuildOptions{}

	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.StringVar(&opts.Rom, "r", "", "ROM to build")
	fs.StringVar(&opts.Rom, "rom", "", "ROM to build")
	fs.StringVar(&opts.Device, "d", "", "Target device")
	fs.StringVar(&opts.Device, "device", "", "Target device")
	fs.StringVar(&opts.Variant, "v", "", "Axion build variant")
	fs.StringVar(&opts.Variant, "variant", "", "Axion build variant")
	fs.BoolVar(&opts.SkipSync, "s", false, "Skip repository sync")
	fs.BoolVar(&opts.SkipSync, "skip-sync", false, "Skip repository sync")
	fs.BoolVar(&opts.CleanBuild, "c", false, "Run a clean build")
	fs.BoolVar(&opts.CleanBuild, "clean", false, "Run a clean build")
	fs.BoolVar(&opts.BuildFastboot, "f", false, "Build fastboot package")
	fs.BoolVar(&opts.BuildFastboot, "fastboot", false, "Build fastboot package")
	fs.BoolVar(&opts.LocalPath, "local-path", false, "Release into $HOME")
	fs.BoolVar(&opts.NonInteractive, "non-interactive", false, "Never prompt")
	fs.StringVar(&opts.DateString, "date", "", "Date stamp override (YYYYMMDD)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if err := resolveOptions(opts, stdinReader); err != nil {
		colError.Printf("Error: %v\n", err)
		return 1
	}

	log, err := newRunLog(logDir, opts)
	if err != nil {
		colError.Printf("Error: %v\n", err)
		return 1
	}

	runner := NewExecutor(ctx)
	runner.Output = log

	builder := NewRomBuilder(opts, cfg, runner, log)
	runErr := builder.Run(ctx)

	if runErr != nil {
		log.Printf("FATAL: %v", runErr)
	}
	if err := log.Close(runErr == nil && ctx.Err() == nil); err != nil {
		debugf("closing run log: %v\n", err)
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || ctx.Err() != nil {
			return 130
		}
		colError.Printf("Error: %v\n", runErr)
		if category, err := classifyLogFile(log.Path); err == nil {
			colArrow.Print("-> ")
			colNote.Printf("Likely cause: %s\n", category)
		}
		return 1
	}
	return 0
}
