package rombuild

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/ulikunitz/xz"
)

type logEntry struct {
	path    string
	content string
}

// readLogFile loads a run log, transparently decompressing .xz archives.
func readLogFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("bad xz stream in %s: %w", path, err)
		}
		r = xr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// collectLogs gathers all run logs under the log directory, newest first.
func collectLogs() ([]logEntry, error) {
	var paths []string
	for _, pattern := range []string{"*.log", "*.log.xz"} {
		matches, err := filepath.Glob(filepath.Join(logDir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Slice(paths, func(i, j int) bool {
		fi, errI := os.Stat(paths[i])
		fj, errJ := os.Stat(paths[j])
		if errI != nil || errJ != nil {
			return paths[i] > paths[j]
		}
		return fi.ModTime().After(fj.ModTime())
	})

	var logs []logEntry
	for _, p := range paths {
		content, err := readLogFile(p)
		if err != nil {
			content = fmt.Sprintf("could not read %s: %v", p, err)
		}
		logs = append(logs, logEntry{path: p, content: content})
	}
	return logs, nil
}

// runLogViewer opens the TUI over the run-log directory. Tab cycles through
// logs, q quits.
func runLogViewer() int {
	logs, err := collectLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading logs: %v\n", err)
		return 1
	}
	if len(logs) == 0 {
		colArrow.Print("-> ")
		colWarn.Printf("No run logs found in %s\n", logDir)
		return 0
	}

	app := tview.NewApplication()
	active := 0

	header := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetTextAlign(tview.AlignLeft)
	header.SetBorder(true)
	header.SetTitle("rombuilder Run Log Viewer")

	logView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetScrollable(true)
	logView.SetBorder(true)

	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetTextAlign(tview.AlignLeft)
	footer.SetBorder(true)

	show := func() {
		entry := logs[active]
		header.SetText(fmt.Sprintf("[yellow]%d/%d[-] %s", active+1, len(logs), entry.path))
		logView.SetText(tview.Escape(entry.content))
		logView.ScrollToEnd()

		advisory := classifyLog(entry.content)
		if advisory == "" {
			advisory = "no known failure signature"
		}
		footer.SetText(fmt.Sprintf("[yellow]Tab[-]/[yellow]l[-] next  [yellow]h[-] previous  [yellow]q[-] quit   [red]%s[-]", advisory))
	}
	show()

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 3, 0, false).
		AddItem(logView, 0, 1, true).
		AddItem(footer, 4, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyTab || event.Rune() == 'l':
			active = (active + 1) % len(logs)
			show()
			return nil
		case event.Rune() == 'h':
			active = (active - 1 + len(logs)) % len(logs)
			show()
			return nil
		case event.Rune() == 'q' || event.Key() == tcell.KeyEscape:
			app.Stop()
			return nil
		}
		return event
	})

	if err := app.SetRoot(flex, true).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return 1
	}
	return 0
}
