package rombuild

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// interactiveMu ensures only one interactive prompt reads stdin at a time.
var interactiveMu sync.Mutex

// stdinReader is the one buffered reader over stdin shared by every
// interactive prompt. A second bufio.Reader on the same fd would buffer
// ahead and silently drop typed-ahead input meant for the next prompt.
var stdinReader = bufio.NewReader(os.Stdin)

func askForConfirmation(p colorPrinter, format string, a ...any) bool {
	interactiveMu.Lock()
	defer interactiveMu.Unlock()

	reader := stdinReader
	mainPrompt := fmt.Sprintf(format, a...)
	fullPrompt := fmt.Sprintf("%s [Y/n]: ", mainPrompt)

	for {
		cPrintf(p, "%s", fullPrompt)
		response, err := reader.ReadString('\n')
		if err != nil {
			return false // On error (like Ctrl+D), default to "no"
		}
		response = strings.ToLower(strings.TrimSpace(response))

		if response == "y" || response == "yes" || response == "" {
			return true
		}
		if response == "n" || response == "no" {
			return false
		}
		cPrintln(colWarn, "Invalid input.")
	}
}

// promptMenu presents a numbered menu of choices and blocks until a valid
// selection is entered. Invalid input is rejected with a retry prompt; there
// is no retry limit. describe may be nil. The caller owns the reader so
// consecutive menus share one input buffer.
func promptMenu(title string, ids []string, describe func(id string) string, reader *bufio.Reader) (string, error) {
	interactiveMu.Lock()
	defer interactiveMu.Unlock()

	colArrow.Print("-> ")
	colSuccess.Println(title)
	for i, id := range ids {
		if describe != nil {
			fmt.Printf("%d) %s (%s)\n", i+1, id, describe(id))
		} else {
			fmt.Printf("%d) %s\n", i+1, id)
		}
	}

	for {
		fmt.Printf("Choice [1-%d]: ", len(ids))
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("selection aborted: %w", err)
		}
		line = strings.TrimSpace(line)
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(ids) {
			colWarn.Printf("Invalid choice %q, enter a number between 1 and %d\n", line, len(ids))
			continue
		}
		return ids[n-1], nil
	}
}
