package rombuild

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ulikunitz/xz"
)

// RunLog persists the full transcript of one orchestrator run. The header
// records the selection and flags; every narrated line and every external
// command's output is mirrored into the body.
type RunLog struct {
	mu   sync.Mutex
	f    *os.File
	Path string
}

// newRunLog creates a timestamped log file under dir and writes the header.
func newRunLog(dir string, opts *BuildOptions) (*RunLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	now := time.Now()
	name := fmt.Sprintf("%s-%s-%s-%s.log", opts.Rom, opts.Device, opts.DateString, now.Format("150405"))
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log %s: %w", path, err)
	}

	l := &RunLog{f: f, Path: path}
	l.Printf("==== rombuilder run log ====")
	l.Printf("Started:  %s", now.Format(time.RFC1123))
	l.Printf("ROM:      %s", opts.Rom)
	l.Printf("Device:   %s", opts.Device)
	l.Printf("Variant:  %s", opts.Variant)
	l.Printf("Date:     %s", opts.DateString)
	l.Printf("Flags:    skip-sync=%v clean=%v fastboot=%v local-path=%v",
		opts.SkipSync, opts.CleanBuild, opts.BuildFastboot, opts.LocalPath)
	l.Printf("============================")
	return l, nil
}

// Write lets the log double as the Executor's output mirror.
func (l *RunLog) Write(p []byte) (int, error) {
	if l == nil || l.f == nil {
		return len(p), nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Write(p)
}

// Printf appends one line to the log body.
func (l *RunLog) Printf(format string, a ...any) {
	if l == nil || l.f == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, format+"\n", a...)
}

// Close finalizes the log. On a completed run the plain file is compressed
// to <name>.xz and removed; an interrupted run keeps the plain file so the
// tail is never lost to a truncated compression stream.
func (l *RunLog) Close(compress bool) error {
	if l == nil || l.f == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.f.Close(); err != nil {
		return err
	}
	l.f = nil
	if !compress {
		return nil
	}

	in, err := os.Open(l.Path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(l.Path + ".xz")
	if err != nil {
		return err
	}
	defer out.Close()

	xw, err := xz.NewWriter(out)
	if err != nil {
		return err
	}
	if _, err := io.Copy(xw, in); err != nil {
		return err
	}
	if err := xw.Close(); err != nil {
		return err
	}

	in.Close()
	return os.Remove(l.Path)
}
