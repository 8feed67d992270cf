package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	clog "github.com/charmbracelet/log"
)

var (
	file    *os.File
	logger  *clog.Logger
	mu      sync.Mutex
	enabled bool
)

// Dir returns ~/.config/go-surface
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-surface")
}

// Enable starts debug logging to ~/.config/go-surface/debug.log
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	// Ensure directory exists
	os.MkdirAll(Dir(), 0755)

	f, err := os.OpenFile(filepath.Join(Dir(), "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	logger = newLogger(f)
	enabled = true

	// Write directly (can't call Log - we hold the mutex)
	logger.Info("=== Debug logging started ===", "category", "debug")

	return nil
}

// EnableWriter sends debug logging to w instead of the log file
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	logger = newLogger(w)
	enabled = true
}

func newLogger(w io.Writer) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           clog.DebugLevel,
	})
	return l
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	logger = nil
	enabled = false
	counters = make(map[string]int)
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logger == nil {
		return
	}

	logger.Debug(fmt.Sprintf(format, args...), "category", category)
	if file != nil {
		file.Sync() // flush immediately so we see logs even on crash
	}
}

// Warn writes a warning to the debug log
func Warn(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logger == nil {
		return
	}

	logger.Warn(fmt.Sprintf(format, args...), "category", category)
	if file != nil {
		file.Sync()
	}
}

var counters = make(map[string]int)

// LogEvery logs only every N calls (use for high-frequency events).
// n <= 1 logs every call.
func LogEvery(n int, category, format string, args ...any) {
	if n <= 1 {
		Log(category, format, args...)
		return
	}

	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
