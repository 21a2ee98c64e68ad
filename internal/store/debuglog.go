package store

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// debugLogPath names the best-effort debug log file; empty disables it.
// Seeded from the environment so early failures are still logged, then
// overridden with the configured value via SetDebugLog.
var debugLogPath = strings.TrimSpace(os.Getenv("BOARD_DEBUG_LOG"))

// SetDebugLog points the debug log at path. Empty disables it. Call once at
// startup, before any store is opened.
func SetDebugLog(path string) {
	debugLogPath = strings.TrimSpace(path)
}

// debugf appends a line to the debug log file. Best effort: when no path is
// configured or the write fails, the message is dropped.
func debugf(format string, args ...any) {
	if debugLogPath == "" {
		return
	}
	f, err := os.OpenFile(debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s "+format+"\n", append([]any{time.Now().Format(time.RFC3339)}, args...)...)
}
