package eventlog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// FileSink appends one "<timestamp>: <message>" line per event to a text file
type FileSink struct {
	mu   sync.Mutex
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Append writes one line. The file is opened for every write so that it can
// be rotated or removed while the simulation runs.
func (f *FileSink) Append(ts time.Time, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if _, err := fmt.Fprintf(file, "%s: %s\n", ts.Format(timestampLayout), message); err != nil {
		file.Close()
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return file.Close()
}

func (f *FileSink) Path() string {
	return f.path
}
