package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Transcript mirrors everything written through it into a timestamped file
// under a results directory, alongside stdout. It replaces shell-level output
// redirection for batch runs: the run log survives even when the scheduler
// discards the job's stdout.
type Transcript struct {
	file *os.File
	path string
	out  io.Writer
}

// NewTranscript creates <dir>/<name>_<timestamp>.txt and returns a Transcript
// teeing to it and to stdout. The directory is created if missing.
func NewTranscript(dir, name string) (*Transcript, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	ts := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, ts))
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Transcript{
		file: f,
		path: path,
		out:  io.MultiWriter(os.Stdout, f),
	}, nil
}

// Writer returns the tee writer. Pass it to SetupLoggerTo.
func (t *Transcript) Writer() io.Writer {
	return t.out
}

// Path returns the transcript file location.
func (t *Transcript) Path() string {
	return t.path
}

// Printf writes a plain (non-JSON) line to both destinations. Summary tables
// read better untagged.
func (t *Transcript) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// Close flushes and closes the transcript file.
func (t *Transcript) Close() error {
	return t.file.Close()
}
