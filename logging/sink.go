// Package logging owns the campaign log file. Test units never touch the
// process streams; everything they print goes through an injected writer
// that lands here, framed by timestamped start/end markers.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/acarl005/stripansi"
)

const bannerRule = "======================================================================"

// timestampLayout matches the per-unit markers in the campaign log.
const timestampLayout = "2006-01-02T15:04:05"

// Sink writes all captured test output to a single log file and keeps the
// console output terse (one line per test unit). It is the only writer of
// both streams; execution is single-threaded but the mutex keeps the file
// consistent if a unit leaks a goroutine that still prints.
type Sink struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	console io.Writer
	now     func() time.Time
}

// NewSink creates (or truncates) the log file at path. Console lines go to
// console, typically os.Stdout.
func NewSink(path string, console io.Writer) (*Sink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}
	if console == nil {
		console = io.Discard
	}
	return &Sink{
		path:    path,
		file:    file,
		console: console,
		now:     time.Now,
	}, nil
}

// Path returns the log file location, for the end-of-run pointer.
func (s *Sink) Path() string {
	return s.path
}

// Writer returns the writer test units receive as their output. ANSI escape
// sequences are stripped so the log file stays grep-able.
func (s *Sink) Writer() io.Writer {
	return &scrubWriter{sink: s}
}

// SuiteStart writes the suite banner to both console and log.
func (s *Sink) SuiteStart(name string) {
	s.Console("== testing %s ==", name)
	s.logf("\n== testing %s ==\n", name)
}

// SuiteEnd closes the suite banner with its elapsed time.
func (s *Sink) SuiteEnd(name string, elapsed time.Duration) {
	s.Console("== testing %s [%.1fs] ==", name, elapsed.Seconds())
	s.logf("== testing %s [%.1fs] ==\n", name, elapsed.Seconds())
}

// UnitStart frames the beginning of one unit's captured output.
func (s *Sink) UnitStart(name string) {
	s.logf("\n\n%s\n%s start [%s]\n", bannerRule, name, s.now().Format(timestampLayout))
}

// UnitEnd frames the end of one unit's captured output.
func (s *Sink) UnitEnd(name string) {
	s.logf("%s end   [%s]\n%s\n", name, s.now().Format(timestampLayout), bannerRule)
}

// ConsoleWriter exposes the console stream for summary table rendering.
func (s *Sink) ConsoleWriter() io.Writer {
	return s.console
}

// Console writes one terse line to the console stream.
func (s *Sink) Console(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.console, format+"\n", args...)
}

// Close flushes and closes the log file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

func (s *Sink) logf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.file, format, args...)
}

// scrubWriter strips ANSI escape sequences before the bytes reach the file.
type scrubWriter struct {
	sink *Sink
}

func (w *scrubWriter) Write(p []byte) (int, error) {
	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()
	if _, err := w.sink.file.WriteString(StripANSI(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// StripANSI removes terminal color and control sequences from s. Literal
// escaped sequences (backslash-x1b inside quoted strings) are preserved.
func StripANSI(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return stripansi.Strip(s)
}
