package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSink(t *testing.T, console *bytes.Buffer) *Sink {
	t.Helper()
	sink, err := NewSink(filepath.Join(t.TempDir(), "test.log"), console)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })
	sink.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	}
	return sink
}

func readLog(t *testing.T, sink *Sink) string {
	t.Helper()
	data, err := os.ReadFile(sink.Path())
	require.NoError(t, err)
	return string(data)
}

func TestSuiteBanners(t *testing.T) {
	var console bytes.Buffer
	sink := newSink(t, &console)

	sink.SuiteStart("nftables")
	sink.SuiteEnd("nftables", 1500*time.Millisecond)

	assert.Contains(t, console.String(), "== testing nftables ==\n")
	assert.Contains(t, console.String(), "== testing nftables [1.5s] ==\n")

	logged := readLog(t, sink)
	assert.Contains(t, logged, "== testing nftables ==")
	assert.Contains(t, logged, "== testing nftables [1.5s] ==")
}

func TestUnitMarkers(t *testing.T) {
	sink := newSink(t, nil)

	sink.UnitStart("write_entry")
	fmt.Fprintln(sink.Writer(), "request sent")
	sink.UnitEnd("write_entry")

	logged := readLog(t, sink)
	assert.Contains(t, logged, bannerRule)
	assert.Contains(t, logged, "write_entry start [2024-03-01T12:30:45]")
	assert.Contains(t, logged, "request sent")
	assert.Contains(t, logged, "write_entry end   [2024-03-01T12:30:45]")
}

func TestWriterStripsANSI(t *testing.T) {
	sink := newSink(t, nil)

	payload := "\x1b[31mFAILED\x1b[0m plain"
	n, err := sink.Writer().Write([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, len(payload), n, "reported length covers the original bytes")

	logged := readLog(t, sink)
	assert.Contains(t, logged, "FAILED plain")
	assert.NotContains(t, logged, "\x1b")
}

func TestConsoleLineFormatting(t *testing.T) {
	var console bytes.Buffer
	sink := newSink(t, &console)

	sink.Console("Test success : %s [%.1fs]", "api_online", 0.25)

	assert.Equal(t, "Test success : api_online [0.2s]\n", console.String())
	assert.Empty(t, readLog(t, sink), "console lines stay out of the log file")
}

func TestNilConsoleDiscards(t *testing.T) {
	sink, err := NewSink(filepath.Join(t.TempDir(), "test.log"), nil)
	require.NoError(t, err)
	defer sink.Close()

	// Must not panic.
	sink.Console("quiet")
	sink.SuiteStart("settings")
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "no escapes", StripANSI("no escapes"))
	assert.Equal(t, "colored", StripANSI("\x1b[1;32mcolored\x1b[0m"))
}
