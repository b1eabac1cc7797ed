// Package interrupt provides the cooperative stop token shared by the
// campaign controller and the suite runner. The OS signal handler does
// nothing but count interrupts and set the token; all actual stopping
// happens at suite and unit boundaries where the token is checked.
package interrupt

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/ethereum/go-ethereum/log"

	"github.com/fwlab/gauntlet/exitcodes"
	"github.com/fwlab/gauntlet/metrics"
)

// HardLimit is the number of interrupts tolerated before the process exits
// immediately, bypassing teardown and summary. This is the escape hatch for
// a test unit that hangs and can't be cancelled cooperatively.
const HardLimit = 4

// Token is a cooperative cancellation flag. It is set by the signal handler
// or by a fail-fast test failure and checked between suites and units.
type Token struct {
	stopped atomic.Bool
	count   atomic.Int32
}

// NewToken returns a cleared token.
func NewToken() *Token {
	return &Token{}
}

// Stop sets the token. Safe to call from any goroutine, idempotent.
func (t *Token) Stop() {
	t.stopped.Store(true)
}

// Stopped reports whether a stop has been requested.
func (t *Token) Stopped() bool {
	return t.stopped.Load()
}

// Interrupts returns how many interrupt signals have been observed.
func (t *Token) Interrupts() int {
	return int(t.count.Load())
}

// interrupted records one signal and returns the running count.
func (t *Token) interrupted() int {
	t.stopped.Store(true)
	return int(t.count.Add(1))
}

// Notify installs a SIGINT/SIGTERM handler that sets the token. The first
// signal requests a graceful stop; more than HardLimit signals within the
// same run force an unconditional exit. The returned function uninstalls
// the handler.
func Notify(token *Token, logger log.Logger) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		for range ch {
			n := token.interrupted()
			metrics.RecordInterrupt()
			logger.Warn("Interrupt received, stopping after current test unit", "count", n)
			if n > HardLimit {
				logger.Error("Too many interrupts, exiting immediately")
				os.Exit(exitcodes.Interrupted)
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
