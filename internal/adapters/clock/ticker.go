// Package clock provides the wall-clock tick source for sessions.
package clock

import (
	"sync"
	"time"

	"github.com/xvierd/mindit-cli/internal/ports"
)

// Ticker calls back once per period on its own goroutine.
type Ticker struct {
	period time.Duration
}

// Ensure Ticker implements ports.Ticker.
var _ ports.Ticker = (*Ticker)(nil)

// NewTicker creates a tick source with the given period.
func NewTicker(period time.Duration) *Ticker {
	return &Ticker{period: period}
}

// Second returns the one-second tick source driving session clocks.
func Second() *Ticker {
	return NewTicker(time.Second)
}

// Start implements ports.Ticker. The returned stop function may be called
// any number of times, from any goroutine, including from inside fn.
func (t *Ticker) Start(fn func()) func() {
	ticker := time.NewTicker(t.period)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
