package imgwpib

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// Freshness checks and alert window matching both read it.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for freshness and alert-window
// evaluation. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
