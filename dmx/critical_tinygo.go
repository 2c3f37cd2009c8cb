//go:build tinygo

package dmx

import "runtime/interrupt"

type intrState = interrupt.State

// enterCritical masks interrupts around the published-buffer swap and
// reads, so an interrupt-driven intake can never expose a frame that
// is mid-publication.
func enterCritical() intrState {
	return interrupt.Disable()
}

func exitCritical(state intrState) {
	interrupt.Restore(state)
}
