//go:build !tinygo

package dmx

// intrState is a placeholder for saved interrupt state on regular Go.
type intrState uintptr

// Frame publication runs in the single poll loop on regular Go, so the
// critical-section guards are no-ops. The tinygo build masks
// interrupts here so readers never observe a half-swapped buffer.
func enterCritical() intrState {
	return 0
}

func exitCritical(state intrState) {
}
