package dmx

// Clock supplies monotonic microsecond timestamps. The rp2040 target
// reads the 64-bit hardware timer; hosts derive it from the runtime
// clock; tests use a scripted value.
type Clock interface {
	Micros() uint64
}

// Global singleton used by target wiring code.
var clock Clock

// SetClock is called by target-specific code to register its clock.
func SetClock(c Clock) {
	clock = c
}

// MustClock returns the configured clock or panics if missing.
func MustClock() Clock {
	if clock == nil {
		panic("clock not configured")
	}
	return clock
}
