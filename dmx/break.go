package dmx

// BreakDetector classifies the gap preceding each received byte
// against the DMX break threshold. It knows nothing about frame
// structure; it only measures time between arrivals.
type BreakDetector struct {
	lastByteMicros uint64
	primed         bool
}

// Classify reports whether a break condition preceded the byte that
// arrived at nowMicros. The very first byte ever seen is treated as
// break-preceded: with no prior timestamp the gap is taken as
// infinite, which gives the receiver a defined initial condition
// instead of depending on a zero-valued timer.
//
// The last-byte timestamp is updated on every call, regardless of the
// classification result or what the assembler does with the byte.
func (d *BreakDetector) Classify(nowMicros uint64) bool {
	isBreak := true
	if d.primed {
		isBreak = nowMicros-d.lastByteMicros > BreakMinMicros
	}
	d.primed = true
	d.lastByteMicros = nowMicros
	return isBreak
}

// Reset forgets the previous byte timestamp, so the next byte is again
// classified as break-preceded. Used when the UART is reconfigured.
func (d *BreakDetector) Reset() {
	d.primed = false
	d.lastByteMicros = 0
}
