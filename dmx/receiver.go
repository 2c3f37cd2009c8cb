package dmx

// Receiver states
const (
	stateIdle      = 0 // waiting for a break
	stateReceiving = 1 // accumulating frame bytes
)

// Stats holds diagnostic counters for operational visibility. All
// protocol-level failures surface here rather than as errors.
type Stats struct {
	Frames          uint32 // complete frames published
	Breaks          uint32 // break conditions detected
	BadStartCodes   uint32 // frames aborted on a non-zero start code
	OverrunBytes    uint32 // bytes past slot 512 before the next break
	LastFrameMicros uint64 // timestamp of the last completed frame
}

// Receiver is the DMX frame assembler: a state machine driven by
// (byte, isBreak) pairs from a BreakDetector. It owns all reception
// state, so multiple independent receivers can coexist.
//
// Two frame buffers are kept; the assembler fills one while readers
// see the other. Publication swaps the buffer index inside a critical
// section, so a reader only ever observes an all-zero universe (no
// frame yet) or the last fully validated 513-slot frame.
type Receiver struct {
	state  uint8
	cursor int // next slot to fill, 0..513, valid only while receiving

	bufs     [2][frameSlots]byte
	work     uint8 // buffer being assembled
	pub      uint8 // buffer visible to readers
	hasFrame bool

	// afterFrame marks an idle period that follows a completed
	// frame, so bytes past slot 512 can be told apart from other
	// inter-frame noise.
	afterFrame bool

	timeoutMicros uint64

	frames        uint32
	breaks        uint32
	badStartCodes uint32
	overrunBytes  uint32
	lastFrame     uint64

	// Optional hooks for a telemetry collaborator. Called from the
	// Feed context; handlers must be short.
	OnFrame    func()
	OnBadStart func(code byte)
}

// NewReceiver returns an idle receiver with an all-zero universe and
// the default 2s staleness window.
func NewReceiver() *Receiver {
	return &Receiver{
		work:          0,
		pub:           1,
		timeoutMicros: DefaultTimeoutMicros,
	}
}

// SetTimeout changes the Connected staleness window.
func (r *Receiver) SetTimeout(micros uint64) {
	r.timeoutMicros = micros
}

// Feed processes one received byte. isBreak reports whether a break
// condition preceded it (from BreakDetector.Classify) and nowMicros is
// its arrival timestamp, recorded when a frame completes.
//
// A break always wins: whatever the current state, it restarts frame
// assembly and the same byte is then evaluated as the start code.
func (r *Receiver) Feed(b byte, isBreak bool, nowMicros uint64) {
	if isBreak {
		r.state = stateReceiving
		r.cursor = 0
		r.breaks++
		r.afterFrame = false
	}

	if r.state != stateReceiving {
		// Lenient over-length policy: channels beyond slot 512 are
		// counted but ignored; anything else here is line noise or
		// the tail of an aborted frame, discarded silently.
		if r.afterFrame {
			r.overrunBytes++
		}
		return
	}

	if r.cursor == 0 {
		if b != StartCode {
			// Not a dimmer-channel frame. Discard and wait for the
			// next break; the published universe is untouched.
			r.state = stateIdle
			r.afterFrame = false
			r.badStartCodes++
			if r.OnBadStart != nil {
				r.OnBadStart(b)
			}
			return
		}
		r.bufs[r.work][0] = b
		r.cursor = 1
		return
	}

	r.bufs[r.work][r.cursor] = b
	r.cursor++

	if r.cursor > ChannelsPerFrame {
		r.publish(nowMicros)
	}
}

// publish makes the just-assembled buffer the reader-visible one and
// flips assembly to the other buffer.
func (r *Receiver) publish(nowMicros uint64) {
	st := enterCritical()
	r.pub = r.work
	r.work ^= 1
	r.hasFrame = true
	r.lastFrame = nowMicros
	exitCritical(st)

	r.frames++
	r.state = stateIdle
	r.afterFrame = true
	if r.OnFrame != nil {
		r.OnFrame()
	}
}

// Channel returns the value of channel n (1..512) from the last
// published frame, or 0 when n is out of range or no frame has ever
// completed.
func (r *Receiver) Channel(n int) byte {
	if n < 1 || n > ChannelsPerFrame {
		return 0
	}
	st := enterCritical()
	var v byte
	if r.hasFrame {
		v = r.bufs[r.pub][n]
	}
	exitCritical(st)
	return v
}

// Channels copies published channel values starting at channel first
// into dst and returns the number copied. dst stays zeroed when no
// frame has completed yet.
func (r *Receiver) Channels(dst []byte, first int) int {
	if first < 1 || first > ChannelsPerFrame {
		return 0
	}
	n := len(dst)
	if avail := ChannelsPerFrame - first + 1; n > avail {
		n = avail
	}
	st := enterCritical()
	if r.hasFrame {
		copy(dst[:n], r.bufs[r.pub][first:first+n])
	} else {
		for i := 0; i < n; i++ {
			dst[i] = 0
		}
	}
	exitCritical(st)
	return n
}

// Connected reports whether a frame completed within the staleness
// window ending at nowMicros. Status decays with time; no disconnect
// event is needed.
func (r *Receiver) Connected(nowMicros uint64) bool {
	st := enterCritical()
	ok := r.hasFrame && nowMicros-r.lastFrame < r.timeoutMicros
	exitCritical(st)
	return ok
}

// Stats returns a snapshot of the diagnostic counters. The snapshot
// is taken inside the critical section so a task-context caller never
// sees a torn 64-bit timestamp on 32-bit targets.
func (r *Receiver) Stats() Stats {
	st := enterCritical()
	s := Stats{
		Frames:          r.frames,
		Breaks:          r.breaks,
		BadStartCodes:   r.badStartCodes,
		OverrunBytes:    r.overrunBytes,
		LastFrameMicros: r.lastFrame,
	}
	exitCritical(st)
	return s
}
