package dmx

// statusIntervalMicros is the cadence of periodic status lines while
// the link is up.
const statusIntervalMicros = 1000 * 1000

// Monitor ties the break detector and receiver to a UART and clock
// and drives them from a cooperative poll loop. Poll must be called
// often enough to keep up with the 44us byte period; Tick runs the
// slower status and staleness work and may format strings.
type Monitor struct {
	uart UARTDriver
	clk  Clock
	rx   *Receiver
	det  BreakDetector

	wasConnected bool
	lastStatus   uint64

	// Link transition hooks for a telemetry collaborator.
	OnLinkUp   func()
	OnLinkDown func()
}

// NewMonitor creates a monitor around an existing receiver.
func NewMonitor(uart UARTDriver, clk Clock, rx *Receiver) *Monitor {
	return &Monitor{uart: uart, clk: clk, rx: rx}
}

// Receiver returns the receiver this monitor feeds.
func (m *Monitor) Receiver() *Receiver {
	return m.rx
}

// Poll drains the UART, classifying and assembling each byte. The
// per-byte path is O(1); no formatting or unbounded work happens here.
func (m *Monitor) Poll() {
	for m.uart.Buffered() > 0 {
		now := m.clk.Micros()
		b, err := m.uart.ReadByte()
		if err != nil {
			return
		}
		m.rx.Feed(b, m.det.Classify(now), now)
	}
}

// Tick performs the low-frequency work: link transition detection and
// the periodic status summary. Call it between frames, on the order
// of tens of milliseconds.
func (m *Monitor) Tick() {
	now := m.clk.Micros()
	connected := m.rx.Connected(now)

	if connected != m.wasConnected {
		if connected {
			statusPrintln("dmx: signal acquired")
			if m.OnLinkUp != nil {
				m.OnLinkUp()
			}
		} else {
			statusPrintln("dmx: signal lost")
			if m.OnLinkDown != nil {
				m.OnLinkDown()
			}
		}
		m.wasConnected = connected
	}

	if connected && now-m.lastStatus >= statusIntervalMicros {
		m.lastStatus = now
		s := m.rx.Stats()
		statusPrintln("dmx: frames=" + utoa(uint64(s.Frames)) +
			" breaks=" + utoa(uint64(s.Breaks)) +
			" bad_start=" + utoa(uint64(s.BadStartCodes)) +
			" overrun=" + utoa(uint64(s.OverrunBytes)) +
			" ch1=" + itoa(int(m.rx.Channel(1))))
	}
}
