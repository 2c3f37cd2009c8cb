package dmx

import (
	"strings"
	"testing"
)

// mockClock is a scripted microsecond clock.
type mockClock struct {
	now uint64
	// step advances the clock on every Micros call; used by the
	// probe test to terminate its listening windows.
	step uint64
}

func (c *mockClock) Micros() uint64 {
	c.now += c.step
	return c.now
}

// mockUART queues bytes for the monitor to drain.
type mockUART struct {
	pending []byte
	cfg     UARTConfig
}

func (u *mockUART) Configure(cfg UARTConfig) error {
	u.cfg = cfg
	u.pending = nil
	return nil
}

func (u *mockUART) Buffered() int {
	return len(u.pending)
}

func (u *mockUART) ReadByte() (byte, error) {
	b := u.pending[0]
	u.pending = u.pending[1:]
	return b, nil
}

func (u *mockUART) push(b byte) {
	u.pending = append(u.pending, b)
}

// deliver presents one byte to the monitor gapMicros after the
// previous one, the way the poll loop sees a live wire.
func deliver(m *Monitor, c *mockClock, u *mockUART, gapMicros uint64, b byte) {
	c.now += gapMicros
	u.push(b)
	m.Poll()
}

func TestMonitorAssemblesFrame(t *testing.T) {
	clk := &mockClock{now: 1000000}
	uart := &mockUART{}
	m := NewMonitor(uart, clk, NewReceiver())

	linkUps := 0
	m.OnLinkUp = func() { linkUps++ }

	var lines []string
	SetStatusWriter(func(s string) { lines = append(lines, s) })
	defer SetStatusWriter(nil)

	// First byte ever is break-preceded by contract; as a non-zero
	// start code it is discarded. Then a clean break-delimited frame.
	deliver(m, clk, uart, 44, 0x7F)
	deliver(m, clk, uart, 200, StartCode)
	for ch := 1; ch <= ChannelsPerFrame; ch++ {
		deliver(m, clk, uart, 44, byte(ch%256))
	}

	if got := m.Receiver().Channel(1); got != 1 {
		t.Errorf("Channel(1) = %d, expected 1", got)
	}
	if got := m.Receiver().Channel(512); got != byte(512%256) {
		t.Errorf("Channel(512) = %d, expected %d", got, 512%256)
	}
	if s := m.Receiver().Stats(); s.BadStartCodes != 1 {
		t.Errorf("BadStartCodes = %d, expected 1 from the leading byte", s.BadStartCodes)
	}

	m.Tick()
	if linkUps != 1 {
		t.Errorf("OnLinkUp fired %d times, expected 1", linkUps)
	}
	found := false
	for _, l := range lines {
		if strings.Contains(l, "signal acquired") {
			found = true
		}
	}
	if !found {
		t.Error("expected a signal acquired status line")
	}
}

func TestMonitorLinkLoss(t *testing.T) {
	clk := &mockClock{now: 1000000}
	uart := &mockUART{}
	m := NewMonitor(uart, clk, NewReceiver())

	downs := 0
	m.OnLinkDown = func() { downs++ }

	var lines []string
	SetStatusWriter(func(s string) { lines = append(lines, s) })
	defer SetStatusWriter(nil)

	deliver(m, clk, uart, 200, StartCode)
	for ch := 1; ch <= ChannelsPerFrame; ch++ {
		deliver(m, clk, uart, 44, 128)
	}
	m.Tick()

	// Nothing arrives for 3 seconds.
	clk.now += 3000 * 1000
	m.Tick()
	m.Tick()

	if downs != 1 {
		t.Errorf("OnLinkDown fired %d times, expected exactly 1", downs)
	}
	found := false
	for _, l := range lines {
		if strings.Contains(l, "signal lost") {
			found = true
		}
	}
	if !found {
		t.Error("expected a signal lost status line")
	}

	// Values stay readable after loss; only the status decays.
	if got := m.Receiver().Channel(100); got != 128 {
		t.Errorf("Channel(100) = %d after signal loss, expected 128", got)
	}
}

func TestMonitorStatusCadence(t *testing.T) {
	clk := &mockClock{now: 1000000}
	uart := &mockUART{}
	m := NewMonitor(uart, clk, NewReceiver())

	statusLines := 0
	SetStatusWriter(func(s string) {
		if strings.Contains(s, "frames=") {
			statusLines++
		}
	})
	defer SetStatusWriter(nil)

	deliver(m, clk, uart, 200, StartCode)
	for ch := 1; ch <= ChannelsPerFrame; ch++ {
		deliver(m, clk, uart, 44, 1)
	}

	// Several ticks inside one status interval produce one summary.
	m.Tick()
	clk.now += 10 * 1000
	m.Tick()
	clk.now += 10 * 1000
	m.Tick()
	if statusLines != 1 {
		t.Errorf("got %d status summaries within one interval, expected 1", statusLines)
	}
}
