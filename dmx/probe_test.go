package dmx

import "testing"

// probeUART simulates a transceiver that only produces traffic when
// configured for the DMX wire format.
type probeUART struct {
	cfg       UARTConfig
	remaining int
}

func (u *probeUART) Configure(cfg UARTConfig) error {
	u.cfg = cfg
	if cfg.BaudRate == BaudRate && cfg.StopBits == 2 {
		u.remaining = 25
	} else {
		u.remaining = 0
	}
	return nil
}

func (u *probeUART) Buffered() int {
	return u.remaining
}

func (u *probeUART) ReadByte() (byte, error) {
	u.remaining--
	return 0x00, nil
}

func TestRunProbe(t *testing.T) {
	uart := &probeUART{}
	clk := &mockClock{step: 500}

	results, err := RunProbe(uart, clk, 2000)
	if err != nil {
		t.Fatalf("RunProbe failed: %v", err)
	}
	if len(results) != len(probeConfigs) {
		t.Fatalf("got %d results, expected %d", len(results), len(probeConfigs))
	}

	for _, res := range results {
		isDMX := res.Config.BaudRate == BaudRate && res.Config.StopBits == 2
		if isDMX && res.Bytes == 0 {
			t.Error("expected traffic at the DMX wire format")
		}
		if !isDMX && res.Bytes != 0 {
			t.Errorf("unexpected %d bytes at %d baud %d stop",
				res.Bytes, res.Config.BaudRate, res.Config.StopBits)
		}
	}

	// The port must be left configured for DMX reception.
	if uart.cfg.BaudRate != BaudRate || uart.cfg.StopBits != 2 {
		t.Errorf("probe left UART at %d baud %d stop", uart.cfg.BaudRate, uart.cfg.StopBits)
	}
}
