package dmx

import "time"

// ProbeResult reports how many bytes arrived under one serial
// configuration during a probe window.
type ProbeResult struct {
	Config UARTConfig
	Bytes  int
}

// probeConfigs are the candidate settings tried by RunProbe: common
// non-DMX rates first to spot miswired or chattering transceivers,
// then the DMX wire format proper with its single-stop-bit fallback.
var probeConfigs = []UARTConfig{
	{BaudRate: 9600, StopBits: 1},
	{BaudRate: 115200, StopBits: 1},
	{BaudRate: 250000, StopBits: 1},
	{BaudRate: 250000, StopBits: 2},
}

// RunProbe cycles the UART through candidate configurations, counting
// bytes received in a windowMicros listening window each, and reports
// the results through the status writer. It is a wiring diagnostic:
// a healthy DMX line shows traffic at 250000 baud and silence (or
// garbage) elsewhere. The UART is left configured for DMX.
func RunProbe(u UARTDriver, c Clock, windowMicros uint64) ([]ProbeResult, error) {
	results := make([]ProbeResult, 0, len(probeConfigs))

	for _, cfg := range probeConfigs {
		if err := u.Configure(cfg); err != nil {
			return results, err
		}
		statusPrintln("probe: listening at " + utoa(uint64(cfg.BaudRate)) +
			" baud, " + itoa(int(cfg.StopBits)) + " stop")

		count := 0
		deadline := c.Micros() + windowMicros
		for c.Micros() < deadline {
			for u.Buffered() > 0 {
				if _, err := u.ReadByte(); err != nil {
					break
				}
				count++
			}
			time.Sleep(time.Millisecond)
		}

		statusPrintln("probe: " + itoa(count) + " bytes")
		results = append(results, ProbeResult{Config: cfg, Bytes: count})
	}

	err := u.Configure(UARTConfig{BaudRate: BaudRate, StopBits: 2})
	return results, err
}
