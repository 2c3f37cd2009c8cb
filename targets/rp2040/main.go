//go:build rp2040 || rp2350

package main

import (
	"machine"

	"github.com/codewriterbv/DMX512-Pico/dmx"
)

// slowTickMicros is the cadence of the non-realtime work: staleness
// check, status output, display refresh, LED blink. The byte path in
// Monitor.Poll runs every loop iteration.
const slowTickMicros = 50 * 1000

func main() {
	// Status output over USB CDC.
	machine.Serial.Configure(machine.UARTConfig{})
	dmx.SetStatusWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})

	clk := hwClock{}
	dmx.SetClock(clk)

	uart := newRPUARTDriver()
	dmx.SetUARTDriver(uart)

	// GP22 held low at boot runs the wiring probe before normal
	// reception starts.
	probePin := machine.GPIO22
	probePin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	if !probePin.Get() {
		dmx.RunProbe(uart, clk, 10*1000*1000)
	}

	if err := uart.Configure(dmx.UARTConfig{BaudRate: dmx.BaudRate, StopBits: 2}); err != nil {
		machine.Serial.Write([]byte("uart configure failed: " + err.Error() + "\r\n"))
		for {
		}
	}

	rx := dmx.NewReceiver()
	mon := dmx.NewMonitor(dmx.MustUART(), dmx.MustClock(), rx)

	disp, dispErr := newStatusDisplay(rx)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	var nextSlow uint64
	ledState := false

	for {
		mon.Poll()

		now := clk.Micros()
		if now < nextSlow {
			continue
		}
		nextSlow = now + slowTickMicros

		mon.Tick()
		connected := rx.Connected(now)

		if dispErr == nil {
			disp.update(connected)
		}

		// Fast blink while receiving, slow when the link is down.
		period := uint64(1000 * 1000)
		if connected {
			period = 250 * 1000
		}
		if on := (now/period)%2 == 0; on != ledState {
			ledState = on
			led.Set(on)
		}
	}
}
