//go:build rp2040 || rp2350

package main

import (
	"machine"

	"github.com/codewriterbv/DMX512-Pico/dmx"
)

// RS-485 transceiver wiring (DollaTek-style auto-direction module):
// module TX -> GP9 (UART1 RX). GP8 is claimed for UART1 but unused;
// this receiver never drives the bus.
const (
	rs485UARTTx = machine.GPIO8
	rs485UARTRx = machine.GPIO9
)

// rpUARTDriver adapts machine.UART1 to the dmx UART HAL.
type rpUARTDriver struct {
	uart *machine.UART
}

func newRPUARTDriver() *rpUARTDriver {
	return &rpUARTDriver{uart: machine.UART1}
}

func (d *rpUARTDriver) Configure(cfg dmx.UARTConfig) error {
	err := d.uart.Configure(machine.UARTConfig{
		BaudRate: cfg.BaudRate,
		TX:       rs485UARTTx,
		RX:       rs485UARTRx,
	})
	if err != nil {
		return err
	}
	if err := d.uart.SetFormat(8, cfg.StopBits, machine.ParityNone); err != nil {
		return err
	}

	// Drop anything received under the previous configuration.
	for d.uart.Buffered() > 0 {
		d.uart.ReadByte()
	}
	return nil
}

func (d *rpUARTDriver) Buffered() int {
	return d.uart.Buffered()
}

func (d *rpUARTDriver) ReadByte() (byte, error) {
	return d.uart.ReadByte()
}
