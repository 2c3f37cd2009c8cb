//go:build rp2040 || rp2350

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ili9341"

	"github.com/codewriterbv/DMX512-Pico/dmx"
)

// ILI9341 TFT wiring (SPI0)
const (
	tftSCK = machine.GPIO18
	tftSDO = machine.GPIO19
	tftCS  = machine.GPIO17
	tftDC  = machine.GPIO16
	tftRST = machine.GPIO20
)

// barChannels is how many channels the panel shows as level bars.
const barChannels = 16

var (
	colorBlack = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colorGreen = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	colorRed   = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	colorBar   = color.RGBA{R: 250, G: 180, B: 0, A: 255}
)

// statusDisplay renders link state and the first channels on a small
// TFT. It is a pure consumer of the receiver: it only reads published
// channel values, never reception state.
type statusDisplay struct {
	dev  *ili9341.Device
	rx   *dmx.Receiver
	vals [barChannels]byte
	up   bool
	init bool
}

func newStatusDisplay(rx *dmx.Receiver) (*statusDisplay, error) {
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 40000000,
		SCK:       tftSCK,
		SDO:       tftSDO,
	})
	if err != nil {
		return nil, err
	}

	dev := ili9341.NewSPI(machine.SPI0, tftDC, tftCS, tftRST)
	dev.Configure(ili9341.Config{})
	dev.SetRotation(ili9341.Rotation270)
	dev.FillScreen(colorBlack)

	return &statusDisplay{dev: dev, rx: rx}, nil
}

// update redraws the parts of the panel that changed. Called from the
// slow timer path only; a redraw is far too slow for the byte path.
func (d *statusDisplay) update(connected bool) {
	if connected != d.up || !d.init {
		c := colorRed
		if connected {
			c = colorGreen
		}
		d.dev.FillRectangle(0, 0, 320, 16, c)
		d.up = connected
	}

	var vals [barChannels]byte
	d.rx.Channels(vals[:], 1)

	const (
		barW   = 16
		barGap = 4
		barTop = 32
		barH   = 200
	)
	for i := 0; i < barChannels; i++ {
		if vals[i] == d.vals[i] && d.init {
			continue
		}
		d.vals[i] = vals[i]

		x := int16(i * (barW + barGap))
		h := int16((int(vals[i]) * barH) / 255)
		if h < barH {
			d.dev.FillRectangle(x, barTop, barW, int16(barH)-h, colorBlack)
		}
		if h > 0 {
			d.dev.FillRectangle(x, barTop+int16(barH)-h, barW, h, colorBar)
		}
	}
	d.init = true
}
