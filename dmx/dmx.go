// DMX512 reception core
// Reassembles 513-slot DMX frames (start code + 512 channels) from a
// raw RS-485 byte stream, using inter-byte timing gaps to locate frame
// boundaries. The UART peripheral, system clock and status output are
// injected through the HAL interfaces in this package.
package dmx

// DMX512 wire parameters
const (
	// BaudRate is the fixed DMX512 serial rate (8 data bits, 2 stop
	// bits, no parity). One byte occupies 44us on the wire.
	BaudRate = 250000

	// StartCode identifies standard dimmer-channel frames. Frames
	// carrying any other start code are discarded.
	StartCode = 0x00

	// ChannelsPerFrame is the number of channel slots in a universe.
	ChannelsPerFrame = 512

	// BreakMinMicros is the minimum duration of a DMX break. Any
	// inter-byte gap longer than this marks the start of a new frame.
	BreakMinMicros = 88
)

// frameSlots is the full frame size: start code plus channel slots.
const frameSlots = ChannelsPerFrame + 1

// DefaultTimeoutMicros is the staleness window for Connected: the link
// is considered live while the last completed frame is younger than
// this. Adjustable per receiver with SetTimeout.
const DefaultTimeoutMicros = 2000 * 1000
