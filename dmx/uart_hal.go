package dmx

// UARTConfig is the serial configuration the receiver cares about.
// DMX512 is 250000 baud 8N2; probing may temporarily use other rates
// and the widely tolerated single stop bit.
type UARTConfig struct {
	BaudRate uint32
	StopBits uint8
}

// UARTDriver is the abstract byte source that core code consumes.
// Platform code (machine.UART on TinyGo, a tarm/serial port on the
// host) provides the implementation.
type UARTDriver interface {
	// Configure applies a serial configuration, discarding any
	// buffered input.
	Configure(cfg UARTConfig) error

	// Buffered returns the number of bytes available to read.
	Buffered() int

	// ReadByte returns the next received byte. Only valid when
	// Buffered reports data available.
	ReadByte() (byte, error)
}

// Global singleton used by target wiring code.
var uartDriver UARTDriver

// SetUARTDriver is called by target-specific code to register its driver.
func SetUARTDriver(d UARTDriver) {
	uartDriver = d
}

// MustUART returns the configured driver or panics if missing.
func MustUART() UARTDriver {
	if uartDriver == nil {
		panic("UART driver not configured")
	}
	return uartDriver
}
