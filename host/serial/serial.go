package serial

import (
	"io"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate (250000 for DMX512)
	Baud int

	// Stop bits (DMX512 uses 2; some adapters only do 1)
	StopBits int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the DMX512 wire configuration for a device.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        250000, // DMX512 rate
		StopBits:    2,      // 8N2 wire format
		ReadTimeout: 20,     // keep the reader loop responsive
	}
}
