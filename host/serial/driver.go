package serial

import (
	"errors"
	"io"
	"sync"

	"github.com/codewriterbv/DMX512-Pico/dmx"
)

// ErrNoData is returned by ReadByte when nothing is buffered.
var ErrNoData = errors.New("serial: no data buffered")

// Driver adapts a host serial port to the dmx UART HAL. A background
// reader drains the port into a buffered channel so the poll loop's
// Buffered/ReadByte contract holds without blocking.
//
// USB serial adapters deliver bytes in batches, so inter-byte gaps
// below the adapter's latency are not observable on a host. Breaks
// between DMX frames (typically a millisecond or more of line idle)
// still classify correctly; host reception is meant for monitoring
// and diagnostics, not tight real-time work.
type Driver struct {
	device string

	mu    sync.Mutex
	port  Port
	bytes chan byte
	done  chan struct{}
	err   error // sticky reader failure, reported once buffered bytes drain
}

// NewDriver creates a driver for a serial device path. The port is
// opened on the first Configure call.
func NewDriver(device string) *Driver {
	return &Driver{device: device}
}

// Configure reopens the port with the given serial parameters and
// discards anything previously buffered.
func (d *Driver) Configure(cfg dmx.UARTConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.port != nil {
		close(d.done)
		d.port.Close()
		d.port = nil
	}

	c := DefaultConfig(d.device)
	c.Baud = int(cfg.BaudRate)
	c.StopBits = int(cfg.StopBits)

	port, err := Open(c)
	if err != nil {
		return err
	}

	d.port = port
	d.bytes = make(chan byte, 4096)
	d.done = make(chan struct{})
	d.err = nil
	go d.readLoop(port, d.bytes, d.done)
	return nil
}

// setErr records the first reader failure; later failures keep the
// original cause.
func (d *Driver) setErr(err error) {
	d.mu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.mu.Unlock()
}

// readLoop drains the port into the byte channel until done closes.
// Bytes are dropped when the consumer falls behind; the receiver
// treats the resulting gap as a truncated frame and recovers on the
// next break.
func (d *Driver) readLoop(port Port, bytes chan byte, done chan struct{}) {
	buf := make([]byte, 512)
	for {
		select {
		case <-done:
			return
		default:
		}

		n, err := port.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case bytes <- buf[i]:
			default:
			}
		}
		if err != nil && err != io.EOF {
			// Leave the failure for ReadByte to report once the
			// buffered bytes drain, so a dead port is
			// distinguishable from an idle line.
			d.setErr(err)
			return
		}
	}
}

// Buffered returns the number of bytes available to read.
func (d *Driver) Buffered() int {
	d.mu.Lock()
	ch := d.bytes
	d.mu.Unlock()
	if ch == nil {
		return 0
	}
	return len(ch)
}

// ReadByte returns the next buffered byte. Once the reader has died
// and the buffer is drained, it returns the underlying port error
// instead of ErrNoData.
func (d *Driver) ReadByte() (byte, error) {
	d.mu.Lock()
	ch := d.bytes
	err := d.err
	d.mu.Unlock()
	if ch == nil {
		return 0, ErrNoData
	}
	select {
	case b := <-ch:
		return b, nil
	default:
		if err != nil {
			return 0, err
		}
		return 0, ErrNoData
	}
}

// Close stops the reader and closes the port.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.port == nil {
		return nil
	}
	close(d.done)
	err := d.port.Close()
	d.port = nil
	return err
}
