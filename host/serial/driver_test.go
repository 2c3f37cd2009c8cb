package serial

import (
	"errors"
	"testing"
)

// fakePort yields a fixed payload, then fails every subsequent read.
type fakePort struct {
	data []byte
	err  error
}

func (p *fakePort) Read(b []byte) (int, error) {
	if len(p.data) == 0 {
		return 0, p.err
	}
	n := copy(b, p.data)
	p.data = p.data[n:]
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) { return len(b), nil }
func (p *fakePort) Close() error                { return nil }

func TestReadByteReportsDeadPort(t *testing.T) {
	portErr := errors.New("device unplugged")
	port := &fakePort{data: []byte{0x00, 0x10, 0x20}, err: portErr}

	d := &Driver{
		bytes: make(chan byte, 16),
		done:  make(chan struct{}),
	}
	// The loop drains the payload, hits the port error and exits.
	d.readLoop(port, d.bytes, d.done)

	// Buffered bytes are still delivered after the reader dies.
	for i, want := range []byte{0x00, 0x10, 0x20} {
		b, err := d.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d failed: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d = 0x%02X, expected 0x%02X", i, b, want)
		}
	}

	// Once drained, the port failure surfaces instead of ErrNoData.
	if _, err := d.ReadByte(); !errors.Is(err, portErr) {
		t.Errorf("ReadByte after drain returned %v, expected the port error", err)
	}
	if d.Buffered() != 0 {
		t.Errorf("Buffered = %d after drain, expected 0", d.Buffered())
	}
}

func TestReadByteIdleLine(t *testing.T) {
	d := &Driver{
		bytes: make(chan byte, 16),
		done:  make(chan struct{}),
	}

	// A healthy but silent line keeps reporting ErrNoData.
	if _, err := d.ReadByte(); !errors.Is(err, ErrNoData) {
		t.Errorf("ReadByte on idle line returned %v, expected ErrNoData", err)
	}

	// Bytes arriving later are picked up as usual.
	d.bytes <- 0x42
	if d.Buffered() != 1 {
		t.Errorf("Buffered = %d, expected 1", d.Buffered())
	}
	if b, err := d.ReadByte(); err != nil || b != 0x42 {
		t.Errorf("ReadByte = (0x%02X, %v), expected (0x42, nil)", b, err)
	}
}
