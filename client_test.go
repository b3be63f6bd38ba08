package wiphy

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestClientPHYsError(t *testing.T) {
	want := &TransportError{Op: "dump", Err: io.ErrUnexpectedEOF}
	c := &Client{c: &testOSClient{err: want}}

	phys, err := c.PHYs()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v", want, err)
	}
	if phys != nil {
		t.Fatalf("expected no PHYs, got: %v", phys)
	}
}

func TestTransportError(t *testing.T) {
	err := error(&TransportError{Op: "dump", Err: io.ErrUnexpectedEOF})

	if want, got := "wiphy: dump: unexpected EOF", err.Error(); want != got {
		t.Fatalf("unexpected error string:\n- want: %q\n-  got: %q", want, got)
	}

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("transport error does not unwrap to its cause")
	}
}

var _ osClient = &testOSClient{}

// A testOSClient is an osClient which returns a fixed error.
type testOSClient struct {
	err error
}

func (c *testOSClient) Close() error                     { return c.err }
func (c *testOSClient) Dump(_ *Registry) error           { return c.err }
func (c *testOSClient) Refresh(_ *PHY) error             { return c.err }
func (c *testOSClient) SetDeadline(time.Time) error      { return c.err }
func (c *testOSClient) SetReadDeadline(time.Time) error  { return c.err }
func (c *testOSClient) SetWriteDeadline(time.Time) error { return c.err }

func (c *testOSClient) ExtendedFeature(_ *PHY, _ uint) (bool, error) { return false, c.err }
