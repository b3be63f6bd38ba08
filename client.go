package wiphy

import (
	"fmt"
	"time"
)

// A Client is a type which can access wireless PHYs using operating
// system-specific operations.
type Client struct {
	c osClient
}

// New creates a new Client.
func New() (*Client, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}

	return &Client{
		c: c,
	}, nil
}

// Close releases resources used by a Client.
func (c *Client) Close() error {
	return c.c.Close()
}

// PHYs returns a list of the system's wireless PHYs.
//
// Messages describing a PHY which cannot be decoded are skipped. Use Dump
// with a Registry to observe the errors for skipped messages.
func (c *Client) PHYs() ([]*PHY, error) {
	r := NewRegistry(nil)
	if err := c.c.Dump(r); err != nil {
		return nil, err
	}

	return r.PHYs(), nil
}

// Dump requests a dump of all wireless PHYs and stores each of them in r.
// PHYs already present in r are updated in place.
//
// If Dump returns an error, r holds whatever PHYs were received before the
// failure occurred.
func (c *Client) Dump(r *Registry) error {
	return c.c.Dump(r)
}

// Refresh requests the current state of a single PHY and replaces the
// state of p with it.
func (c *Client) Refresh(p *PHY) error {
	return c.c.Refresh(p)
}

// ExtendedFeature reports whether p advertises the nl80211 extended feature
// with the specified index, such as
// unix.NL80211_EXT_FEATURE_4WAY_HANDSHAKE_STA_PSK.
//
// The extended features bitmap is only sent by the kernel during a split
// wiphy dump, so it is queried separately rather than stored in p.
func (c *Client) ExtendedFeature(p *PHY, feature uint) (bool, error) {
	return c.c.ExtendedFeature(p, feature)
}

// SetDeadline sets the read and write deadlines associated with the connection.
func (c *Client) SetDeadline(t time.Time) error {
	return c.c.SetDeadline(t)
}

// SetReadDeadline sets the read deadline associated with the connection.
func (c *Client) SetReadDeadline(t time.Time) error {
	return c.c.SetReadDeadline(t)
}

// SetWriteDeadline sets the write deadline associated with the connection.
func (c *Client) SetWriteDeadline(t time.Time) error {
	return c.c.SetWriteDeadline(t)
}

// An osClient is the operating system-specific implementation of Client.
type osClient interface {
	Close() error
	Dump(r *Registry) error
	Refresh(p *PHY) error
	ExtendedFeature(p *PHY, feature uint) (bool, error)
	SetDeadline(t time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// A TransportError is returned when a request to the kernel fails, as
// opposed to a failure to decode the kernel's response.
type TransportError struct {
	// The operation which failed, such as "dump".
	Op string

	// The underlying error from the netlink connection.
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("wiphy: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }
