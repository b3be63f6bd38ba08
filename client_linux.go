//go:build linux
// +build linux

package wiphy

import (
	"os"
	"time"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/wiphy/nlattr"
	"golang.org/x/sys/unix"
)

var _ osClient = &client{}

// A client is the Linux implementation of osClient, which makes use of
// netlink, generic netlink, and nl80211 to retrieve wiphy state.
type client struct {
	c             *genetlink.Conn
	familyID      uint16
	familyVersion uint8
}

// newClient dials a generic netlink connection and verifies that nl80211
// is available for use by this package.
func newClient() (*client, error) {
	c, err := genetlink.Dial(nil)
	if err != nil {
		return nil, err
	}

	// Make a best effort to apply the strict options set to provide better
	// errors and validation. We don't apply Strict in the constructor because
	// this library is widely used on a range of kernels and we can't guarantee
	// it will always work on older kernels.
	for _, o := range []netlink.ConnOption{
		netlink.ExtendedAcknowledge,
		netlink.GetStrictCheck,
	} {
		_ = c.SetOption(o, true)
	}

	return initClient(c)
}

func initClient(c *genetlink.Conn) (*client, error) {
	family, err := c.GetFamily(unix.NL80211_GENL_NAME)
	if err != nil {
		// Ensure the genl socket is closed on error to avoid leaking file
		// descriptors.
		_ = c.Close()
		return nil, err
	}

	return &client{
		c:             c,
		familyID:      family.ID,
		familyVersion: family.Version,
	}, nil
}

// Close closes the client's generic netlink connection.
func (c *client) Close() error { return c.c.Close() }

// Dump requests that nl80211 dump all wiphys and feeds each response
// message into r.
func (c *client) Dump(r *Registry) error {
	return c.dump(unix.NL80211_CMD_GET_WIPHY, func(m genetlink.Message) error {
		// Malformed messages are recorded by the Registry and must not stop
		// the remainder of the dump from being collected.
		_ = r.HandleMessage(m)
		return nil
	})
}

// Refresh requests the state of the wiphy identified by p and stores it
// in p.
func (c *client) Refresh(p *PHY) error {
	msgs, err := c.get(
		unix.NL80211_CMD_GET_WIPHY,
		0,
		p.encode,
	)
	if err != nil {
		return &TransportError{Op: "refresh", Err: err}
	}

	if len(msgs) == 0 {
		return os.ErrNotExist
	}

	for _, m := range msgs {
		if m.Header.Command != unix.NL80211_CMD_NEW_WIPHY {
			return errInvalidCommand
		}

		attrs, err := nlattr.Decode(m.Data, phyKind.policy)
		if err != nil {
			return err
		}

		if err := p.storeAttrs(attrs); err != nil {
			return err
		}
	}

	return nil
}

// ExtendedFeature requests a split wiphy dump for p and checks its extended
// features bitmap for feature.
func (c *client) ExtendedFeature(p *PHY, feature uint) (bool, error) {
	msgs, err := c.get(
		unix.NL80211_CMD_GET_WIPHY,
		netlink.Dump,
		func(ae *netlink.AttributeEncoder) {
			p.encode(ae)
			ae.Flag(unix.NL80211_ATTR_SPLIT_WIPHY_DUMP, true)
		},
	)
	if err != nil {
		return false, &TransportError{Op: "extended feature", Err: err}
	}

	// A split dump spreads the PHY's attributes over several messages; only
	// one of them carries the bitmap.
	for _, m := range msgs {
		if m.Header.Command != unix.NL80211_CMD_NEW_WIPHY {
			return false, errInvalidCommand
		}

		attrs, err := nlattr.Decode(m.Data, phyKind.policy)
		if err != nil {
			return false, err
		}

		if id, ok := attrs.Uint(unix.NL80211_ATTR_WIPHY); ok && id != p.id {
			continue
		}

		if features, ok := attrs.Bytes(unix.NL80211_ATTR_EXT_FEATURES); ok {
			return hasExtFeature(features, feature), nil
		}
	}

	return false, nil
}

// SetDeadline sets the read and write deadlines associated with the connection.
func (c *client) SetDeadline(t time.Time) error {
	return c.c.SetDeadline(t)
}

// SetReadDeadline sets the read deadline associated with the connection.
func (c *client) SetReadDeadline(t time.Time) error {
	return c.c.SetReadDeadline(t)
}

// SetWriteDeadline sets the write deadline associated with the connection.
func (c *client) SetWriteDeadline(t time.Time) error {
	return c.c.SetWriteDeadline(t)
}

// dump performs a dump request for cmd and invokes fn once for each
// response message, in the order the kernel sent them. If fn returns an
// error, the remaining messages are discarded and the error is returned.
func (c *client) dump(cmd uint8, fn func(m genetlink.Message) error) error {
	msgs, err := c.get(cmd, netlink.Dump, nil)
	if err != nil {
		return &TransportError{Op: "dump", Err: err}
	}

	for _, m := range msgs {
		if err := fn(m); err != nil {
			return err
		}
	}

	return nil
}

// get performs a request/response interaction with nl80211.
func (c *client) get(
	cmd uint8,
	flags netlink.HeaderFlags,
	// May be nil; used to apply optional parameters.
	params func(ae *netlink.AttributeEncoder),
) ([]genetlink.Message, error) {
	ae := netlink.NewAttributeEncoder()
	if params != nil {
		// Optionally apply more parameters to the attribute encoder.
		params(ae)
	}

	// Note: don't send netlink.Acknowledge or we get an extra message back from
	// the kernel which doesn't seem useful as of now.
	return c.execute(cmd, flags, ae)
}

// execute executes the specified command with additional header flags and input
// netlink request attributes. The netlink.Request header flag is automatically
// set.
func (c *client) execute(
	cmd uint8,
	flags netlink.HeaderFlags,
	ae *netlink.AttributeEncoder,
) ([]genetlink.Message, error) {
	b, err := ae.Encode()
	if err != nil {
		return nil, err
	}

	return c.c.Execute(
		genetlink.Message{
			Header: genetlink.Header{
				Command: cmd,
				Version: c.familyVersion,
			},
			Data: b,
		},
		// Always pass the genetlink family ID and request flag.
		c.familyID,
		netlink.Request|flags,
	)
}

// encode provides an encoding function for the attributes which identify
// p in a request.
func (p *PHY) encode(ae *netlink.AttributeEncoder) {
	ae.Uint32(unix.NL80211_ATTR_WIPHY, uint32(p.Index()))
}
