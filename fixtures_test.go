package wiphy

import (
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

// Helper functions for building raw nl80211 attributes.

func mustMarshalAttributes(attrs []netlink.Attribute) []byte {
	b, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal attributes: %v", err))
	}

	return b
}

func nested(typ uint16, attrs ...netlink.Attribute) netlink.Attribute {
	return netlink.Attribute{Type: typ, Data: mustMarshalAttributes(attrs)}
}

func u8(typ uint16, v uint8) netlink.Attribute {
	return netlink.Attribute{Type: typ, Data: []byte{v}}
}

func u16(typ uint16, v uint16) netlink.Attribute {
	return netlink.Attribute{Type: typ, Data: nlenc.Uint16Bytes(v)}
}

func u32(typ uint16, v uint32) netlink.Attribute {
	return netlink.Attribute{Type: typ, Data: nlenc.Uint32Bytes(v)}
}

func flag(typ uint16) netlink.Attribute {
	return netlink.Attribute{Type: typ}
}

func str(typ uint16, s string) netlink.Attribute {
	return netlink.Attribute{Type: typ, Data: nlenc.Bytes(s)}
}

// phyAttrs builds the top level attributes of a wiphy message for the PHY
// with the specified index, followed by any extra attributes.
func phyAttrs(index uint32, name string, extra ...netlink.Attribute) []netlink.Attribute {
	return append([]netlink.Attribute{
		u32(unix.NL80211_ATTR_WIPHY, index),
		str(unix.NL80211_ATTR_WIPHY_NAME, name),
	}, extra...)
}

// bands builds a wiphy bands attribute from bands keyed by nl80211 band.
func bands(bs ...netlink.Attribute) netlink.Attribute {
	return nested(unix.NL80211_ATTR_WIPHY_BANDS, bs...)
}

// freqs builds a band frequencies attribute from frequencies in MHz.
func freqs(mhz ...uint32) netlink.Attribute {
	var fs []netlink.Attribute
	for i, f := range mhz {
		fs = append(fs, nested(uint16(i), u32(unix.NL80211_FREQUENCY_ATTR_FREQ, f)))
	}

	return nested(unix.NL80211_BAND_ATTR_FREQS, fs...)
}

// rates builds a band bitrates attribute from rates in 100kbit/s.
func rates(rs ...uint32) netlink.Attribute {
	var as []netlink.Attribute
	for i, r := range rs {
		as = append(as, nested(uint16(i), u32(unix.NL80211_BITRATE_ATTR_RATE, r)))
	}

	return nested(unix.NL80211_BAND_ATTR_RATES, as...)
}

func phyMHz(p *PHY) [][]int {
	var out [][]int
	for _, b := range p.Bands() {
		var mhz []int
		for _, f := range b.Frequencies() {
			mhz = append(mhz, f.MHz())
		}

		out = append(out, mhz)
	}

	return out
}
