// Package wiphy provides access to the wireless physical devices (PHYs)
// known to the Linux kernel's nl80211 subsystem, along with their bands,
// frequencies and bitrates.
package wiphy

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// A BandKind is the frequency band of a Band.
type BandKind int

// Possible BandKind values.
//
// NOTE: BandKind copies the ordering of nl80211's band constants.
const (
	Band2GHz BandKind = iota
	Band5GHz
	Band60GHz
	Band6GHz
	BandS1GHz
)

// String returns the string representation of a BandKind.
func (k BandKind) String() string {
	switch k {
	case Band2GHz:
		return "2.4 GHz"
	case Band5GHz:
		return "5 GHz"
	case Band60GHz:
		return "60 GHz"
	case Band6GHz:
		return "6 GHz"
	case BandS1GHz:
		return "sub-1 GHz"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// A DFSState is the dynamic frequency selection state of a Frequency.
type DFSState int

// Possible DFSState values.
//
// NOTE: DFSState copies the ordering of nl80211's DFS state constants.
const (
	// DFSUsable indicates that a channel may be used, but a channel
	// availability check must be performed first.
	DFSUsable DFSState = iota

	// DFSUnavailable indicates that radar was detected on a channel.
	DFSUnavailable

	// DFSAvailable indicates that a channel availability check succeeded.
	DFSAvailable
)

// String returns the string representation of a DFSState.
func (s DFSState) String() string {
	switch s {
	case DFSUsable:
		return "usable"
	case DFSUnavailable:
		return "unavailable"
	case DFSAvailable:
		return "available"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// A PHY is a wireless physical device.
type PHY struct {
	*Object
}

// Index returns the kernel's index for the PHY. The index never changes
// for the lifetime of a PHY.
//
// The kernel reports indices as 32-bit unsigned integers; on 32-bit
// platforms indices of 1<<31 and above cannot be represented and wrap
// negative. The kernel allocates indices sequentially from zero.
func (p *PHY) Index() int { return int(p.id) }

// Name returns the PHY's name, such as "phy0".
func (p *PHY) Name() string {
	s, _ := p.attrs.String(unix.NL80211_ATTR_WIPHY_NAME)
	return s
}

// Generation returns the nl80211 generation counter reported alongside the
// PHY, which changes whenever the kernel's view of the PHY changes.
func (p *PHY) Generation() int {
	v, _ := p.attrs.Uint32(unix.NL80211_ATTR_GENERATION)
	return int(v)
}

// MaxScanSSIDs returns the number of SSIDs the PHY can scan for at once.
func (p *PHY) MaxScanSSIDs() int {
	v, _ := p.attrs.Uint8(unix.NL80211_ATTR_MAX_NUM_SCAN_SSIDS)
	return int(v)
}

// RetryLimits returns the PHY's short and long frame retry limits.
func (p *PHY) RetryLimits() (short, long int) {
	s, _ := p.attrs.Uint8(unix.NL80211_ATTR_WIPHY_RETRY_SHORT)
	l, _ := p.attrs.Uint8(unix.NL80211_ATTR_WIPHY_RETRY_LONG)
	return int(s), int(l)
}

// Bands returns the frequency bands supported by the PHY.
func (p *PHY) Bands() []*Band {
	cs := p.Children(unix.NL80211_ATTR_WIPHY_BANDS)
	bands := make([]*Band, 0, len(cs))
	for _, c := range cs {
		bands = append(bands, &Band{Object: c})
	}

	return bands
}

// A Band is a frequency band supported by a PHY.
type Band struct {
	*Object
}

// Kind returns the frequency band described by b.
func (b *Band) Kind() BandKind { return BandKind(b.member) }

// Frequencies returns the frequencies the PHY supports within the band.
func (b *Band) Frequencies() []*Frequency {
	cs := b.Children(unix.NL80211_BAND_ATTR_FREQS)
	freqs := make([]*Frequency, 0, len(cs))
	for _, c := range cs {
		freqs = append(freqs, &Frequency{Object: c})
	}

	return freqs
}

// Bitrates returns the legacy bitrates the PHY supports within the band.
func (b *Band) Bitrates() []*Bitrate {
	cs := b.Children(unix.NL80211_BAND_ATTR_RATES)
	rates := make([]*Bitrate, 0, len(cs))
	for _, c := range cs {
		rates = append(rates, &Bitrate{Object: c})
	}

	return rates
}

// HTCapabilities returns the band's 802.11n HT capabilities field. ok is
// false if the band does not support HT.
func (b *Band) HTCapabilities() (capa uint16, ok bool) {
	return b.attrs.Uint16(unix.NL80211_BAND_ATTR_HT_CAPA)
}

// HTMCSSet returns the band's 16 byte 802.11n supported MCS set, or nil.
func (b *Band) HTMCSSet() []byte {
	v, _ := b.attrs.Bytes(unix.NL80211_BAND_ATTR_HT_MCS_SET)
	return v
}

// AMPDU returns the band's A-MPDU length exponent and minimum MPDU start
// spacing, as encoded in the HT capabilities element.
func (b *Band) AMPDU() (factor, density uint8) {
	factor, _ = b.attrs.Uint8(unix.NL80211_BAND_ATTR_HT_AMPDU_FACTOR)
	density, _ = b.attrs.Uint8(unix.NL80211_BAND_ATTR_HT_AMPDU_DENSITY)
	return factor, density
}

// VHTCapabilities returns the band's 802.11ac VHT capabilities field. ok
// is false if the band does not support VHT.
func (b *Band) VHTCapabilities() (capa uint32, ok bool) {
	return b.attrs.Uint32(unix.NL80211_BAND_ATTR_VHT_CAPA)
}

// VHTMCSSet returns the band's 8 byte 802.11ac supported MCS set, or nil.
func (b *Band) VHTMCSSet() []byte {
	v, _ := b.attrs.Bytes(unix.NL80211_BAND_ATTR_VHT_MCS_SET)
	return v
}

// A Frequency is a channel center frequency within a Band.
type Frequency struct {
	*Object
}

// MHz returns the center frequency in MHz.
func (f *Frequency) MHz() int {
	v, _ := f.attrs.Uint32(unix.NL80211_FREQUENCY_ATTR_FREQ)
	return int(v)
}

// Disabled reports whether the channel is disabled in the current
// regulatory domain.
func (f *Frequency) Disabled() bool { return f.attrs.Flag(unix.NL80211_FREQUENCY_ATTR_DISABLED) }

// NoIR reports whether the PHY may not initiate radiation on the channel.
func (f *Frequency) NoIR() bool { return f.attrs.Flag(unix.NL80211_FREQUENCY_ATTR_NO_IR) }

// Radar reports whether radar detection is required on the channel.
func (f *Frequency) Radar() bool { return f.attrs.Flag(unix.NL80211_FREQUENCY_ATTR_RADAR) }

// NoHT40Minus reports whether HT40- is not allowed using the channel as
// its primary channel.
func (f *Frequency) NoHT40Minus() bool {
	return f.attrs.Flag(unix.NL80211_FREQUENCY_ATTR_NO_HT40_MINUS)
}

// NoHT40Plus reports whether HT40+ is not allowed using the channel as its
// primary channel.
func (f *Frequency) NoHT40Plus() bool {
	return f.attrs.Flag(unix.NL80211_FREQUENCY_ATTR_NO_HT40_PLUS)
}

// No80MHz reports whether 80 MHz operation is not allowed on the channel.
func (f *Frequency) No80MHz() bool { return f.attrs.Flag(unix.NL80211_FREQUENCY_ATTR_NO_80MHZ) }

// No160MHz reports whether 160 MHz operation is not allowed on the channel.
func (f *Frequency) No160MHz() bool { return f.attrs.Flag(unix.NL80211_FREQUENCY_ATTR_NO_160MHZ) }

// MaxTXPower returns the maximum transmit power on the channel in dBm. ok
// is false if the kernel did not report a limit.
func (f *Frequency) MaxTXPower() (dBm float64, ok bool) {
	// * @NL80211_FREQUENCY_ATTR_MAX_TX_POWER: Maximum transmission power in mBm
	v, ok := f.attrs.Uint32(unix.NL80211_FREQUENCY_ATTR_MAX_TX_POWER)
	return float64(v) / 100, ok
}

// DFS returns the channel's dynamic frequency selection state and the time
// spent in that state. ok is false for channels which do not require DFS.
func (f *Frequency) DFS() (state DFSState, d time.Duration, ok bool) {
	s, ok := f.attrs.Uint32(unix.NL80211_FREQUENCY_ATTR_DFS_STATE)
	if !ok {
		return 0, 0, false
	}

	// * @NL80211_FREQUENCY_ATTR_DFS_TIME: time in milliseconds for how long
	// this channel is in this DFS state.
	ms, _ := f.attrs.Uint32(unix.NL80211_FREQUENCY_ATTR_DFS_TIME)
	return DFSState(s), time.Duration(ms) * time.Millisecond, true
}

// A Bitrate is a legacy bitrate supported within a Band.
type Bitrate struct {
	*Object
}

// BitsPerSecond returns the bitrate in bits/second.
func (r *Bitrate) BitsPerSecond() int {
	// Scale to bits/second as base unit instead of 100kbits/second.
	// * @NL80211_BITRATE_ATTR_RATE: Bitrate in units of 100 kbps
	v, _ := r.attrs.Uint32(unix.NL80211_BITRATE_ATTR_RATE)
	return int(v) * 100 * 1000
}

// ShortPreamble reports whether short preamble is supported for the
// bitrate in the 2.4 GHz band.
func (r *Bitrate) ShortPreamble() bool {
	return r.attrs.Flag(unix.NL80211_BITRATE_ATTR_2GHZ_SHORTPREAMBLE)
}

// hasExtFeature reports whether bit feature is set in an nl80211 extended
// features bitmap.
func hasExtFeature(features []byte, feature uint) bool {
	if feature/8 >= uint(len(features)) {
		return false
	}

	return features[feature/8]&(1<<(feature%8)) != 0
}
