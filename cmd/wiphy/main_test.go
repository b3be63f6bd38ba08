package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/mdlayher/wiphy"
	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"
)

func TestBuildOutputFormats(t *testing.T) {
	r := wiphy.NewRegistry(nil)
	if err := r.Handle(mustMarshalAttributes([]netlink.Attribute{
		{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(0)},
		{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy0")},
		nested(unix.NL80211_ATTR_WIPHY_BANDS,
			nested(unix.NL80211_BAND_2GHZ,
				nested(unix.NL80211_BAND_ATTR_FREQS,
					nested(0,
						netlink.Attribute{Type: unix.NL80211_FREQUENCY_ATTR_FREQ, Data: nlenc.Uint32Bytes(2412)},
						netlink.Attribute{Type: unix.NL80211_FREQUENCY_ATTR_MAX_TX_POWER, Data: nlenc.Uint32Bytes(2000)},
					),
				),
				nested(unix.NL80211_BAND_ATTR_RATES,
					nested(0, netlink.Attribute{Type: unix.NL80211_BITRATE_ATTR_RATE, Data: nlenc.Uint32Bytes(55)}),
				),
			),
		),
	})); err != nil {
		t.Fatalf("failed to handle message: %v", err)
	}

	want := []PHYOutput{{
		Index: 0,
		Name:  "phy0",
		Bands: []BandOutput{{
			Band: "2.4 GHz",
			Frequencies: []FrequencyOutput{{
				MHz:        2412,
				MaxTXPower: 20,
			}},
			Bitrates: []float64{5.5},
		}},
	}}

	got := buildOutput(r.PHYs())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}

	tests := []struct {
		format    string
		unmarshal func([]byte, interface{}) error
	}{
		{format: "json", unmarshal: json.Unmarshal},
		{format: "yaml", unmarshal: yaml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := write(&buf, tt.format, got); err != nil {
				t.Fatalf("failed to write output: %v", err)
			}

			var out []PHYOutput
			if err := tt.unmarshal(buf.Bytes(), &out); err != nil {
				t.Fatalf("failed to parse output: %v", err)
			}

			if diff := cmp.Diff(want, out); diff != "" {
				t.Fatalf("unexpected parsed output (-want +got):\n%s", diff)
			}
		})
	}

	var buf bytes.Buffer
	if err := write(&buf, "text", got); err != nil {
		t.Fatalf("failed to write text: %v", err)
	}

	const text = "phy0 (index 0)\n  band 2.4 GHz: 1 frequencies, 1 bitrates\n    2412 MHz [20.00 dBm]\n"
	if diff := cmp.Diff(text, buf.String()); diff != "" {
		t.Fatalf("unexpected text output (-want +got):\n%s", diff)
	}
}

func TestRunBadFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-format", "xml"}, &stdout, &stderr); code != exitUsage {
		t.Fatalf("unexpected exit code: %d", code)
	}
}

func mustMarshalAttributes(attrs []netlink.Attribute) []byte {
	b, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		panic(err)
	}

	return b
}

func nested(typ uint16, attrs ...netlink.Attribute) netlink.Attribute {
	return netlink.Attribute{Type: typ, Data: mustMarshalAttributes(attrs)}
}
