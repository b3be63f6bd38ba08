// Command wiphy prints the wireless PHYs known to nl80211, along with their
// bands, frequencies and bitrates.
//
// Usage:
//
//	wiphy [flags]
//
// Flags:
//
//	-format string  Output format: text, json, yaml (default "text")
//	-v              Log decoding progress to stderr
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mdlayher/wiphy"
	"gopkg.in/yaml.v3"
)

const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wiphy", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		format  = fs.String("format", "text", "Output format: text, json, yaml")
		verbose = fs.Bool("v", false, "Log decoding progress to stderr")
	)

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	switch *format {
	case "text", "json", "yaml":
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q\n", *format)
		return exitUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	c, err := wiphy.New()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open nl80211: %v\n", err)
		return exitFailure
	}
	defer c.Close()

	r := wiphy.NewRegistry(logger)
	if err := c.Dump(r); err != nil {
		fmt.Fprintf(stderr, "Error: failed to dump PHYs: %v\n", err)
		return exitFailure
	}

	if err := write(stdout, *format, buildOutput(r.PHYs())); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if n := len(r.Errors()); n > 0 {
		logger.Warn("some PHY messages were skipped", slog.Int("skipped", n))
	}

	return exitSuccess
}

// PHYOutput represents a single PHY for display.
type PHYOutput struct {
	Index        int          `json:"index" yaml:"index"`
	Name         string       `json:"name" yaml:"name"`
	Generation   int          `json:"generation,omitempty" yaml:"generation,omitempty"`
	MaxScanSSIDs int          `json:"max_scan_ssids,omitempty" yaml:"max_scan_ssids,omitempty"`
	Bands        []BandOutput `json:"bands,omitempty" yaml:"bands,omitempty"`
}

// BandOutput represents a single band for display.
type BandOutput struct {
	Band        string            `json:"band" yaml:"band"`
	Frequencies []FrequencyOutput `json:"frequencies,omitempty" yaml:"frequencies,omitempty"`
	Bitrates    []float64         `json:"bitrates_mbps,omitempty" yaml:"bitrates_mbps,omitempty"`
}

// FrequencyOutput represents a single frequency for display.
type FrequencyOutput struct {
	MHz        int     `json:"mhz" yaml:"mhz"`
	Disabled   bool    `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Radar      bool    `json:"radar,omitempty" yaml:"radar,omitempty"`
	MaxTXPower float64 `json:"max_tx_power_dbm,omitempty" yaml:"max_tx_power_dbm,omitempty"`
}

func buildOutput(phys []*wiphy.PHY) []PHYOutput {
	out := make([]PHYOutput, 0, len(phys))
	for _, p := range phys {
		po := PHYOutput{
			Index:        p.Index(),
			Name:         p.Name(),
			Generation:   p.Generation(),
			MaxScanSSIDs: p.MaxScanSSIDs(),
		}

		for _, b := range p.Bands() {
			bo := BandOutput{Band: b.Kind().String()}

			for _, f := range b.Frequencies() {
				dBm, _ := f.MaxTXPower()
				bo.Frequencies = append(bo.Frequencies, FrequencyOutput{
					MHz:        f.MHz(),
					Disabled:   f.Disabled(),
					Radar:      f.Radar(),
					MaxTXPower: dBm,
				})
			}

			for _, r := range b.Bitrates() {
				bo.Bitrates = append(bo.Bitrates, float64(r.BitsPerSecond())/1e6)
			}

			po.Bands = append(po.Bands, bo)
		}

		out = append(out, po)
	}

	return out
}

func write(w io.Writer, format string, phys []PHYOutput) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(phys, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(phys)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return writeText(w, phys)
	}
}

func writeText(w io.Writer, phys []PHYOutput) error {
	for _, p := range phys {
		if _, err := fmt.Fprintf(w, "%s (index %d)\n", p.Name, p.Index); err != nil {
			return err
		}

		for _, b := range p.Bands {
			fmt.Fprintf(w, "  band %s: %d frequencies, %d bitrates\n",
				b.Band, len(b.Frequencies), len(b.Bitrates))

			for _, f := range b.Frequencies {
				var notes string
				if f.Disabled {
					notes += " (disabled)"
				}
				if f.Radar {
					notes += " (radar detection)"
				}

				fmt.Fprintf(w, "    %d MHz [%.2f dBm]%s\n", f.MHz, f.MaxTXPower, notes)
			}
		}
	}

	return nil
}
