package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-leveler/dsp/core"
	"github.com/cwbudde/algo-leveler/dsp/leveler"
	"github.com/cwbudde/algo-leveler/dsp/window"
	"github.com/cwbudde/algo-leveler/stats/frequency"
	timestats "github.com/cwbudde/algo-leveler/stats/time"
)

// silenceDBFS marks chunks too quiet to count toward level variation.
const silenceDBFS = -60.0

// Side holds the measurements of one version of a channel.
type Side struct {
	Stats    timestats.Stats
	Spectrum frequency.Profile
	// VariationDB is the standard deviation of the per-second mean level in
	// dB over non-silent seconds.
	VariationDB float64
}

// Channel is the comparison of one channel operation.
type Channel struct {
	Label   string
	Before  Side
	After   Side
	Summary leveler.Summary
}

// GainDB is the RMS level change in dB.
func (c Channel) GainDB() float64 {
	if math.IsInf(c.Before.Stats.RMSDBFS, -1) || math.IsInf(c.After.Stats.RMSDBFS, -1) {
		return 0
	}
	return c.After.Stats.RMSDBFS - c.Before.Stats.RMSDBFS
}

// Compare measures before and after, which must be sampled at sampleRate.
// Spectra are taken with analysis window win.
func Compare(label string, before, after []int32, sampleRate float64, win window.Type, summary leveler.Summary) (Channel, error) {
	a, err := frequency.NewWindowedAnalyzer(frequency.DefaultFFTSize, win)
	if err != nil {
		return Channel{}, err
	}

	c := Channel{Label: label, Summary: summary}
	if c.Before, err = measure(a, before, sampleRate); err != nil {
		return Channel{}, fmt.Errorf("%s before: %w", label, err)
	}
	if c.After, err = measure(a, after, sampleRate); err != nil {
		return Channel{}, fmt.Errorf("%s after: %w", label, err)
	}
	return c, nil
}

func measure(a *frequency.Analyzer, samples []int32, sampleRate float64) (Side, error) {
	spectrum, err := a.Analyze(samples, sampleRate)
	if err != nil {
		return Side{}, err
	}
	return Side{
		Stats:       timestats.Calculate(samples),
		Spectrum:    spectrum,
		VariationDB: Variation(samples, int(sampleRate)),
	}, nil
}

// Variation returns the standard deviation in dB of the mean magnitude of
// chunkSize-frame chunks, ignoring chunks below -60 dBFS.
func Variation(samples []int32, chunkSize int) float64 {
	var levels []float64
	for _, c := range timestats.ChunkStats(samples, chunkSize) {
		db := core.SampleToDBFS(c.Mean)
		if db > silenceDBFS {
			levels = append(levels, db)
		}
	}
	if len(levels) < 2 {
		return 0
	}

	var mean float64
	for _, l := range levels {
		mean += l
	}
	mean /= float64(len(levels))

	var sq float64
	for _, l := range levels {
		sq += (l - mean) * (l - mean)
	}
	return math.Sqrt(sq / float64(len(levels)))
}

// Render writes one table row per channel, followed by the spectral
// analysis settings.
func Render(w io.Writer, channels []Channel) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tPeak [dBFS]\tRMS [dBFS]\tCrest [dB]\tVariation [dB]\tCentroid [Hz]\tClipped\tLeaders +/-\tFactor\tGain [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t-----------\t----------\t----------\t--------------\t-------------\t-------\t-----------\t------\t---------\n"); err != nil {
		return err
	}

	for _, c := range channels {
		b, a := c.Before, c.After
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f -> %.2f\t%.0f -> %.0f\t%d -> %d\t%d/%d\t%.2f..%.2f\t%+.2f\n",
			c.Label,
			arrow(b.Stats.PeakDBFS, a.Stats.PeakDBFS),
			arrow(b.Stats.RMSDBFS, a.Stats.RMSDBFS),
			arrow(b.Stats.CrestFactorDB, a.Stats.CrestFactorDB),
			b.VariationDB, a.VariationDB,
			b.Spectrum.Centroid, a.Spectrum.Centroid,
			b.Stats.Clipped, a.Stats.Clipped,
			c.Summary.PositiveLeaders, c.Summary.NegativeLeaders,
			c.Summary.MinFactor, c.Summary.MaxFactor,
			c.GainDB(),
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(channels) == 0 {
		return nil
	}
	spec := channels[0].After.Spectrum
	_, err := fmt.Fprintf(w, "\nSpectra: %s window, %d-point FFT, ENBW %.2f bins, sidelobes %.1f dB\n",
		spec.Window, spec.FFTSize, spec.ENBW, window.Info(spec.Window).HighestSidelobe)
	return err
}

func arrow(before, after float64) string {
	return formatDB(before) + " -> " + formatDB(after)
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", v)
}
