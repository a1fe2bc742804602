// Package frequency computes averaged magnitude spectra of PCM16 channels
// and spectral shape descriptors.
package frequency

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-leveler/dsp/core"
	"github.com/cwbudde/algo-leveler/dsp/window"
)

// DefaultFFTSize is the analysis frame length used by Analyze callers that
// have no preference.
const DefaultFFTSize = 2048

// ErrInvalidFFTSize reports an FFT size that is not a power of two >= 16.
var ErrInvalidFFTSize = errors.New("fft size must be a power of two >= 16")

// Profile is the averaged one-sided magnitude spectrum of a channel.
// Magnitudes are scaled so a full-scale sine on a bin center reads 1.
type Profile struct {
	SampleRate float64
	FFTSize    int
	Window     window.Type
	ENBW       float64 // equivalent noise bandwidth of the window in bins
	Frames     int     // analysis frames averaged
	Magnitude  []float64

	PeakFreq float64
	Centroid float64 // Hz
	Spread   float64 // Hz
	Flatness float64 // 0..1
	Rolloff  float64 // Hz below which 85% of the energy lies
}

// BinFreq returns the frequency in Hz of bin i.
func (p Profile) BinFreq(i int) float64 {
	return binFreq(i, p.SampleRate, len(p.Magnitude))
}

// Analyzer holds an FFT plan and scratch buffers for one frame size. It is
// not safe for concurrent use.
type Analyzer struct {
	fftSize    int
	windowType window.Type
	enbw       float64
	plan       *algofft.Plan[complex128]
	window     []float64
	norm       float64

	frame    []float64
	spectrum []complex128
	re, im   []float64
	mag      []float64
}

// NewAnalyzer creates an analyzer with a Hann window of fftSize frames.
func NewAnalyzer(fftSize int) (*Analyzer, error) {
	return NewWindowedAnalyzer(fftSize, window.TypeHann)
}

// NewWindowedAnalyzer creates an analyzer with a periodic window of type w.
func NewWindowedAnalyzer(fftSize int, w window.Type) (*Analyzer, error) {
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("frequency: failed to create FFT plan: %w", err)
	}

	bins := fftSize/2 + 1
	a := &Analyzer{
		fftSize:    fftSize,
		windowType: w,
		plan:       plan,
		window:     window.Generate(w, fftSize, window.WithPeriodic()),
		frame:      make([]float64, fftSize),
		spectrum:   make([]complex128, fftSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
	}

	if a.enbw, err = window.EquivalentNoiseBandwidth(a.window); err != nil {
		return nil, fmt.Errorf("frequency: %v window: %w", w, err)
	}

	var sum float64
	for _, c := range a.window {
		sum += c
	}
	a.norm = 2 / (sum * core.FullScale)

	return a, nil
}

// Analyze averages the windowed magnitude spectra of half-overlapping frames
// of samples. Input shorter than one frame is zero padded.
func (a *Analyzer) Analyze(samples []int32, sampleRate float64) (Profile, error) {
	p := Profile{SampleRate: sampleRate, FFTSize: a.fftSize, Window: a.windowType, ENBW: a.enbw}
	if len(samples) == 0 {
		return p, nil
	}

	bins := a.fftSize/2 + 1
	sum := make([]float64, bins)
	hop := a.fftSize / 2

	for start := 0; ; start += hop {
		core.Zero(a.frame)
		end := min(start+a.fftSize, len(samples))
		core.ToFloat(a.frame[:end-start], samples[start:end])

		if err := a.magnitude(); err != nil {
			return Profile{}, err
		}
		vecmath.AddBlockInPlace(sum, a.mag)
		p.Frames++

		if end == len(samples) {
			break
		}
	}

	vecmath.ScaleBlock(sum, sum, a.norm/float64(p.Frames))
	p.Magnitude = sum
	describe(&p)

	return p, nil
}

func (a *Analyzer) magnitude() error {
	if err := window.ApplyCoefficientsInPlace(a.frame, a.window); err != nil {
		return fmt.Errorf("frequency: %w", err)
	}
	for i, v := range a.frame {
		a.spectrum[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.spectrum, a.spectrum); err != nil {
		return fmt.Errorf("frequency: forward FFT: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.spectrum[i])
		a.im[i] = imag(a.spectrum[i])
	}
	vecmath.Magnitude(a.mag, a.re, a.im)
	return nil
}

// Analyze is a one-shot helper around NewAnalyzer.
func Analyze(samples []int32, sampleRate float64, fftSize int) (Profile, error) {
	a, err := NewAnalyzer(fftSize)
	if err != nil {
		return Profile{}, err
	}
	return a.Analyze(samples, sampleRate)
}

func describe(p *Profile) {
	m := p.Magnitude
	n := len(m)

	var sum, energy float64
	peakBin := 0
	for i, v := range m {
		sum += v
		energy += v * v
		if v > m[peakBin] {
			peakBin = i
		}
	}

	p.PeakFreq = binFreq(peakBin, p.SampleRate, n)
	p.Centroid = centroid(m, p.SampleRate, sum)
	p.Spread = spread(m, p.SampleRate, p.Centroid, sum)
	p.Flatness = Flatness(m)
	p.Rolloff = rolloff(m, p.SampleRate, 0.85, energy)
}

// binFreq returns the frequency in Hz of a given bin index.
// fftSize = 2 * (binCount - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	if binCount < 2 {
		return 0
	}
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

func centroid(magnitude []float64, sampleRate, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += binFreq(i, sampleRate, n) * v
	}
	return weightedSum / sumMag
}

func spread(magnitude []float64, sampleRate, cent, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := binFreq(i, sampleRate, n) - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1,
// excluding the DC bin. A spectrum with any zero bin has flatness 0.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sumLin, sumLog := 0.0, 0.0
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

func rolloff(magnitude []float64, sampleRate, percent, totalEnergy float64) float64 {
	n := len(magnitude)
	if n < 2 || totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}
	return binFreq(n-1, sampleRate, n)
}
