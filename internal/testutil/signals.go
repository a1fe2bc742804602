package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// SinePCM generates a PCM16 sine wave with the given peak amplitude.
func SinePCM(freqHz, sampleRate float64, amplitude int32, length int) []int32 {
	return Quantize(DeterministicSine(freqHz, sampleRate, float64(amplitude), length))
}

// NoisePCM generates white PCM16 noise in [-amplitude, amplitude] with a
// fixed seed for reproducibility.
func NoisePCM(seed int64, amplitude int32, length int) []int32 {
	out := make([]int32, length)
	rng := rand.New(rand.NewSource(seed))
	span := int64(amplitude)*2 + 1
	for i := range out {
		out[i] = int32(rng.Int63n(span) - int64(amplitude))
	}
	return out
}

// Burst describes a sine segment for Bursts.
type Burst struct {
	Length    int
	Amplitude int32
}

// Bursts concatenates sine segments of freqHz, each with its own amplitude.
// Every segment starts at phase zero so segment boundaries are zero samples.
func Bursts(freqHz, sampleRate float64, bursts ...Burst) []int32 {
	var out []int32
	for _, b := range bursts {
		out = append(out, SinePCM(freqHz, sampleRate, b.Amplitude, b.Length)...)
	}
	return out
}

// Quantize rounds float samples to the PCM16 range.
func Quantize(in []float64) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		r := math.Round(v)
		switch {
		case r > math.MaxInt16:
			r = math.MaxInt16
		case r < math.MinInt16:
			r = math.MinInt16
		}
		out[i] = int32(r)
	}
	return out
}
