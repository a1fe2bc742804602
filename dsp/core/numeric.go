package core

import "math"

const defaultEpsilon = 1e-12

// PCM16 sample range.
const (
	MinSample = -32768
	MaxSample = 32767

	// FullScale is the magnitude used as 0 dBFS reference.
	FullScale = 32768.0
)

// ValidSample reports whether v fits the PCM16 range.
func ValidSample(v int32) bool {
	return v >= MinSample && v <= MaxSample
}

// ClampSample limits v to the PCM16 range.
func ClampSample(v int64) int32 {
	if v > MaxSample {
		return MaxSample
	}
	if v < MinSample {
		return MinSample
	}
	return int32(v)
}

// ScaleSample multiplies v by factor, rounds half away from zero and clamps
// the result to the PCM16 range.
func ScaleSample(v int32, factor float64) int32 {
	scaled := math.Round(float64(v) * factor)
	if scaled >= MaxSample {
		return MaxSample
	}
	if scaled <= MinSample {
		return MinSample
	}
	return int32(scaled)
}

// AbsSample returns |v| widened so that |-32768| does not overflow.
func AbsSample(v int32) int64 {
	if v < 0 {
		return -int64(v)
	}
	return int64(v)
}

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// SampleToDBFS converts a PCM16 magnitude to dB relative to full scale.
func SampleToDBFS(magnitude float64) float64 {
	return LinearToDB(math.Abs(magnitude) / FullScale)
}
