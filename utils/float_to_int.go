// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalized sample to 16-bit PCM as round(x*32767),
// clamped to the int16 range. NaN maps to silence.
func Float32ToInt16(x float32) int16 {
	if x != x {
		return 0
	}

	v := math.Round(float64(x) * math.MaxInt16)
	if v > math.MaxInt16 {
		return math.MaxInt16
	} else if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// Int16ToFloat32 normalizes a 16-bit PCM sample to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// IntToFloat32 normalizes a signed PCM sample of the given bit depth.
func IntToFloat32(v int, bitDepth int) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		bitDepth = 16
	}

	return float32(float64(v) / float64(int64(1)<<(bitDepth-1)))
}
