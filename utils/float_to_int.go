// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a sample in [-1, 1] to 16-bit PCM, clamping
// anything outside that range.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x, -1, 1)

	// 32767 keeps +1.0 from overflowing.
	return int16(x * 32767.0)
}

// Float32ToPCM scales a sample in [-1, 1] to a signed integer of the given
// bit depth (8, 16, 24 or 32). Unknown depths are treated as 16-bit.
func Float32ToPCM(x float32, bitDepth int) int {
	x = Clamp(x, -1, 1)

	return int(float64(x) * float64(PCMScale(bitDepth)-1))
}

// PCMToFloat32 is the inverse of Float32ToPCM.
func PCMToFloat32(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(PCMScale(bitDepth)))
}

// PCMScale returns 2^(bitDepth-1), the magnitude of the most negative value
// representable at bitDepth.
func PCMScale(bitDepth int) int64 {
	switch bitDepth {
	case 8, 16, 24, 32:
		return int64(1) << (bitDepth - 1)
	default:
		return 1 << 15
	}
}

// PCM16LEToFloat32 decodes little-endian signed 16-bit samples from src into
// dst and returns the number of samples written.
func PCM16LEToFloat32(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		v := int16(uint16(src[2*i]) | uint16(src[2*i+1])<<8)
		dst[i] = float32(v) / 32768.0
	}

	return n
}
