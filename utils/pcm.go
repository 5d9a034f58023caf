// SPDX-License-Identifier: EPL-2.0

package utils

// PCM16Scale maps signed 16-bit PCM onto [-1, 1).
const PCM16Scale = 32768.0

// Int16ToFloat32 normalizes one 16-bit sample by dividing by 32768.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / PCM16Scale
}

// IntsToFloat32 normalizes 16-bit samples stored as ints, as produced by
// go-audio's IntBuffer, into dst. dst must be at least len(src) long.
func IntsToFloat32(dst []float32, src []int) {
	for i, v := range src {
		dst[i] = float32(v) / PCM16Scale
	}
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}
