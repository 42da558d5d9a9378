// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric helpers shared by the DSP packages:
// interpolation, clamping, phase wrapping, PCM conversion, decibel maths and
// an atomic float32 used for parameters read from the audio thread.
package utils
