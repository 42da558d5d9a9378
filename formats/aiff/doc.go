// SPDX-License-Identifier: EPL-2.0

// Package aiff reads and writes AIFF files with go-audio/aiff.
//
// AIFF is the big-endian cousin of WAV and is common on macOS. Decoder
// handles integer PCM at 8, 16, 24 and 32 bits and returns an
// audio.Source of float32 samples in [-1, 1]:
//
//	f, _ := os.Open("loop.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//
// Encode writes an audio.Buffer at the same depths. Unlike WAV, 8-bit AIFF
// samples are signed.
//
// # File Extensions
//
// .aif and .aiff are plain AIFF. AIFF-C (.aifc) compressed files are not
// supported.
package aiff
