// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with jfreymuth/oggvorbis.
//
// The decoder already produces float32, so a Source only trims reads to
// whole frames and forwards them.
//
//	f, _ := os.Open("pad.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
