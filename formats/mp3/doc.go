// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit little-endian stereo, so a decoded Source
// reports two channels even for mono files. The fold package mixes it down
// before turning it into a scan image.
package mp3
