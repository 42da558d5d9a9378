// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a valid AIFF file.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth indicates a depth other than 8, 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth")

	// ErrUnsupportedAiffLayout indicates a header the decoder could not
	// turn into a sample format.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	// ErrEmptyBuffer is returned when asked to encode no channels.
	ErrEmptyBuffer = errors.New("nothing to encode")
)
