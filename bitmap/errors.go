// SPDX-License-Identifier: EPL-2.0

package bitmap

import "errors"

var (
	// ErrInvalidSize indicates a non-positive width or height.
	ErrInvalidSize = errors.New("image dimensions must be positive")
	// ErrPixelCount indicates a pixel slice that does not match the dimensions.
	ErrPixelCount = errors.New("pixel data does not match image dimensions")
	// ErrDecode indicates the image data could not be decoded.
	ErrDecode = errors.New("decoding image")
	// ErrUnknownPattern indicates a pattern name that is not registered.
	ErrUnknownPattern = errors.New("unknown pattern")
)
