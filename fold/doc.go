// SPDX-License-Identifier: EPL-2.0

// Package fold turns recorded sound into a scan image.
//
// The stream is mixed to mono, stretched to size² samples and written row
// by row into a size×size greyscale image with brightness (s+1)/2. A line
// reader sweeping the rows at the right pitch plays the recording back;
// circles and ellipses cutting across rows give something else entirely.
//
//	img, err := fold.File("drums.ogg", 256)
//	if err != nil {
//	    return err
//	}
//	engine.Images().SetImage(img, 0)
package fold
