// SPDX-License-Identifier: EPL-2.0

// Package bitmap is the image side of the synthesizer: immutable snapshots
// that readers sample, the store that publishes them to the audio thread,
// and the provider helpers that turn arbitrary images into square snapshots.
//
// Brightness of a pixel is max(R, G, B)/255. Sampling is bilinear over the
// four surrounding pixels with coordinates clamped to the edges; readers see
// it mapped to [-1, 1].
//
//	store := bitmap.NewStore()
//	snap, err := bitmap.Load("terrain.png", 1024)
//	if err != nil {
//	    return err
//	}
//	store.Swap(snap)
//
// Images that are not square are padded with mirrored copies of themselves
// so a path leaving the picture keeps finding related material rather than
// a hard edge.
package bitmap
